// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/nexindemo/Nex-reelmenu/internal/cart"
	"github.com/nexindemo/Nex-reelmenu/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrDuplicateOrder = errors.New("order already recorded")
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyOrder     = errors.New("order has no lines")
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// =============================================================================
// ORDER STORE
// =============================================================================

// OrderStore is the SQLite ticket log. It is safe for concurrent use.
type OrderStore struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.reelmenu/orders.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "orders.db"
	}
	return filepath.Join(home, ".reelmenu", "orders.db")
}

// OpenOrderStore opens (creating if needed) the ticket log at path.
func OpenOrderStore(path string) (*OrderStore, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &OrderStore{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *OrderStore) Path() string { return s.path }

// Close releases the database.
func (s *OrderStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// WRITE
// =============================================================================

// Save records r. Saving the same order id twice returns ErrDuplicateOrder.
func (s *OrderStore) Save(ctx context.Context, r cart.Receipt) (err error) {
	if len(r.Lines) == 0 {
		return ErrEmptyOrder
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO tickets (order_id, placed_at, item_count, subtotal, surcharge, total)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.OrderID, r.PlacedAt.UTC().UnixNano(), r.Count(),
		int64(r.Subtotal), int64(r.Surcharge), int64(r.Total))
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateOrder, r.OrderID)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ticket_lines (order_id, position, item_id, name, unit_price, quantity)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare lines: %w", err)
	}
	defer stmt.Close()

	for i, ln := range r.Lines {
		if _, err = stmt.ExecContext(ctx, r.OrderID, i, ln.Item.ID, ln.Item.Name, int64(ln.Item.Price), ln.Quantity); err != nil {
			return fmt.Errorf("insert line %s: %w", ln.Item.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// =============================================================================
// READ
// =============================================================================

// Get returns one recorded order.
func (s *OrderStore) Get(ctx context.Context, orderID string) (cart.Receipt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT order_id, placed_at, subtotal, surcharge, total FROM tickets WHERE order_id = ?`, orderID)
	r, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return cart.Receipt{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return cart.Receipt{}, err
	}
	lines, err := s.lines(ctx, []string{orderID})
	if err != nil {
		return cart.Receipt{}, err
	}
	r.Lines = lines[orderID]
	return r, nil
}

// List returns the most recent orders, newest first.
func (s *OrderStore) List(ctx context.Context, limit int) ([]cart.Receipt, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT order_id, placed_at, subtotal, surcharge, total FROM tickets
		 ORDER BY placed_at DESC, order_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var out []cart.Receipt
	var ids []string
	for rows.Next() {
		r, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
		ids = append(ids, r.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tickets: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	lines, err := s.lines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Lines = lines[out[i].OrderID]
	}
	return out, nil
}

// Summary totals the whole log.
type Summary struct {
	Orders  int        `json:"orders"`
	Items   int        `json:"items"`
	Revenue util.Cents `json:"revenue_cents"`
}

// Summarize returns totals over every recorded order.
func (s *OrderStore) Summarize(ctx context.Context) (Summary, error) {
	var sum Summary
	var revenue int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(item_count), 0), COALESCE(SUM(total), 0) FROM tickets`).
		Scan(&sum.Orders, &sum.Items, &revenue)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}
	sum.Revenue = util.Cents(revenue)
	return sum, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTicket(row scanner) (cart.Receipt, error) {
	var (
		r                          cart.Receipt
		placed                     int64
		subtotal, surcharge, total int64
	)
	if err := row.Scan(&r.OrderID, &placed, &subtotal, &surcharge, &total); err != nil {
		return cart.Receipt{}, err
	}
	r.PlacedAt = time.Unix(0, placed).UTC()
	r.Subtotal = util.Cents(subtotal)
	r.Surcharge = util.Cents(surcharge)
	r.Total = util.Cents(total)
	return r, nil
}

func (s *OrderStore) lines(ctx context.Context, orderIDs []string) (map[string][]cart.Line, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT order_id, item_id, name, unit_price, quantity FROM ticket_lines
		 WHERE order_id IN (`+placeholders+`) ORDER BY order_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]cart.Line, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			ln      cart.Line
			price   int64
		)
		if err := rows.Scan(&orderID, &ln.Item.ID, &ln.Item.Name, &price, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		ln.Item.Price = util.Cents(price)
		out[orderID] = append(out[orderID], ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return out, nil
}
