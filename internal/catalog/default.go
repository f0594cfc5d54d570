// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

// demoItems is the menu shown when no catalog file is configured.
var demoItems = []Item{
	{
		ID:          "truffle-risotto",
		Name:        "Truffle Risotto",
		Price:       2800,
		Description: "Carnaroli rice slowly stirred with aged parmesan, brown butter and shaved black truffle.",
		PairingNote: "Pairs beautifully with a glass of **Barolo** or a crisp **Vermentino**.",
		Image:       "https://images.unsplash.com/photo-1476124369491-e7addf5db371",
		Tags:        []string{"vegetarian", "signature"},
	},
	{
		ID:          "dan-dan-noodles",
		Name:        "Dan Dan Noodles",
		Price:       1850,
		Description: "Hand-pulled noodles, Sichuan chili oil, minced pork, preserved greens and crushed peanuts.",
		PairingNote: "Tame the heat with a cold **Tsingtao** or our **lychee soda**.",
		Image:       "https://images.unsplash.com/photo-1585032226651-759b368d7246",
		Tags:        []string{"noodles", "pork"},
		Spicy:       true,
	},
	{
		ID:          "wagyu-burger",
		Name:        "Wagyu Smash Burger",
		Price:       2400,
		Description: "Double wagyu patty, aged cheddar, caramelised onion and house pickles on a toasted brioche bun.",
		PairingNote: "Best with **truffle fries** and a **hazy IPA**.",
		Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd",
		Tags:        []string{"beef", "comfort"},
	},
	{
		ID:          "miso-salmon",
		Name:        "Miso Glazed Salmon",
		Price:       3200,
		Description: "Sustainably farmed salmon lacquered in white miso, served over forbidden rice and charred bok choy.",
		PairingNote: "A dry **Riesling** lifts the miso's sweetness.",
		Image:       "https://images.unsplash.com/photo-1467003909585-2f8a72700288",
		Tags:        []string{"fish", "high-protein", "gluten-free"},
	},
	{
		ID:          "nduja-pizza",
		Name:        "'Nduja Pizza",
		Price:       2100,
		Description: "Wood-fired sourdough base, spicy Calabrian 'nduja, fior di latte, hot honey and basil.",
		PairingNote: "Ask for a **Negroni** to match the heat.",
		Image:       "https://images.unsplash.com/photo-1513104890138-7c749659a591",
		Tags:        []string{"pizza", "pork"},
		Spicy:       true,
	},
	{
		ID:          "buddha-bowl",
		Name:        "Green Goddess Bowl",
		Price:       1600,
		Description: "Quinoa, roasted chickpeas, avocado, pickled shallots and tahini green goddess dressing.",
		PairingNote: "Refreshing with our **cold-pressed cucumber mint** juice.",
		Image:       "https://images.unsplash.com/photo-1512621776951-a57141f2eefd",
		Tags:        []string{"vegan", "vegetarian", "gluten-free"},
	},
	{
		ID:          "short-rib",
		Name:        "Braised Short Rib",
		Price:       3600,
		Description: "Beef short rib braised for twelve hours in red wine, with pomme purée and glazed carrots.",
		PairingNote: "Made for a bold **Malbec**.",
		Image:       "https://images.unsplash.com/photo-1544025162-d76694265947",
		Tags:        []string{"beef", "comfort", "high-protein"},
	},
	{
		ID:          "tiramisu",
		Name:        "Classic Tiramisu",
		Price:       1100,
		Description: "Espresso-soaked savoiardi layered with mascarpone cream and bitter cocoa.",
		PairingNote: "Finish with an **espresso martini** or a glass of **Vin Santo**.",
		Image:       "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9",
		Tags:        []string{"dessert", "vegetarian"},
	},
}

// Default returns the built-in demo menu.
func Default() *Catalog {
	c, err := New(demoItems)
	if err != nil {
		panic("catalog: invalid demo menu: " + err.Error())
	}
	return c
}
