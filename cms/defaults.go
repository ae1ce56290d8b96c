package cms

import "encoding/json"

// Built-in fallback documents. There is exactly one default per content
// kind; every load path that misses the store merges through these.

func DefaultSettings() Settings {
	return Settings{
		ActiveThemeID:   "standard",
		SiteName:        "studio akira",
		MaintenanceMode: false,
	}
}

func DefaultTheme() Theme {
	return Theme{
		ID:   "standard",
		Name: "Standard",
		Colors: map[string]string{
			"color-sage-light":  "#E8EDE8",
			"color-sage":        "#A8B5A0",
			"color-sage-dark":   "#6B8A6B",
			"color-sage-darker": "#4A6B4A",
		},
	}
}

func DefaultNavigation() []NavLink {
	return []NavLink{
		{Label: "Home", URL: "index.html"},
		{Label: "Collections", URL: "#", Action: "requireLogin('collections')"},
		{Label: "About", URL: "about.html"},
		{Label: "Contact", URL: "contact.html"},
		{Label: "Orders", URL: "#", Action: "requireLogin('orders')"},
	}
}

func DefaultContent(pageID string) PageContent {
	if pageID == "about" {
		return PageContent{Sections: []Section{
			{
				ID:     "about_hero",
				Type:   SectionHero,
				Order:  1,
				Active: boolPtr(true),
				Data: mustJSON(HeroData{
					Title:       "Our Story",
					Tagline:     "Crafting light, warmth, and serenity.",
					Description: "Studio Akira began with a simple belief: that the objects we surround ourselves with shape our daily rituals.",
					Image:       "assets/images/banners/hero.png",
				}),
			},
		}}
	}

	return PageContent{Sections: []Section{
		{
			ID:     "hero",
			Type:   SectionHero,
			Order:  1,
			Active: boolPtr(true),
			Data: mustJSON(HeroData{
				Title:       "studio<br>akira",
				Tagline:     "Where light becomes ritual.",
				Description: "Handcrafted luxury candles that transform your space into a sanctuary",
				ButtonText:  "Explore Collections",
				ButtonLink:  "customer/products.html",
				Image:       "assets/images/banners/hero.png",
				ImageAlt:    "Studio Akira Candles",
			}),
		},
	}}
}

func boolPtr(b bool) *bool { return &b }

func mustJSON(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
