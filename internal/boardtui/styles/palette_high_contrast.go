package styles

// HighContrastTheme favors legibility on low-quality terminals.
var HighContrastTheme = Theme{
	Name:        "high-contrast",
	BorderStyle: "sharp",
	Base: BaseColors{
		Background: "16",
		Foreground: "231",
		Muted:      "250",
		Accent:     "51",
		Border:     "231",
	},
	Status: StatusColors{
		OK:    "46",
		Busy:  "226",
		Error: "196",
	},
	Chrome: ChromeColors{
		Header:       "117",
		Footer:       "159",
		Banner:       "160",
		SelectedItem: "51",
	},
	Edit: EditColors{
		Row:    "238",
		Cursor: "226",
		Marker: "229",
	},
}
