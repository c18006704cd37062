package styles

// DefaultTheme is the baseline dark palette.
var DefaultTheme = Theme{
	Name:        "default",
	BorderStyle: "rounded",
	UserPalette: append([]string(nil), UserColorPalette...),
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "75",
		Border:     "240",
	},
	Status: StatusColors{
		OK:    "41",
		Busy:  "220",
		Error: "203",
	},
	Chrome: ChromeColors{
		Header:       "111",
		Footer:       "110",
		Banner:       "52",
		SelectedItem: "75",
	},
	Edit: EditColors{
		Row:    "236",
		Cursor: "220",
		Marker: "214",
	},
}
