package chartwheel

// AspectColors maps an aspect angle to its line color.
type AspectColors map[int]string

// For returns the color of the aspect angle, or a neutral gray.
func (c AspectColors) For(degrees int) string {
	if color, ok := c[degrees]; ok {
		return color
	}
	return "#808080"
}

// Theme holds every color a full chart uses.
type Theme struct {
	Paper0            string        `json:"paper_0"`
	Paper1            string        `json:"paper_1"`
	ZodiacBackgrounds []string      `json:"zodiac_backgrounds"`
	RadixRing         [3]string     `json:"radix_ring"`
	TransitRing       string        `json:"transit_ring"`
	DegreeRing        string        `json:"degree_ring"`
	GridStroke        string        `json:"grid_stroke"`
	Houses            HouseColors   `json:"houses"`
	Aspects           AspectColors  `json:"aspects"`
	ElementLabels     ElementLabels `json:"element_labels"`
}

// zodiacBackground returns the fill of sign i, cycling through the
// configured backgrounds.
func (t Theme) zodiacBackground(i int) string {
	if len(t.ZodiacBackgrounds) == 0 {
		return "none"
	}
	return t.ZodiacBackgrounds[i%len(t.ZodiacBackgrounds)]
}

// DefaultTheme returns the stock light theme.
func DefaultTheme() Theme {
	return Theme{
		Paper0: "#000000",
		Paper1: "#ffffff",
		ZodiacBackgrounds: []string{
			"#ff7200", "#6b3d00", "#69acf1", "#2b4972",
			"#ff7200", "#6b3d00", "#69acf1", "#2b4972",
			"#ff7200", "#6b3d00", "#69acf1", "#2b4972",
		},
		RadixRing:   [3]string{"#ff0000", "#ff0000", "#ff0000"},
		TransitRing: "#ff7200",
		DegreeRing:  "#000000",
		GridStroke:  "#000000",
		Houses: HouseColors{
			Standard: "#ff0000",
			First:    "#ff7e00",
			Fourth:   "#ff7e00",
			Seventh:  "#ff7e00",
			Tenth:    "#ff7e00",
		},
		Aspects: AspectColors{
			0:   "#5757e2",
			30:  "#810757",
			45:  "#b14e58",
			60:  "#d59e28",
			72:  "#1f99b3",
			90:  "#dc0000",
			120: "#36d100",
			135: "#985a10",
			144: "#7a9810",
			150: "#fff600",
			180: "#510060",
		},
		ElementLabels: ElementLabels{Fire: "Fire", Earth: "Earth", Air: "Air", Water: "Water"},
	}
}
