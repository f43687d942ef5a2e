package strategy

// CompoundColors returns the display colors of the tire compounds.
func CompoundColors() map[string]string {
	return map[string]string{
		"SOFT":         "#DA291C",
		"MEDIUM":       "#FFD12E",
		"HARD":         "#F0F0EC",
		"INTERMEDIATE": "#43B02A",
		"WET":          "#0067AD",
	}
}
