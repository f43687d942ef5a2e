package history

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultColor is used for teams without a palette entry.
const DefaultColor = "#FFFFFF"

// DefaultPalette returns the built-in team display colors. Historical
// teams not listed here get DefaultColor.
func DefaultPalette() map[string]string {
	return map[string]string{
		"Ferrari":         "#DC0000",
		"Mercedes":        "#00D2BE",
		"Red Bull Racing": "#0600EF",
		"McLaren":         "#FF8700",
		"Williams":        "#005AFF",
		"Alpine":          "#0090FF",
		"Renault":         "#FFF500",
		"Benetton":        "#00A651",
		"Aston Martin":    "#006F62",
		"AlphaTauri":      "#2B4562",
		"Racing Point":    "#F596C8",
		"Brawn":           "#B9F339",
		"Lotus":           "#000000",
		"Tyrrell":         "#000080",
		"Brabham":         "#00A3E0",
		"Jordan":          "#F9D616",
	}
}

// LoadPalette reads a team color palette from a yaml file
// (team name -> hex color).
func LoadPalette(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette: %w", err)
	}
	ret := make(map[string]string)
	if err := yaml.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}
	return ret, nil
}
