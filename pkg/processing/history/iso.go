package history

import "github.com/biter777/countries"

// isoCode resolves a country name to its ISO-3166 alpha-3 code.
// An unresolvable name is a recoverable condition, not an error.
func isoCode(name string) (string, bool) {
	c := countries.ByName(name)
	if c == countries.Unknown {
		return "", false
	}
	return c.Alpha3(), true
}
