package model

// CountryEventCount is the number of historical events held in a country
// within a year range. ISO is the resolved ISO-3166 alpha-3 code.
type CountryEventCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
	ISO     string `json:"iso"`
}

// TeamWins is the number of historical race wins of a team within a year
// range, with its display color.
type TeamWins struct {
	Team  string `json:"team"`
	Wins  int    `json:"wins"`
	Color string `json:"color"`
}
