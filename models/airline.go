package models

// Airline is one OpenFlights airline record. ID is the primary key; the
// IATA code is optional and may be shared with no one (unique when present).
type Airline struct {
	ID      int    `json:"id"`
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Active  bool   `json:"active"`
}
