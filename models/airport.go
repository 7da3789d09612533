package models

// Airport is one OpenFlights airport record. Coordinates are decimal degrees.
type Airport struct {
	ID        int     `json:"id"`
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
