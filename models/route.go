package models

// Route references its airline and endpoints weakly by ID. Source data is
// not guaranteed clean: any of the three IDs may point at a record that was
// never loaded, and consumers must treat a failed lookup as "unknown".
// Duplicate (airline, src, dst) tuples are legal and counted separately.
type Route struct {
	AirlineID    int `json:"airline_id"`
	SrcAirportID int `json:"src_id"`
	DstAirportID int `json:"dst_id"`
	Stops        int `json:"stops"`
}
