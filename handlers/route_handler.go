package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"flightnet/config"
	"flightnet/models"
	"flightnet/store"
)

type routeAddRequest struct {
	AirlineID *int `json:"airline_id"`
	SrcID     *int `json:"src_id"`
	DstID     *int `json:"dst_id"`
	Stops     *int `json:"stops"`
}

// AddRoute appends a new route in memory. Unlike ingested data, routes
// added here must reference airlines and airports that actually exist.
func AddRoute(w http.ResponseWriter, r *http.Request) {
	var req routeAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.AirlineID == nil || req.SrcID == nil || req.DstID == nil {
		sendErrorResponse(w, "Missing required fields: airline_id, src_id, dst_id", http.StatusBadRequest)
		return
	}

	route := models.Route{
		AirlineID:    *req.AirlineID,
		SrcAirportID: *req.SrcID,
		DstAirportID: *req.DstID,
	}
	if req.Stops != nil {
		route.Stops = *req.Stops
	}

	switch err := appStore.AddRouteChecked(route); {
	case errors.Is(err, store.ErrUnknownAirline):
		sendErrorResponse(w, "Unknown airline_id", http.StatusBadRequest)
		return
	case errors.Is(err, store.ErrUnknownAirport):
		sendErrorResponse(w, "Unknown src_id or dst_id", http.StatusBadRequest)
		return
	}
	config.ClearAllCaches()

	sendJSONResponse(w, map[string]interface{}{
		"status":  "ok",
		"message": "Route added in memory",
		"route":   route,
	})
}

type airportSummary struct {
	ID      int    `json:"id"`
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type airlineSummary struct {
	ID   int    `json:"id"`
	IATA string `json:"iata"`
	Name string `json:"name"`
}

type oneHopItinerary struct {
	Via        airportSummary  `json:"via"`
	Leg1Miles  float64         `json:"leg1_miles"`
	Leg2Miles  float64         `json:"leg2_miles"`
	TotalMiles float64         `json:"total_miles"`
	Airline1   *airlineSummary `json:"airline1,omitempty"`
	Airline2   *airlineSummary `json:"airline2,omitempty"`
}

type oneHopResponse struct {
	Source      airportSummary    `json:"source"`
	Destination airportSummary    `json:"destination"`
	Routes      []oneHopItinerary `json:"routes"`
}

func summarizeAirport(a models.Airport) airportSummary {
	return airportSummary{ID: a.ID, IATA: a.IATA, Name: a.Name, City: a.City, Country: a.Country}
}

func summarizeAirline(a *models.Airline) *airlineSummary {
	if a == nil {
		return nil
	}
	return &airlineSummary{ID: a.ID, IATA: a.IATA, Name: a.Name}
}

// GetOneHop reports every two-leg connection of zero-stop routes between
// two airports, nearest total distance first.
func GetOneHop(w http.ResponseWriter, r *http.Request) {
	srcIATA := r.URL.Query().Get("src")
	dstIATA := r.URL.Query().Get("dst")
	if srcIATA == "" || dstIATA == "" {
		sendErrorResponse(w, "Missing 'src' or 'dst' query parameter", http.StatusBadRequest)
		return
	}

	src, ok := appStore.AirportByIATA(srcIATA)
	if !ok {
		sendErrorResponse(w, "Source airport not found", http.StatusNotFound)
		return
	}
	dst, ok := appStore.AirportByIATA(dstIATA)
	if !ok {
		sendErrorResponse(w, "Destination airport not found", http.StatusNotFound)
		return
	}

	cacheKey := config.GetCacheKey("one-hop", src.ID, dst.ID)
	if cached, found := config.OneHopCache.Get(cacheKey); found {
		sendJSONResponse(w, cached)
		return
	}

	itineraries := appStore.OneHopItineraries(src.ID, dst.ID)
	routes := make([]oneHopItinerary, 0, len(itineraries))
	for _, it := range itineraries {
		routes = append(routes, oneHopItinerary{
			Via:        summarizeAirport(it.Via),
			Leg1Miles:  it.Leg1Miles,
			Leg2Miles:  it.Leg2Miles,
			TotalMiles: it.TotalMiles,
			Airline1:   summarizeAirline(it.Airline1),
			Airline2:   summarizeAirline(it.Airline2),
		})
	}

	response := oneHopResponse{
		Source:      summarizeAirport(src),
		Destination: summarizeAirport(dst),
		Routes:      routes,
	}
	config.OneHopCache.SetDefault(cacheKey, response)
	sendJSONResponse(w, response)
}
