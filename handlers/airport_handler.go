package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"flightnet/config"
	"flightnet/models"
	"flightnet/store"
)

// GetAirport returns the full airport record for an IATA code.
func GetAirport(w http.ResponseWriter, r *http.Request) {
	iata := r.URL.Query().Get("iata")
	if iata == "" {
		sendErrorResponse(w, "Missing 'iata' query parameter", http.StatusBadRequest)
		return
	}

	airport, ok := appStore.AirportByIATA(iata)
	if !ok {
		sendErrorResponse(w, "Airport not found", http.StatusNotFound)
		return
	}

	sendJSONResponse(w, airport)
}

type servingAirline struct {
	AirlineID  int    `json:"airline_id"`
	IATA       string `json:"iata"`
	Name       string `json:"name"`
	Country    string `json:"country"`
	RouteCount int    `json:"route_count"`
}

type airportRoutesResponse struct {
	Airport  models.Airport   `json:"airport"`
	Airlines []servingAirline `json:"airlines"`
}

// GetAirportRoutes returns the airlines flying to or from an airport with
// per-airline route counts, busiest first.
func GetAirportRoutes(w http.ResponseWriter, r *http.Request) {
	iata := r.URL.Query().Get("iata")
	if iata == "" {
		sendErrorResponse(w, "Missing 'iata' query parameter", http.StatusBadRequest)
		return
	}

	airport, ok := appStore.AirportByIATA(iata)
	if !ok {
		sendErrorResponse(w, "Airport not found", http.StatusNotFound)
		return
	}

	cacheKey := config.GetCacheKey("airport-routes", airport.ID)
	if cached, found := config.ReportCache.Get(cacheKey); found {
		sendJSONResponse(w, cached)
		return
	}

	counts := appStore.RouteCountsByAirport(airport.ID)
	airlines := make([]servingAirline, 0, len(counts))
	for _, ac := range counts {
		airlines = append(airlines, servingAirline{
			AirlineID:  ac.Airline.ID,
			IATA:       ac.Airline.IATA,
			Name:       ac.Airline.Name,
			Country:    ac.Airline.Country,
			RouteCount: ac.Count,
		})
	}

	response := airportRoutesResponse{Airport: airport, Airlines: airlines}
	config.ReportCache.SetDefault(cacheKey, response)
	sendJSONResponse(w, response)
}

// GetAirportsByIATA lists every airport ordered by IATA code.
func GetAirportsByIATA(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, map[string]interface{}{
		"airports": appStore.AirportsByIATA(),
	})
}

type airportAddRequest struct {
	ID        *int     `json:"id"`
	IATA      *string  `json:"iata"`
	Name      *string  `json:"name"`
	City      *string  `json:"city"`
	Country   *string  `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// AddAirport inserts a new airport record in memory.
func AddAirport(w http.ResponseWriter, r *http.Request) {
	var req airportAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == nil || req.IATA == nil || req.Name == nil {
		sendErrorResponse(w, "Missing required fields: id, iata, name", http.StatusBadRequest)
		return
	}

	airport := models.Airport{
		ID:   *req.ID,
		IATA: *req.IATA,
		Name: strings.TrimSpace(*req.Name),
	}
	if req.City != nil {
		airport.City = strings.TrimSpace(*req.City)
	}
	if req.Country != nil {
		airport.Country = strings.TrimSpace(*req.Country)
	}
	if req.Latitude != nil {
		airport.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		airport.Longitude = *req.Longitude
	}

	if err := appStore.InsertAirport(airport); err != nil {
		sendErrorResponse(w, "Airport with that ID already exists", http.StatusBadRequest)
		return
	}
	config.ClearAllCaches()

	stored, _ := appStore.AirportByID(airport.ID)
	sendJSONResponse(w, map[string]interface{}{
		"status":  "ok",
		"message": "Airport added in memory",
		"airport": stored,
	})
}

// UpdateAirport overwrites the supplied fields of an existing airport.
func UpdateAirport(w http.ResponseWriter, r *http.Request) {
	var req airportAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == nil {
		sendErrorResponse(w, "Missing required field: id", http.StatusBadRequest)
		return
	}

	updated, err := appStore.UpdateAirport(*req.ID, store.AirportUpdate{
		IATA:      req.IATA,
		Name:      req.Name,
		City:      req.City,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if errors.Is(err, store.ErrNotFound) {
		sendErrorResponse(w, "Airport ID not found", http.StatusNotFound)
		return
	}
	config.ClearAllCaches()

	sendJSONResponse(w, map[string]interface{}{
		"status":  "ok",
		"message": "Airport updated in memory",
		"airport": updated,
	})
}
