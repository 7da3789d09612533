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

// GetAirline returns the full airline record for an IATA code.
func GetAirline(w http.ResponseWriter, r *http.Request) {
	iata := r.URL.Query().Get("iata")
	if iata == "" {
		sendErrorResponse(w, "Missing 'iata' query parameter", http.StatusBadRequest)
		return
	}

	airline, ok := appStore.AirlineByIATA(iata)
	if !ok {
		sendErrorResponse(w, "Airline not found", http.StatusNotFound)
		return
	}

	sendJSONResponse(w, airline)
}

type servedAirport struct {
	AirportID  int    `json:"airport_id"`
	IATA       string `json:"iata"`
	Name       string `json:"name"`
	City       string `json:"city"`
	Country    string `json:"country"`
	RouteCount int    `json:"route_count"`
}

type airlineRoutesResponse struct {
	Airline  models.Airline  `json:"airline"`
	Airports []servedAirport `json:"airports"`
}

// GetAirlineRoutes returns the airports an airline serves with per-airport
// route counts, busiest first.
func GetAirlineRoutes(w http.ResponseWriter, r *http.Request) {
	iata := r.URL.Query().Get("iata")
	if iata == "" {
		sendErrorResponse(w, "Missing 'iata' query parameter", http.StatusBadRequest)
		return
	}

	airline, ok := appStore.AirlineByIATA(iata)
	if !ok {
		sendErrorResponse(w, "Airline not found", http.StatusNotFound)
		return
	}

	cacheKey := config.GetCacheKey("airline-routes", airline.ID)
	if cached, found := config.ReportCache.Get(cacheKey); found {
		sendJSONResponse(w, cached)
		return
	}

	counts := appStore.RouteCountsByAirline(airline.ID)
	airports := make([]servedAirport, 0, len(counts))
	for _, ac := range counts {
		airports = append(airports, servedAirport{
			AirportID:  ac.Airport.ID,
			IATA:       ac.Airport.IATA,
			Name:       ac.Airport.Name,
			City:       ac.Airport.City,
			Country:    ac.Airport.Country,
			RouteCount: ac.Count,
		})
	}

	response := airlineRoutesResponse{Airline: airline, Airports: airports}
	config.ReportCache.SetDefault(cacheKey, response)
	sendJSONResponse(w, response)
}

// GetAirlinesByIATA lists every airline ordered by IATA code.
func GetAirlinesByIATA(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, map[string]interface{}{
		"airlines": appStore.AirlinesByIATA(),
	})
}

type airlineAddRequest struct {
	ID      *int    `json:"id"`
	IATA    *string `json:"iata"`
	Name    *string `json:"name"`
	Country *string `json:"country"`
	Active  *bool   `json:"active"`
}

// AddAirline inserts a new airline record in memory.
func AddAirline(w http.ResponseWriter, r *http.Request) {
	var req airlineAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == nil || req.IATA == nil || req.Name == nil {
		sendErrorResponse(w, "Missing required fields: id, iata, name", http.StatusBadRequest)
		return
	}

	airline := models.Airline{
		ID:     *req.ID,
		IATA:   *req.IATA,
		Name:   strings.TrimSpace(*req.Name),
		Active: true,
	}
	if req.Country != nil {
		airline.Country = strings.TrimSpace(*req.Country)
	}
	if req.Active != nil {
		airline.Active = *req.Active
	}

	if err := appStore.InsertAirline(airline); err != nil {
		sendErrorResponse(w, "Airline with that ID already exists", http.StatusBadRequest)
		return
	}
	config.ClearAllCaches()

	stored, _ := appStore.AirlineByID(airline.ID)
	sendJSONResponse(w, map[string]interface{}{
		"status":  "ok",
		"message": "Airline added in memory",
		"airline": stored,
	})
}

type airlineUpdateRequest struct {
	ID      *int    `json:"id"`
	IATA    *string `json:"iata"`
	Name    *string `json:"name"`
	Country *string `json:"country"`
	Active  *bool   `json:"active"`
}

// UpdateAirline overwrites the supplied fields of an existing airline.
func UpdateAirline(w http.ResponseWriter, r *http.Request) {
	var req airlineUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ID == nil {
		sendErrorResponse(w, "Missing required field: id", http.StatusBadRequest)
		return
	}

	updated, err := appStore.UpdateAirline(*req.ID, store.AirlineUpdate{
		IATA:    req.IATA,
		Name:    req.Name,
		Country: req.Country,
		Active:  req.Active,
	})
	if errors.Is(err, store.ErrNotFound) {
		sendErrorResponse(w, "Airline ID not found", http.StatusNotFound)
		return
	}
	config.ClearAllCaches()

	sendJSONResponse(w, map[string]interface{}{
		"status":  "ok",
		"message": "Airline updated in memory",
		"airline": updated,
	})
}
