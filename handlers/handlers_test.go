package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightnet/config"
	"flightnet/models"
	"flightnet/store"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	s := store.New()
	require.NoError(t, s.InsertAirline(models.Airline{ID: 1, IATA: "UA", Name: "United Airlines", Country: "United States", Active: true}))
	require.NoError(t, s.InsertAirline(models.Airline{ID: 2, IATA: "AA", Name: "American Airlines", Country: "United States", Active: true}))
	require.NoError(t, s.InsertAirport(models.Airport{ID: 10, IATA: "SFO", Name: "San Francisco", City: "San Francisco", Country: "United States", Latitude: 37.618972, Longitude: -122.374889}))
	require.NoError(t, s.InsertAirport(models.Airport{ID: 20, IATA: "DEN", Name: "Denver", City: "Denver", Country: "United States", Latitude: 39.861656, Longitude: -104.673178}))
	require.NoError(t, s.InsertAirport(models.Airport{ID: 30, IATA: "JFK", Name: "New York JFK", City: "New York", Country: "United States", Latitude: 40.639751, Longitude: -73.778925}))
	s.AddRoute(models.Route{AirlineID: 1, SrcAirportID: 10, DstAirportID: 20, Stops: 0})
	s.AddRoute(models.Route{AirlineID: 2, SrcAirportID: 20, DstAirportID: 30, Stops: 0})

	config.InitCache()
	Init(s)

	r := mux.NewRouter()
	r.HandleFunc("/airline", GetAirline).Methods("GET")
	r.HandleFunc("/airline-routes", GetAirlineRoutes).Methods("GET")
	r.HandleFunc("/airlines-by-iata", GetAirlinesByIATA).Methods("GET")
	r.HandleFunc("/airline-add", AddAirline).Methods("POST")
	r.HandleFunc("/airline-update", UpdateAirline).Methods("POST")
	r.HandleFunc("/airport", GetAirport).Methods("GET")
	r.HandleFunc("/airport-routes", GetAirportRoutes).Methods("GET")
	r.HandleFunc("/airports-by-iata", GetAirportsByIATA).Methods("GET")
	r.HandleFunc("/airport-add", AddAirport).Methods("POST")
	r.HandleFunc("/airport-update", UpdateAirport).Methods("POST")
	r.HandleFunc("/route-add", AddRoute).Methods("POST")
	r.HandleFunc("/one-hop", GetOneHop).Methods("GET")
	r.HandleFunc("/health", HealthCheck).Methods("GET")
	return r
}

func doRequest(t *testing.T, router *mux.Router, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetAirline(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/airline?iata=ua", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "UA", body["iata"])

	rec = doRequest(t, router, "GET", "/airline?iata=ZZ", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, "GET", "/airline", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAirport(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/airport?iata=SFO", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "San Francisco", body["name"])

	rec = doRequest(t, router, "GET", "/airport?iata=XXX", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOneHopEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/one-hop?src=SFO&dst=JFK", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Source struct {
			IATA string `json:"iata"`
		} `json:"source"`
		Routes []struct {
			Via struct {
				IATA string `json:"iata"`
			} `json:"via"`
			Leg1Miles  float64 `json:"leg1_miles"`
			Leg2Miles  float64 `json:"leg2_miles"`
			TotalMiles float64 `json:"total_miles"`
			Airline1   *struct {
				IATA string `json:"iata"`
			} `json:"airline1"`
			Airline2 *struct {
				IATA string `json:"iata"`
			} `json:"airline2"`
		} `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "SFO", resp.Source.IATA)
	require.Len(t, resp.Routes, 1)
	assert.Equal(t, "DEN", resp.Routes[0].Via.IATA)
	assert.InDelta(t, resp.Routes[0].Leg1Miles+resp.Routes[0].Leg2Miles, resp.Routes[0].TotalMiles, 1e-9)
	require.NotNil(t, resp.Routes[0].Airline1)
	assert.Equal(t, "UA", resp.Routes[0].Airline1.IATA)
	require.NotNil(t, resp.Routes[0].Airline2)
	assert.Equal(t, "AA", resp.Routes[0].Airline2.IATA)
}

func TestOneHopUnknownEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/one-hop?src=XXX&dst=JFK", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, "GET", "/one-hop?src=SFO&dst=XXX", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, "GET", "/one-hop?src=SFO", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteAddInvalidatesOneHopCache(t *testing.T) {
	router := newTestRouter(t)

	// Prime the cache: no SFO->DEN->JFK alternative via a second airline yet.
	rec := doRequest(t, router, "GET", "/one-hop?src=SFO&dst=JFK", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// New zero-stop DEN->JFK leg on United opens a second itinerary.
	rec = doRequest(t, router, "POST", "/route-add", map[string]interface{}{
		"airline_id": 1, "src_id": 20, "dst_id": 30, "stops": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/one-hop?src=SFO&dst=JFK", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Routes []json.RawMessage `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Routes, 2, "cached result must not survive the mutation")
}

func TestRouteAddValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "POST", "/route-add", map[string]interface{}{
		"airline_id": 999, "src_id": 10, "dst_id": 20,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, "POST", "/route-add", map[string]interface{}{
		"airline_id": 1, "src_id": 999, "dst_id": 20,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, "POST", "/route-add", map[string]interface{}{
		"airline_id": 1, "src_id": 10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAirlineAddAndUpdate(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "POST", "/airline-add", map[string]interface{}{
		"id": 99, "iata": "dl", "name": "Delta", "country": "United States",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/airline?iata=DL", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Delta", body["name"])
	assert.Equal(t, true, body["active"], "active defaults to true")

	// Duplicate ID rejected.
	rec = doRequest(t, router, "POST", "/airline-add", map[string]interface{}{
		"id": 99, "iata": "XX", "name": "Duplicate",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Partial update moves the IATA index.
	rec = doRequest(t, router, "POST", "/airline-update", map[string]interface{}{
		"id": 99, "iata": "DX",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/airline?iata=DL", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, router, "GET", "/airline?iata=DX", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "Delta", body["name"])

	// Unknown ID on update.
	rec = doRequest(t, router, "POST", "/airline-update", map[string]interface{}{
		"id": 12345, "name": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAirportAddMissingFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "POST", "/airport-add", map[string]interface{}{
		"id": 50, "iata": "XYZ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "name is required")

	rec = doRequest(t, router, "POST", "/airport-add", map[string]interface{}{
		"id": 50, "iata": "XYZ", "name": "Xyz Field", "latitude": 10.0, "longitude": 20.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/airport?iata=XYZ", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(10), body["latitude"])
}

func TestAirlineRoutesReport(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/airline-routes?iata=UA", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Airline  models.Airline `json:"airline"`
		Airports []struct {
			AirportID  int `json:"airport_id"`
			RouteCount int `json:"route_count"`
		} `json:"airports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Airline.ID)
	require.Len(t, resp.Airports, 2, "UA's single route touches SFO and DEN")
	total := 0
	for _, ap := range resp.Airports {
		total += ap.RouteCount
	}
	assert.Equal(t, 2, total)
}

func TestAirportRoutesReport(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/airport-routes?iata=DEN", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Airport  models.Airport `json:"airport"`
		Airlines []struct {
			AirlineID  int `json:"airline_id"`
			RouteCount int `json:"route_count"`
		} `json:"airlines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 20, resp.Airport.ID)
	require.Len(t, resp.Airlines, 2, "both airlines touch Denver")
}

func TestListingsSorted(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/airlines-by-iata", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var airlineList struct {
		Airlines []models.Airline `json:"airlines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &airlineList))
	require.Len(t, airlineList.Airlines, 2)
	assert.Equal(t, "AA", airlineList.Airlines[0].IATA)
	assert.Equal(t, "UA", airlineList.Airlines[1].IATA)

	rec = doRequest(t, router, "GET", "/airports-by-iata", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var airportList struct {
		Airports []models.Airport `json:"airports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &airportList))
	require.Len(t, airportList.Airports, 3)
	assert.Equal(t, "DEN", airportList.Airports[0].IATA)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["routes"])
}
