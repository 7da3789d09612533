package store

import (
	"strings"
	"sync"

	"flightnet/models"
)

// Store holds the whole flight-network dataset: dense record slices with
// ID and IATA indexes, the route table, and the adjacency index mapping a
// source airport ID to the routes departing it.
//
// One RWMutex guards everything. AddRoute mutates the route table and the
// adjacency index as a pair, and a reader seeing one without the other
// would miss or duplicate one-hop results, so reads and writes across the
// whole dataset are serialized together rather than per-table.
type Store struct {
	mu sync.RWMutex

	airlines      []models.Airline
	airlineByID   map[int]int
	airlineByIATA map[string]int

	airports      []models.Airport
	airportByID   map[int]int
	airportByIATA map[string]int

	routes        []models.Route
	routesFromSrc map[int][]int
}

func New() *Store {
	return &Store{
		airlineByID:   make(map[int]int),
		airlineByIATA: make(map[string]int),
		airportByID:   make(map[int]int),
		airportByIATA: make(map[string]int),
		routesFromSrc: make(map[int][]int),
	}
}

// NormalizeIATA upper-cases and trims a code so index lookups are plain
// equality. The OpenFlights null placeholder maps to the empty string.
func NormalizeIATA(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == `\N` {
		return ""
	}
	return code
}

// InsertAirline stores a new airline record. The numeric ID must be free;
// a nonempty IATA code takes over the secondary index even if another
// record held that code (last writer wins).
func (s *Store) InsertAirline(a models.Airline) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.airlineByID[a.ID]; exists {
		return ErrDuplicateKey
	}

	a.IATA = NormalizeIATA(a.IATA)
	index := len(s.airlines)
	s.airlines = append(s.airlines, a)
	s.airlineByID[a.ID] = index
	if a.IATA != "" {
		s.airlineByIATA[a.IATA] = index
	}
	return nil
}

// InsertAirport stores a new airport record, same contract as InsertAirline.
func (s *Store) InsertAirport(a models.Airport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.airportByID[a.ID]; exists {
		return ErrDuplicateKey
	}

	a.IATA = NormalizeIATA(a.IATA)
	index := len(s.airports)
	s.airports = append(s.airports, a)
	s.airportByID[a.ID] = index
	if a.IATA != "" {
		s.airportByIATA[a.IATA] = index
	}
	return nil
}

// AirlineUpdate carries the optional fields of an airline update; nil
// means "leave unchanged".
type AirlineUpdate struct {
	IATA    *string
	Name    *string
	Country *string
	Active  *bool
}

// AirportUpdate carries the optional fields of an airport update.
type AirportUpdate struct {
	IATA      *string
	Name      *string
	City      *string
	Country   *string
	Latitude  *float64
	Longitude *float64
}

// UpdateAirline overwrites only the supplied fields of an existing record.
// When the IATA code changes, the old code is dropped from the secondary
// index and the new one (if nonempty) inserted.
func (s *Store) UpdateAirline(id int, upd AirlineUpdate) (models.Airline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, exists := s.airlineByID[id]
	if !exists {
		return models.Airline{}, ErrNotFound
	}

	a := &s.airlines[index]
	oldIATA := a.IATA

	if upd.IATA != nil {
		a.IATA = NormalizeIATA(*upd.IATA)
	}
	if upd.Name != nil {
		a.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Country != nil {
		a.Country = strings.TrimSpace(*upd.Country)
	}
	if upd.Active != nil {
		a.Active = *upd.Active
	}

	if a.IATA != oldIATA {
		if oldIATA != "" {
			delete(s.airlineByIATA, oldIATA)
		}
		if a.IATA != "" {
			s.airlineByIATA[a.IATA] = index
		}
	}
	return *a, nil
}

// UpdateAirport overwrites only the supplied fields, same contract as
// UpdateAirline.
func (s *Store) UpdateAirport(id int, upd AirportUpdate) (models.Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, exists := s.airportByID[id]
	if !exists {
		return models.Airport{}, ErrNotFound
	}

	a := &s.airports[index]
	oldIATA := a.IATA

	if upd.IATA != nil {
		a.IATA = NormalizeIATA(*upd.IATA)
	}
	if upd.Name != nil {
		a.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.City != nil {
		a.City = strings.TrimSpace(*upd.City)
	}
	if upd.Country != nil {
		a.Country = strings.TrimSpace(*upd.Country)
	}
	if upd.Latitude != nil {
		a.Latitude = *upd.Latitude
	}
	if upd.Longitude != nil {
		a.Longitude = *upd.Longitude
	}

	if a.IATA != oldIATA {
		if oldIATA != "" {
			delete(s.airportByIATA, oldIATA)
		}
		if a.IATA != "" {
			s.airportByIATA[a.IATA] = index
		}
	}
	return *a, nil
}

func (s *Store) AirlineByID(id int) (models.Airline, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.airlineByIDLocked(id)
}

func (s *Store) AirportByID(id int) (models.Airport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.airportByIDLocked(id)
}

// AirlineByIATA is case-insensitive on input; codes are stored uppercase.
func (s *Store) AirlineByIATA(code string) (models.Airline, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, exists := s.airlineByIATA[NormalizeIATA(code)]
	if !exists {
		return models.Airline{}, false
	}
	return s.airlines[index], true
}

func (s *Store) AirportByIATA(code string) (models.Airport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, exists := s.airportByIATA[NormalizeIATA(code)]
	if !exists {
		return models.Airport{}, false
	}
	return s.airports[index], true
}

// AddRoute appends the route to the route table and to its source
// airport's adjacency bucket under one lock. The index itself makes no
// existence check; dangling IDs are tolerated throughout.
func (s *Store) AddRoute(r models.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addRouteLocked(r)
}

// AddRouteChecked is the caller-facing add operation: it rejects routes
// naming airline or airport IDs not present in the store, then appends
// atomically.
func (s *Store) AddRouteChecked(r models.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.airlineByID[r.AirlineID]; !exists {
		return ErrUnknownAirline
	}
	if _, exists := s.airportByID[r.SrcAirportID]; !exists {
		return ErrUnknownAirport
	}
	if _, exists := s.airportByID[r.DstAirportID]; !exists {
		return ErrUnknownAirport
	}

	s.addRouteLocked(r)
	return nil
}

func (s *Store) addRouteLocked(r models.Route) {
	index := len(s.routes)
	s.routes = append(s.routes, r)
	s.routesFromSrc[r.SrcAirportID] = append(s.routesFromSrc[r.SrcAirportID], index)
}

// OutboundRoutes returns the routes departing an airport in insertion
// order. Unknown airports yield an empty slice, never an error.
func (s *Store) OutboundRoutes(airportID int) []models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.routesFromSrc[airportID]
	out := make([]models.Route, 0, len(bucket))
	for _, index := range bucket {
		out = append(out, s.routes[index])
	}
	return out
}

// Counts reports the dataset sizes, mostly for startup logging and health.
func (s *Store) Counts() (airlines, airports, routes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.airlines), len(s.airports), len(s.routes)
}

// Unexported locked variants for use inside composite read operations that
// already hold the read lock.

func (s *Store) airlineByIDLocked(id int) (models.Airline, bool) {
	index, exists := s.airlineByID[id]
	if !exists {
		return models.Airline{}, false
	}
	return s.airlines[index], true
}

func (s *Store) airportByIDLocked(id int) (models.Airport, bool) {
	index, exists := s.airportByID[id]
	if !exists {
		return models.Airport{}, false
	}
	return s.airports[index], true
}
