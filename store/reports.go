package store

import (
	"sort"

	"flightnet/models"
)

// AirportCount pairs an airport with the number of route endpoints an
// airline has there.
type AirportCount struct {
	Airport models.Airport
	Count   int
}

// AirlineCount pairs an airline with the number of its routes touching an
// airport.
type AirlineCount struct {
	Airline models.Airline
	Count   int
}

// RouteCountsByAirline scans the full route table and counts, per airport,
// how many of the airline's routes touch it. Each route contributes one
// increment to its source and one to its destination, so the counts across
// all airports sum to twice the airline's route count. Results are sorted
// descending by count, ties kept in first-seen scan order; airport IDs
// that do not resolve are dropped from the rendered list only.
func (s *Store) RouteCountsByAirline(airlineID int) []AirportCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int)
	var order []int

	touch := func(airportID int) {
		if _, seen := counts[airportID]; !seen {
			order = append(order, airportID)
		}
		counts[airportID]++
	}

	for _, r := range s.routes {
		if r.AirlineID != airlineID {
			continue
		}
		touch(r.SrcAirportID)
		touch(r.DstAirportID)
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	results := make([]AirportCount, 0, len(order))
	for _, airportID := range order {
		airport, ok := s.airportByIDLocked(airportID)
		if !ok {
			continue
		}
		results = append(results, AirportCount{Airport: airport, Count: counts[airportID]})
	}
	return results
}

// RouteCountsByAirport scans the full route table and counts, per airline,
// how many of its routes have the airport as source or destination. Same
// sort, tie and drop rules as RouteCountsByAirline, airline-keyed.
func (s *Store) RouteCountsByAirport(airportID int) []AirlineCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int)
	var order []int

	for _, r := range s.routes {
		if r.SrcAirportID != airportID && r.DstAirportID != airportID {
			continue
		}
		if _, seen := counts[r.AirlineID]; !seen {
			order = append(order, r.AirlineID)
		}
		counts[r.AirlineID]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	results := make([]AirlineCount, 0, len(order))
	for _, airlineID := range order {
		airline, ok := s.airlineByIDLocked(airlineID)
		if !ok {
			continue
		}
		results = append(results, AirlineCount{Airline: airline, Count: counts[airlineID]})
	}
	return results
}

// AirlinesByIATA returns every airline ordered by IATA code ascending.
// Records without a code sort first.
func (s *Store) AirlinesByIATA() []models.Airline {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Airline, len(s.airlines))
	copy(out, s.airlines)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].IATA < out[b].IATA
	})
	return out
}

// AirportsByIATA returns every airport ordered by IATA code ascending.
func (s *Store) AirportsByIATA() []models.Airport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Airport, len(s.airports))
	copy(out, s.airports)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].IATA < out[b].IATA
	})
	return out
}
