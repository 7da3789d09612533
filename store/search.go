package store

import (
	"sort"

	"flightnet/geo"
	"flightnet/models"
)

// Itinerary is one two-leg connection from a source to a destination
// through Via. Airline pointers are nil when the route's airline ID does
// not resolve; the itinerary is still valid.
type Itinerary struct {
	Via        models.Airport
	Leg1Miles  float64
	Leg2Miles  float64
	TotalMiles float64
	Airline1   *models.Airline
	Airline2   *models.Airline
}

// OneHopItineraries enumerates every source -> via -> destination
// connection made of two zero-stop routes and ranks it by total
// great-circle distance.
//
// This is a bounded two-level walk of the adjacency index, not general
// graph search: cost is |outbound(src)| x max |outbound(via)|. Candidates
// whose intermediate airport cannot be resolved are dropped; src == dst is
// run mechanically, so loops present in the data are legal results. The
// caller is expected to have validated that src and dst themselves resolve
// to live airports.
func (s *Store) OneHopItineraries(srcID, dstID int) []Itinerary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, srcOK := s.airportByIDLocked(srcID)
	dst, dstOK := s.airportByIDLocked(dstID)
	if !srcOK || !dstOK {
		return nil
	}

	var results []Itinerary

	for _, i := range s.routesFromSrc[srcID] {
		r1 := s.routes[i]
		if r1.Stops != 0 {
			continue
		}

		via, ok := s.airportByIDLocked(r1.DstAirportID)
		if !ok {
			continue
		}

		for _, j := range s.routesFromSrc[via.ID] {
			r2 := s.routes[j]
			if r2.Stops != 0 {
				continue
			}
			if r2.DstAirportID != dstID {
				continue
			}

			leg1 := geo.Miles(src.Latitude, src.Longitude, via.Latitude, via.Longitude)
			leg2 := geo.Miles(via.Latitude, via.Longitude, dst.Latitude, dst.Longitude)

			it := Itinerary{
				Via:        via,
				Leg1Miles:  leg1,
				Leg2Miles:  leg2,
				TotalMiles: leg1 + leg2,
			}
			if al, ok := s.airlineByIDLocked(r1.AirlineID); ok {
				it.Airline1 = &al
			}
			if al, ok := s.airlineByIDLocked(r2.AirlineID); ok {
				it.Airline2 = &al
			}

			results = append(results, it)
		}
	}

	// Stable keeps ties in discovery order; no secondary key is defined.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].TotalMiles < results[b].TotalMiles
	})

	return results
}
