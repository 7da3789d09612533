// Package loader ingests OpenFlights-format reference data into the store.
// Rows that fail field-level coercion (short rows, missing or placeholder
// numeric keys) are skipped, not fatal: the published .dat files are not
// clean and a handful of bad rows must not take the service down.
package loader

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"flightnet/models"
	"flightnet/store"
)

// openFlightsNull is the placeholder OpenFlights uses for absent values.
const openFlightsNull = `\N`

// splitLine splits one OpenFlights CSV line. The format quotes fields that
// contain commas but never escapes quotes, so encoding/csv's strict dialect
// rejects real rows; this splitter matches the data instead.
func splitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

func parseID(field string) (int, bool) {
	field = strings.TrimSpace(field)
	if field == "" || field == openFlightsNull {
		return 0, false
	}
	id, err := strconv.Atoi(field)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseIntField coerces a non-key numeric field, defaulting to zero on
// garbage the way the source data has always been treated.
func parseIntField(field string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(field))
	return n
}

func parseFloatField(field string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(field), 64)
	return f
}

func forEachLine(filename string, fn func(fields []string)) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fn(splitLine(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	return nil
}

// LoadAirlines reads an OpenFlights airlines.dat file into the store.
// Layout: 0:ID, 1:Name, 2:Alias, 3:IATA, 4:ICAO, 5:Callsign, 6:Country,
// 7:Active.
func LoadAirlines(s *store.Store, filename string) (int, error) {
	loaded, dupes := 0, 0
	err := forEachLine(filename, func(fields []string) {
		if len(fields) < 8 {
			return
		}
		id, ok := parseID(fields[0])
		if !ok {
			return
		}

		active := strings.TrimSpace(fields[7])
		a := models.Airline{
			ID:      id,
			Name:    strings.TrimSpace(fields[1]),
			IATA:    store.NormalizeIATA(fields[3]),
			Country: strings.TrimSpace(fields[6]),
			Active:  active == "Y" || active == "y" || active == "1",
		}
		if err := s.InsertAirline(a); err != nil {
			dupes++
			return
		}
		loaded++
	})
	if err != nil {
		return 0, err
	}
	if dupes > 0 {
		log.Printf("Skipped %d duplicate airline IDs in %s", dupes, filename)
	}
	return loaded, nil
}

// LoadAirports reads an OpenFlights airports.dat file into the store.
// Layout: 0:ID, 1:Name, 2:City, 3:Country, 4:IATA, 5:ICAO, 6:Latitude,
// 7:Longitude.
func LoadAirports(s *store.Store, filename string) (int, error) {
	loaded, dupes := 0, 0
	err := forEachLine(filename, func(fields []string) {
		if len(fields) < 8 {
			return
		}
		id, ok := parseID(fields[0])
		if !ok {
			return
		}

		a := models.Airport{
			ID:        id,
			Name:      strings.TrimSpace(fields[1]),
			City:      strings.TrimSpace(fields[2]),
			Country:   strings.TrimSpace(fields[3]),
			IATA:      store.NormalizeIATA(fields[4]),
			Latitude:  parseFloatField(fields[6]),
			Longitude: parseFloatField(fields[7]),
		}
		if err := s.InsertAirport(a); err != nil {
			dupes++
			return
		}
		loaded++
	})
	if err != nil {
		return 0, err
	}
	if dupes > 0 {
		log.Printf("Skipped %d duplicate airport IDs in %s", dupes, filename)
	}
	return loaded, nil
}

// LoadRoutes reads an OpenFlights routes.dat file into the store. Layout:
// 0:Airline, 1:AirlineID, 2:Src, 3:SrcID, 4:Dst, 5:DstID, 6:Codeshare,
// 7:Stops, 8:Equipment. All three numeric IDs are required; referential
// integrity is not — routes may name airlines or airports that were never
// loaded, and consumers resolve them as "unknown" at use time.
func LoadRoutes(s *store.Store, filename string) (int, error) {
	loaded := 0
	err := forEachLine(filename, func(fields []string) {
		if len(fields) < 9 {
			return
		}
		airlineID, ok := parseID(fields[1])
		if !ok {
			return
		}
		srcID, ok := parseID(fields[3])
		if !ok {
			return
		}
		dstID, ok := parseID(fields[5])
		if !ok {
			return
		}

		s.AddRoute(models.Route{
			AirlineID:    airlineID,
			SrcAirportID: srcID,
			DstAirportID: dstID,
			Stops:        parseIntField(fields[7]),
		})
		loaded++
	})
	if err != nil {
		return 0, err
	}
	return loaded, nil
}

// LoadFiles ingests the three flat files in dependency order and logs the
// table sizes the way the service has always announced them.
func LoadFiles(s *store.Store, airlinesFile, airportsFile, routesFile string) error {
	n, err := LoadAirlines(s, airlinesFile)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d airlines", n)

	n, err = LoadAirports(s, airportsFile)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d airports", n)

	n, err = LoadRoutes(s, routesFile)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d routes", n)
	return nil
}
