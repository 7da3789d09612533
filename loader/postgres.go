package loader

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"flightnet/models"
	"flightnet/store"
)

// PostgresConfig holds the connection parameters for the optional database
// ingestion source. The tables mirror the three flat files: airlines(id,
// iata, name, country, active), airports(id, iata, name, city, country,
// latitude, longitude), routes(airline_id, src_airport_id, dst_airport_id,
// stops).
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c PostgresConfig) connString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// OpenPostgres connects with retries; reference databases hosted alongside
// the service routinely come up a few seconds later than it does.
func OpenPostgres(cfg PostgresConfig, maxRetries int) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < maxRetries; i++ {
		db, err = openPostgres(cfg)
		if err == nil {
			return db, nil
		}
		log.Printf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(5 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %w", maxRetries, err)
}

func openPostgres(cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.connString())
	if err != nil {
		return nil, fmt.Errorf("error opening PostgreSQL database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to PostgreSQL database: %w", err)
	}
	return db, nil
}

// LoadPostgres ingests all three tables. The same coercion rules apply as
// for flat files: IATA codes normalized at insert, duplicate IDs skipped
// with a warning, referential integrity of routes not enforced.
func LoadPostgres(ctx context.Context, s *store.Store, db *sql.DB) error {
	n, err := loadAirlinesSQL(ctx, s, db)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d airlines", n)

	n, err = loadAirportsSQL(ctx, s, db)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d airports", n)

	n, err = loadRoutesSQL(ctx, s, db)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d routes", n)
	return nil
}

func loadAirlinesSQL(ctx context.Context, s *store.Store, db *sql.DB) (int, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, COALESCE(iata, ''), COALESCE(name, ''), COALESCE(country, ''), COALESCE(active, false) FROM airlines`)
	if err != nil {
		return 0, fmt.Errorf("querying airlines: %w", err)
	}
	defer rows.Close()

	loaded, dupes := 0, 0
	for rows.Next() {
		var a models.Airline
		if err := rows.Scan(&a.ID, &a.IATA, &a.Name, &a.Country, &a.Active); err != nil {
			return 0, fmt.Errorf("scanning airline row: %w", err)
		}
		if err := s.InsertAirline(a); err != nil {
			dupes++
			continue
		}
		loaded++
	}
	if dupes > 0 {
		log.Printf("Skipped %d duplicate airline IDs in airlines table", dupes)
	}
	return loaded, rows.Err()
}

func loadAirportsSQL(ctx context.Context, s *store.Store, db *sql.DB) (int, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, COALESCE(iata, ''), COALESCE(name, ''), COALESCE(city, ''), COALESCE(country, ''),
		        COALESCE(latitude, 0), COALESCE(longitude, 0) FROM airports`)
	if err != nil {
		return 0, fmt.Errorf("querying airports: %w", err)
	}
	defer rows.Close()

	loaded, dupes := 0, 0
	for rows.Next() {
		var a models.Airport
		if err := rows.Scan(&a.ID, &a.IATA, &a.Name, &a.City, &a.Country, &a.Latitude, &a.Longitude); err != nil {
			return 0, fmt.Errorf("scanning airport row: %w", err)
		}
		if err := s.InsertAirport(a); err != nil {
			dupes++
			continue
		}
		loaded++
	}
	if dupes > 0 {
		log.Printf("Skipped %d duplicate airport IDs in airports table", dupes)
	}
	return loaded, rows.Err()
}

func loadRoutesSQL(ctx context.Context, s *store.Store, db *sql.DB) (int, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT airline_id, src_airport_id, dst_airport_id, COALESCE(stops, 0) FROM routes`)
	if err != nil {
		return 0, fmt.Errorf("querying routes: %w", err)
	}
	defer rows.Close()

	loaded := 0
	for rows.Next() {
		var r models.Route
		if err := rows.Scan(&r.AirlineID, &r.SrcAirportID, &r.DstAirportID, &r.Stops); err != nil {
			return 0, fmt.Errorf("scanning route row: %w", err)
		}
		s.AddRoute(r)
		loaded++
	}
	return loaded, rows.Err()
}
