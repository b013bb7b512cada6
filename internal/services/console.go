package services

import (
	"context"
	"strings"

	"github.com/gowheels/gowheels-backend/internal/apperr"
	"github.com/gowheels/gowheels-backend/internal/store"
)

// NamedQuery is one entry of the dashboard's query console.
type NamedQuery struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SQL         string `json:"sql"`
}

// ConsoleQueries is the complete set of statements the console will run.
var ConsoleQueries = []NamedQuery{
	{
		Name:        "top-available-drivers",
		Description: "Top available drivers",
		SQL: `SELECT d.name AS driver_name, d.rating, v.car_model, v.car_type
FROM drivers d
JOIN vehicles v ON d.car_no = v.car_no
WHERE d.current_status = 'Available'
ORDER BY d.rating DESC
LIMIT 5`,
	},
	{
		Name:        "off-duty-drivers",
		Description: "Off-duty drivers",
		SQL: `SELECT d.name AS driver_name, d.rating, v.car_model, v.car_type
FROM drivers d
JOIN vehicles v ON d.car_no = v.car_no
WHERE d.current_status = 'Off Duty'
ORDER BY d.rating DESC`,
	},
	{
		Name:        "age-demographics",
		Description: "Age demographics",
		SQL: `SELECT 'Drivers' AS user_type,
    ROUND(AVG(EXTRACT(YEAR FROM CURRENT_DATE) - EXTRACT(YEAR FROM date_of_birth))::numeric, 1) AS average_age,
    MIN(EXTRACT(YEAR FROM CURRENT_DATE) - EXTRACT(YEAR FROM date_of_birth)) AS youngest_age,
    MAX(EXTRACT(YEAR FROM CURRENT_DATE) - EXTRACT(YEAR FROM date_of_birth)) AS oldest_age
FROM drivers
UNION
SELECT 'Passengers' AS user_type,
    ROUND(AVG(EXTRACT(YEAR FROM CURRENT_DATE) - EXTRACT(YEAR FROM date_of_birth))::numeric, 1) AS average_age,
    MIN(EXTRACT(YEAR FROM CURRENT_DATE) - EXTRACT(YEAR FROM date_of_birth)) AS youngest_age,
    MAX(EXTRACT(YEAR FROM CURRENT_DATE) - EXTRACT(YEAR FROM date_of_birth)) AS oldest_age
FROM passengers
ORDER BY user_type`,
	},
	{
		Name:        "popular-car-models",
		Description: "Popular car models",
		SQL: `SELECT v.car_model, COUNT(*) AS driver_count
FROM vehicles v
JOIN drivers d ON v.car_no = d.car_no
GROUP BY v.car_model
ORDER BY driver_count DESC
LIMIT 5`,
	},
	{
		Name:        "ratings-by-car-type",
		Description: "Driver ratings by car type",
		SQL: `SELECT v.car_type,
    ROUND(AVG(d.rating)::numeric, 2) AS average_rating,
    MIN(d.rating) AS lowest_rating,
    MAX(d.rating) AS highest_rating,
    COUNT(d.driver_id) AS driver_count
FROM drivers d
JOIN vehicles v ON d.car_no = v.car_no
GROUP BY v.car_type
HAVING COUNT(d.driver_id) > 0
ORDER BY average_rating DESC`,
	},
	{
		Name:        "passengers-without-trips",
		Description: "Passengers with bookings but no trips",
		SQL: `SELECT p.passenger_id, p.name, p.contact_number, COUNT(b.booking_id) AS number_of_bookings
FROM passengers p
INNER JOIN bookings b ON p.passenger_id = b.passenger_id
LEFT JOIN trips t ON p.passenger_id = t.passenger_id
WHERE t.trip_id IS NULL
GROUP BY p.passenger_id, p.name, p.contact_number
ORDER BY number_of_bookings DESC`,
	},
	{
		Name:        "mismatched-pickup-locations",
		Description: "Passengers whose bookings start away from their stored pickup",
		SQL: `SELECT p.passenger_id, p.name,
    p.pickup_location AS stored_location,
    b.pickup_location AS booking_location
FROM passengers p
JOIN bookings b ON p.passenger_id = b.passenger_id
WHERE p.pickup_location IS NOT NULL
    AND b.pickup_location IS NOT NULL
    AND p.pickup_location != b.pickup_location
ORDER BY p.name`,
	},
}

// QueryConsole runs allow-listed read-only statements. Nothing outside
// ConsoleQueries ever reaches the database.
type QueryConsole struct {
	runner  store.QueryRunner
	allowed map[string]NamedQuery
}

// NewQueryConsole accepts a nil runner; Execute then reports Unsupported.
func NewQueryConsole(runner store.QueryRunner) *QueryConsole {
	c := &QueryConsole{runner: runner, allowed: map[string]NamedQuery{}}
	for _, q := range ConsoleQueries {
		c.allowed[q.Name] = q
		c.allowed[normalizeSQL(q.SQL)] = q
	}
	return c
}

func (c *QueryConsole) Queries() []NamedQuery {
	return ConsoleQueries
}

// Resolve matches a query name or the statement text, ignoring differences
// in whitespace.
func (c *QueryConsole) Resolve(query string) (NamedQuery, error) {
	q, ok := c.allowed[normalizeSQL(query)]
	if !ok {
		return NamedQuery{}, apperr.Forbidden("query not allowed, only predefined SELECT queries are permitted")
	}
	return q, nil
}

func (c *QueryConsole) Execute(ctx context.Context, query string) ([]map[string]any, error) {
	q, err := c.Resolve(query)
	if err != nil {
		return nil, err
	}
	if c.runner == nil {
		return nil, apperr.Unsupported("the configured store cannot run SQL queries")
	}
	return c.runner.RunReadOnly(ctx, q.SQL)
}

func normalizeSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
