package gormstore

import (
	"context"
	"time"

	"github.com/gowheels/gowheels-backend/internal/models"
)

const ratingsByCarTypeSQL = `
SELECT v.car_type,
       ROUND(AVG(d.rating)::numeric, 2) AS average_rating,
       MIN(d.rating) AS lowest_rating,
       MAX(d.rating) AS highest_rating,
       COUNT(d.driver_id) AS driver_count
FROM drivers d
JOIN vehicles v ON d.car_no = v.car_no
GROUP BY v.car_type
HAVING COUNT(d.driver_id) > 0
ORDER BY average_rating DESC, v.car_type`

// Ages are calendar-year differences against @year.
const ageStatsSQL = `
SELECT user_type, average_age, youngest_age, oldest_age FROM (
    SELECT 'Drivers' AS user_type,
           ROUND(AVG(@year - EXTRACT(YEAR FROM date_of_birth))::numeric, 1) AS average_age,
           MIN(@year - EXTRACT(YEAR FROM date_of_birth))::int AS youngest_age,
           MAX(@year - EXTRACT(YEAR FROM date_of_birth))::int AS oldest_age,
           COUNT(*) AS n
    FROM drivers
    UNION ALL
    SELECT 'Passengers' AS user_type,
           ROUND(AVG(@year - EXTRACT(YEAR FROM date_of_birth))::numeric, 1),
           MIN(@year - EXTRACT(YEAR FROM date_of_birth))::int,
           MAX(@year - EXTRACT(YEAR FROM date_of_birth))::int,
           COUNT(*)
    FROM passengers
) s
WHERE n > 0
ORDER BY user_type`

const passengersByAgeGroupSQL = `
SELECT age_group, COUNT(*) AS passenger_count FROM (
    SELECT CASE
               WHEN age < 20 THEN 'Under 20'
               WHEN age BETWEEN 20 AND 25 THEN '20-25'
               WHEN age BETWEEN 26 AND 30 THEN '26-30'
               WHEN age BETWEEN 31 AND 40 THEN '31-40'
               ELSE 'Over 40'
           END AS age_group
    FROM (SELECT @year - EXTRACT(YEAR FROM date_of_birth) AS age FROM passengers) a
) g
GROUP BY age_group
ORDER BY CASE age_group
             WHEN 'Under 20' THEN 1
             WHEN '20-25' THEN 2
             WHEN '26-30' THEN 3
             WHEN '31-40' THEN 4
             ELSE 5
         END`

func (s *Store) RatingsByCarType(ctx context.Context) ([]models.RatingByCarType, error) {
	out := []models.RatingByCarType{}
	if err := s.conn(ctx).Raw(ratingsByCarTypeSQL).Scan(&out).Error; err != nil {
		return nil, translate(err, "ratings by car type")
	}
	return out, nil
}

func (s *Store) AgeStats(ctx context.Context, at time.Time) ([]models.AgeStat, error) {
	out := []models.AgeStat{}
	err := s.conn(ctx).Raw(ageStatsSQL, map[string]any{"year": at.Year()}).Scan(&out).Error
	if err != nil {
		return nil, translate(err, "age stats")
	}
	return out, nil
}

func (s *Store) PassengersByAgeGroup(ctx context.Context, at time.Time) ([]models.AgeGroupCount, error) {
	out := []models.AgeGroupCount{}
	err := s.conn(ctx).Raw(passengersByAgeGroupSQL, map[string]any{"year": at.Year()}).Scan(&out).Error
	if err != nil {
		return nil, translate(err, "passengers by age group")
	}
	return out, nil
}
