package risk

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository for
// deployments that maintain their hotspot table in a database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL hotspot repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// LoadHotspots retrieves all hotspots ordered by incident count.
func (r *PostgresRepository) LoadHotspots(ctx context.Context) ([]Hotspot, error) {
	query := `
		SELECT area, lat, lon, incident_count
		FROM crime_hotspots
		ORDER BY incident_count DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotspots []Hotspot
	for rows.Next() {
		var h Hotspot
		if err := rows.Scan(&h.Area, &h.Lat, &h.Lon, &h.IncidentCount); err != nil {
			return nil, err
		}
		hotspots = append(hotspots, h)
	}

	return hotspots, rows.Err()
}
