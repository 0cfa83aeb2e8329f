package pg

import (
	"context"
	"database/sql"
	"time"

	"bookingsvc/internal/domain/stats"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) IncrementEventCount(ctx context.Context, eventName string, at time.Time) error {
	_, err := exec(ctx, r.db,
		`INSERT INTO event_counts (event_name, count, last_seen_at)
		 VALUES ($1, 1, $2)
		 ON CONFLICT (event_name) DO UPDATE
		   SET count = event_counts.count + 1,
		       last_seen_at = GREATEST(event_counts.last_seen_at, EXCLUDED.last_seen_at)`,
		eventName, at,
	)
	return err
}

func (r *StatsRepository) GetEventCounts(ctx context.Context) ([]stats.EventCount, error) {
	rows, err := query(ctx, r.db,
		`SELECT event_name, count, last_seen_at
		   FROM event_counts
		  ORDER BY event_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []stats.EventCount
	for rows.Next() {
		var (
			s        stats.EventCount
			lastSeen sql.NullTime
		)
		if err := rows.Scan(&s.EventName, &s.Count, &lastSeen); err != nil {
			return nil, err
		}
		s.LastSeenAt = timePtr(lastSeen)
		res = append(res, s)
	}

	return res, rows.Err()
}
