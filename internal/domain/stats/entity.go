package stats

import "time"

type EventCount struct {
	EventName  string
	Count      int64
	LastSeenAt *time.Time
}
