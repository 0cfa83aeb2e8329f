package dto

import "time"

type EventCount struct {
	EventName  string     `json:"event_name"`
	Count      int64      `json:"count"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

type EventStatsResponse struct {
	Events []EventCount `json:"events"`
}

type BusListener struct {
	EventName     string `json:"event_name"`
	ListenerCount int    `json:"listener_count"`
}

type EventGauge struct {
	EventName string    `json:"event_name"`
	Count     int64     `json:"count"`
	LastSeen  time.Time `json:"last_seen"`
}

type BusStatsResponse struct {
	MaxListeners int           `json:"max_listeners"`
	Listeners    []BusListener `json:"listeners"`
	Observed     []EventGauge  `json:"observed"`
}
