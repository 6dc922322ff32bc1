package api

import "time"

// LogEntry is the access-log record published to Kafka for every handled
// request.
type LogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	IP         string    `json:"ip"`
	StatusCode int       `json:"status_code"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Size       int       `json:"size_bytes"`
	Duration   float64   `json:"duration_sec"`
	Service    string    `json:"service"`
}
