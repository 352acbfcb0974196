package resolve_duration

// DurationResponse HTTP response model
type DurationResponse struct {
	WorkerID        int64  `json:"workerId"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}
