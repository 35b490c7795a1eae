package domain

// DatabaseHealth is the backend's database health check result.
type DatabaseHealth struct {
	Status           string  `json:"status"`
	LatencyMs        int64   `json:"latencyMs"`
	HealthPercentage float64 `json:"healthPercentage"`
	Database         string  `json:"database,omitempty"`
	Version          string  `json:"version,omitempty"`
	Error            string  `json:"error,omitempty"`
	Timestamp        int64   `json:"timestamp"`
}

func (h DatabaseHealth) Up() bool { return h.Status == "UP" }

func (h DatabaseHealth) Badge() StyleToken {
	switch {
	case !h.Up():
		return StyleCritical
	case h.HealthPercentage < 50:
		return StyleWarning
	}
	return StyleSuccess
}
