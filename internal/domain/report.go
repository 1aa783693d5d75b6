package domain

import "time"

// RunReport summarizes one pipeline run for logs and downstream consumers.
type RunReport struct {
	RunID             string          `json:"run_id"`
	Station           string          `json:"station"`
	Level             *float64        `json:"level_m,omitempty"`
	LevelError        string          `json:"level_error,omitempty"`
	Discharge         float64         `json:"discharge_cms"`
	DischargeFallback bool            `json:"discharge_fallback"`
	Assessment        *RiskAssessment `json:"assessment,omitempty"`
	Message           string          `json:"message"`
	Dispatched        bool            `json:"dispatched"`
	DispatchError     string          `json:"dispatch_error,omitempty"`
	StartedAt         time.Time       `json:"started_at"`
	FinishedAt        time.Time       `json:"finished_at"`
}

// Tier returns the classified tier, or false when the level was not obtained.
func (r RunReport) Tier() (Severity, bool) {
	if r.Assessment == nil {
		return Normal, false
	}
	return r.Assessment.Tier, true
}
