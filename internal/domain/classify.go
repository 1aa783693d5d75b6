package domain

// Thresholds holds the fixed classification constants. Production code always
// uses DefaultThresholds; the type exists so tests can pass substitutes.
type Thresholds struct {
	BankHeight        float64 // meters above mean sea level (ม.รทก.)
	CriticalDischarge float64 // m³/s
	WatchDischarge    float64 // m³/s
	CriticalDistance  float64 // meters below bank
	WatchDistance     float64 // meters below bank
}

// DefaultThresholds returns the thresholds for the Inburi gauge.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BankHeight:        13.0,
		CriticalDischarge: 2400,
		WatchDischarge:    1800,
		CriticalDistance:  1.0,
		WatchDistance:     2.0,
	}
}

// RiskAssessment is the classified state of the river for one run. It is only
// built from a present water level; see Classify.
type RiskAssessment struct {
	Tier           Severity `json:"tier"`
	DistanceToBank float64  `json:"distance_to_bank_m"`
	Level          float64  `json:"level_m"`
	Discharge      float64  `json:"discharge_cms"`
}

// Classify assesses a water level and dam discharge with DefaultThresholds.
func Classify(level, discharge float64) RiskAssessment {
	return DefaultThresholds().Classify(level, discharge)
}

// Classify maps a water level and dam discharge to a severity tier. The first
// matching rule wins and all comparisons are strict, so a value sitting exactly
// on a threshold falls through to the lower tier:
//   - critical: discharge > CriticalDischarge or distance < CriticalDistance
//   - watch:    discharge > WatchDischarge or distance < WatchDistance
//   - normal:   otherwise
func (t Thresholds) Classify(level, discharge float64) RiskAssessment {
	distance := t.BankHeight - level

	tier := Normal
	switch {
	case discharge > t.CriticalDischarge || distance < t.CriticalDistance:
		tier = Critical
	case discharge > t.WatchDischarge || distance < t.WatchDistance:
		tier = Watch
	}

	return RiskAssessment{
		Tier:           tier,
		DistanceToBank: distance,
		Level:          level,
		Discharge:      discharge,
	}
}
