package domain

// DefaultDischarge is the Chao Phraya Dam discharge, in m³/s, assumed when no
// discharge figure can be obtained.
const DefaultDischarge = 1000.0

// WaterLevelReading is the outcome of one attempt to read a station's level.
// A reading without a level carries the error that caused it.
type WaterLevelReading struct {
	Station string
	Err     error

	level   float64
	present bool
}

// NewWaterLevelReading records a successfully extracted level.
func NewWaterLevelReading(station string, level float64) WaterLevelReading {
	return WaterLevelReading{Station: station, level: level, present: true}
}

// MissingWaterLevel records a failed acquisition.
func MissingWaterLevel(station string, err error) WaterLevelReading {
	return WaterLevelReading{Station: station, Err: err}
}

// Level returns the level in meters MSL and whether it is present.
func (r WaterLevelReading) Level() (float64, bool) {
	return r.level, r.present
}

// DischargeReading is the dam discharge handed to the pipeline, in m³/s.
// Fallback reports whether Rate is DefaultDischarge substituted for a failed
// source. Classification only ever sees Rate.
type DischargeReading struct {
	Rate     float64
	Fallback bool
}
