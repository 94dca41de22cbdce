package service

import "math"

// RoundingPrecision is the factor used when rounding monetary values and
// percentages for API responses (100 = two decimal places).
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places. Used at the response
// boundary only; the metric functions themselves never round.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// roundPtr rounds through an optional value, keeping nil as nil.
func roundPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	rounded := round(*value)
	return &rounded
}
