package domain

import "math"

// Score bounds shared by the model and the advisor.
const (
	MinUHI = 0.0
	MaxUHI = 100.0
)

// TrainingSample is one synthetic observation used to fit the model.
type TrainingSample struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	AvgTemp float64 `json:"avg_temp"`
	UHI     float64 `json:"uhi_true"`
}

// ClampUHI bounds v to [MinUHI, MaxUHI]. NaN maps to MinUHI.
func ClampUHI(v float64) float64 {
	if math.IsNaN(v) {
		return MinUHI
	}
	return math.Max(MinUHI, math.Min(MaxUHI, v))
}
