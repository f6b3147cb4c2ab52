package model

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/couchcryptid/urban-heat-service/internal/domain"
)

// Defaults for the startup training set.
const (
	DefaultSeed    uint64 = 42
	DefaultSamples        = 1200
)

// Sampling ranges of the synthetic inputs.
const (
	LatMin, LatMax         = -60.0, 60.0
	LonMin, LonMax         = -150.0, 150.0
	AvgTempMin, AvgTempMax = -5.0, 35.0

	noiseSigma = 5.0
)

// NewSource returns the deterministic random source used for a seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// GroundTruth is the noiseless synthetic UHI before clamping:
//
//	clamp((t-10)/20, 0, 1)*70 + (30-|lat|)*0.6 + |lon|*0.02
func GroundTruth(lat, lon, avgTemp float64) float64 {
	heat := math.Max(0, math.Min(1, (avgTemp-10)/20)) * 70
	return heat + (30-math.Abs(lat))*0.6 + math.Abs(lon)*0.02
}

// GenerateSamples draws n synthetic samples from src. Each input column is
// drawn in full before the next (lat, lon, avg_temp, then noise), so the
// same source state always yields the same set.
func GenerateSamples(src rand.Source, n int) []domain.TrainingSample {
	lat := drawUniform(src, LatMin, LatMax, n)
	lon := drawUniform(src, LonMin, LonMax, n)
	avg := drawUniform(src, AvgTempMin, AvgTempMax, n)

	noise := distuv.Normal{Mu: 0, Sigma: noiseSigma, Src: src}

	samples := make([]domain.TrainingSample, n)
	for i := range samples {
		samples[i] = domain.TrainingSample{
			Lat:     lat[i],
			Lon:     lon[i],
			AvgTemp: avg[i],
			UHI:     domain.ClampUHI(GroundTruth(lat[i], lon[i], avg[i]) + noise.Rand()),
		}
	}
	return samples
}

func drawUniform(src rand.Source, lo, hi float64, n int) []float64 {
	dist := distuv.Uniform{Min: lo, Max: hi, Src: src}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}
