package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jonboulle/clockwork"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/urban-heat-service/internal/domain"
)

// ErrModelConstruction marks any failure to produce a usable model.
var ErrModelConstruction = errors.New("model construction failed")

// numParams is intercept + lat + lon + avg_temp.
const numParams = 4

// TrainOptions control startup training. Zero values select the defaults.
type TrainOptions struct {
	Seed    uint64
	Samples int

	// Source overrides the seeded PCG source when set.
	Source rand.Source
	// Clock stamps TrainedAt; defaults to the real clock.
	Clock clockwork.Clock
}

// Train draws the synthetic training set and fits the model on it. The
// samples are not retained.
func Train(opts TrainOptions) (*Model, error) {
	if opts.Samples == 0 {
		opts.Samples = DefaultSamples
	}
	if opts.Source == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = DefaultSeed
		}
		opts.Source = NewSource(seed)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	m, err := Fit(GenerateSamples(opts.Source, opts.Samples))
	if err != nil {
		return nil, err
	}
	m.trainedAt = opts.Clock.Now()
	return m, nil
}

// Fit solves the least-squares problem uhi ~ b + lat + lon + avg_temp by QR
// decomposition of the design matrix.
func Fit(samples []domain.TrainingSample) (*Model, error) {
	n := len(samples)
	if n < numParams {
		return nil, fmt.Errorf("%w: need at least %d samples, got %d", ErrModelConstruction, numParams, n)
	}

	X := mat.NewDense(n, numParams, nil)
	y := mat.NewVecDense(n, nil)
	for i, s := range samples {
		X.Set(i, 0, 1)
		X.Set(i, 1, s.Lat)
		X.Set(i, 2, s.Lon)
		X.Set(i, 3, s.AvgTemp)
		y.SetVec(i, s.UHI)
	}

	var qr mat.QR
	qr.Factorize(X)

	coeffs := mat.NewVecDense(numParams, nil)
	if err := qr.SolveVecTo(coeffs, false, y); err != nil {
		return nil, fmt.Errorf("%w: solve least squares: %w", ErrModelConstruction, err)
	}

	for i := 0; i < numParams; i++ {
		if c := coeffs.AtVec(i); math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: coefficient %d is not finite", ErrModelConstruction, i)
		}
	}

	m := &Model{
		intercept: coeffs.AtVec(0),
		weights: Weights{
			Lat:     coeffs.AtVec(1),
			Lon:     coeffs.AtVec(2),
			AvgTemp: coeffs.AtVec(3),
		},
		samples: n,
	}

	estimates := make([]float64, n)
	values := make([]float64, n)
	for i, s := range samples {
		estimates[i] = m.raw(s.Lat, s.Lon, s.AvgTemp)
		values[i] = s.UHI
	}
	m.rSquared = stat.RSquaredFrom(estimates, values, nil)

	return m, nil
}
