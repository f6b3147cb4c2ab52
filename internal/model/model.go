// Package model builds the UHI scorer: a synthetic training set drawn from a
// seeded source, an ordinary least-squares fit on (lat, lon, avg_temp), and
// the immutable Model that scores requests with that fit.
package model

import (
	"time"

	"github.com/couchcryptid/urban-heat-service/internal/domain"
)

// Weights are the per-input slopes of the linear fit.
type Weights struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	AvgTemp float64 `json:"avg_temp"`
}

// Model is a fitted linear scorer. It is never mutated after construction
// and is safe for concurrent use.
type Model struct {
	weights   Weights
	intercept float64

	rSquared  float64
	samples   int
	trainedAt time.Time
}

// New returns a Model with known coefficients and no fit diagnostics.
func New(w Weights, intercept float64) *Model {
	return &Model{weights: w, intercept: intercept}
}

// Score returns the clamped UHI intensity for the given inputs.
func (m *Model) Score(lat, lon, avgTemp float64) float64 {
	return domain.ClampUHI(m.raw(lat, lon, avgTemp))
}

func (m *Model) raw(lat, lon, avgTemp float64) float64 {
	return m.weights.Lat*lat + m.weights.Lon*lon + m.weights.AvgTemp*avgTemp + m.intercept
}

// Weights returns the fitted slopes.
func (m *Model) Weights() Weights { return m.weights }

// Intercept returns the fitted constant term.
func (m *Model) Intercept() float64 { return m.intercept }

// RSquared is the coefficient of determination on the training set; zero for New.
func (m *Model) RSquared() float64 { return m.rSquared }

// Samples is the size of the training set; zero for New.
func (m *Model) Samples() int { return m.samples }

// TrainedAt is when Train finished; zero for Fit and New.
func (m *Model) TrainedAt() time.Time { return m.trainedAt }
