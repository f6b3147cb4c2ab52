// Command validate trains the startup model and checks the scorer and advisor
// against their contracts: score range, determinism, tier partition, tip
// cardinality, and the warm-versus-cold trend inherited from the generator.
// Each check runs as a named phase and the command exits non-zero if any
// phase fails.
//
// Usage:
//
//	go run ./cmd/validate
//	go run ./cmd/validate -seed 7 -n 5000
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/urban-heat-service/internal/domain"
	"github.com/couchcryptid/urban-heat-service/internal/model"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	seed := flag.Uint64("seed", model.DefaultSeed, "random seed for the synthetic generator")
	n := flag.Int("n", model.DefaultSamples, "number of training samples")
	flag.Parse()

	os.Exit(run(*seed, *n))
}

func run(seed uint64, n int) int {
	fmt.Println("=== UHI Model Validation ===")
	fmt.Println()

	m, err := model.Train(model.TrainOptions{Seed: seed, Samples: n})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: train model: %v\n", err)
		return 1
	}
	w := m.Weights()
	fmt.Printf("Model: w_lat=%.6f w_lon=%.6f w_avg_temp=%.6f intercept=%.6f R^2=%.4f\n",
		w.Lat, w.Lon, w.AvgTemp, m.Intercept(), m.RSquared())

	phases := []*phase{
		validateScoreRange(m),
		validateDeterminism(m, seed, n),
		validatePartition(),
		validateTips(),
		validateTemperatureTrend(m),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i >= 20 {
				fmt.Printf("  ... and %d more\n", len(p.errors)-20)
				break
			}
			fmt.Printf("  %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	return 0
}

// gridPoints yields a coarse lattice that reaches past the training ranges.
func gridPoints(fn func(lat, lon, avg float64)) {
	for lat := -90.0; lat <= 90; lat += 15 {
		for lon := -180.0; lon <= 180; lon += 30 {
			for avg := -30.0; avg <= 60; avg += 5 {
				fn(lat, lon, avg)
			}
		}
	}
}

func validateScoreRange(m *model.Model) *phase {
	p := &phase{name: "Score range [0,100]"}
	gridPoints(func(lat, lon, avg float64) {
		s := m.Score(lat, lon, avg)
		if math.IsNaN(s) || s < domain.MinUHI || s > domain.MaxUHI {
			p.errorf("score(%g, %g, %g) = %g", lat, lon, avg, s)
		}
	})
	return p
}

func validateDeterminism(m *model.Model, seed uint64, n int) *phase {
	p := &phase{name: "Determinism (score, advise, retrain)"}

	again, err := model.Train(model.TrainOptions{Seed: seed, Samples: n})
	if err != nil {
		p.errorf("retrain: %v", err)
		return p
	}
	if again.Weights() != m.Weights() || again.Intercept() != m.Intercept() {
		p.errorf("retrain with seed %d produced different coefficients", seed)
	}

	gridPoints(func(lat, lon, avg float64) {
		a, b := m.Score(lat, lon, avg), m.Score(lat, lon, avg)
		if a != b {
			p.errorf("score(%g, %g, %g) not stable: %g vs %g", lat, lon, avg, a, b)
		}
		la, ta := domain.Advise(a)
		lb, tb := domain.Advise(a)
		if la != lb || len(ta) != len(tb) {
			p.errorf("advise(%g) not stable", a)
		}
	})
	return p
}

func validatePartition() *phase {
	p := &phase{name: "Label partition (45 / 70)"}

	boundaries := map[float64]domain.Label{
		0:      domain.LabelLow,
		44.999: domain.LabelLow,
		45:     domain.LabelModerate,
		69.999: domain.LabelModerate,
		70:     domain.LabelHigh,
		100:    domain.LabelHigh,
	}
	for uhi, want := range boundaries {
		if got := domain.Classify(uhi); got != want {
			p.errorf("classify(%g) = %s, want %s", uhi, got, want)
		}
	}
	return p
}

func validateTips() *phase {
	p := &phase{name: "Tip cardinality and closing tip"}

	want := map[domain.Label]int{
		domain.LabelHigh:     4,
		domain.LabelModerate: 3,
		domain.LabelLow:      3,
	}
	for _, uhi := range []float64{90, 50, 10} {
		label, tips := domain.Advise(uhi)
		if len(tips) != want[label] {
			p.errorf("%s: %d tips, want %d", label, len(tips), want[label])
		}
		if len(tips) == 0 || tips[len(tips)-1] != domain.ClosingTip {
			p.errorf("%s: closing tip missing or not last", label)
		}
	}
	return p
}

func validateTemperatureTrend(m *model.Model) *phase {
	p := &phase{name: "Warmer inputs score higher on average"}

	var cold, warm float64
	var count int
	for lat := model.LatMin; lat <= model.LatMax; lat += 5 {
		for lon := model.LonMin; lon <= model.LonMax; lon += 10 {
			cold += m.Score(lat, lon, 0)
			warm += m.Score(lat, lon, 30)
			count++
		}
	}
	cold /= float64(count)
	warm /= float64(count)
	fmt.Printf("Mean score: avg_temp=0 -> %.3f, avg_temp=30 -> %.3f\n", cold, warm)

	if warm <= cold {
		p.errorf("mean score at 30C (%.3f) not above mean at 0C (%.3f)", warm, cold)
	}
	return p
}
