// Command gendata writes the synthetic UHI training set for a seed as a JSON
// fixture and prints summary stats plus the coefficients a fit on it yields.
// It uses the same model package as the service, so the fixture matches what
// the server trains on at startup.
//
// Usage:
//
//	go run ./cmd/gendata -out data/training_seed42.json
//	go run ./cmd/gendata -seed 7 -n 5000 -out /tmp/train.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/urban-heat-service/internal/domain"
	"github.com/couchcryptid/urban-heat-service/internal/model"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seed := flag.Uint64("seed", model.DefaultSeed, "random seed for the synthetic generator")
	n := flag.Int("n", model.DefaultSamples, "number of samples to generate")
	out := flag.String("out", "", "output path for the JSON training fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *n < 4 {
		return fmt.Errorf("-n must be at least 4, got %d", *n)
	}

	samples := model.GenerateSamples(model.NewSource(*seed), *n)
	log.Printf("generated %d samples (seed %d)", len(samples), *seed)

	if err := writeJSON(*out, samples); err != nil {
		return fmt.Errorf("writing training fixture: %w", err)
	}
	log.Printf("wrote training fixture: %s", *out)

	m, err := model.Fit(samples)
	if err != nil {
		return fmt.Errorf("fitting model: %w", err)
	}

	printStats(samples, m)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(samples []domain.TrainingSample, m *model.Model) {
	uhi := make([]float64, len(samples))
	tiers := map[domain.Label]int{}
	var floor, ceiling int
	for i, s := range samples {
		uhi[i] = s.UHI
		tiers[domain.Classify(s.UHI)]++
		switch s.UHI {
		case domain.MinUHI:
			floor++
		case domain.MaxUHI:
			ceiling++
		}
	}
	mean, std := stat.MeanStdDev(uhi, nil)

	fmt.Println("\n=== Training set ===")
	fmt.Printf("Samples: %d\n", len(samples))
	fmt.Printf("uhi_true mean=%.3f std=%.3f\n", mean, std)
	fmt.Printf("Clamped: floor=%d ceiling=%d\n", floor, ceiling)
	fmt.Printf("By tier: Low=%d, Moderate=%d, High=%d\n",
		tiers[domain.LabelLow], tiers[domain.LabelModerate], tiers[domain.LabelHigh])

	w := m.Weights()
	fmt.Println("\n=== Fit ===")
	fmt.Printf("w_lat=%.6f w_lon=%.6f w_avg_temp=%.6f intercept=%.6f\n", w.Lat, w.Lon, w.AvgTemp, m.Intercept())
	fmt.Printf("R^2=%.4f\n", m.RSquared())
}
