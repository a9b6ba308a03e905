package sensor_simulator

import (
	"math/rand"
	"sync"
	"time"

	"github.com/agrisense/cwsi-eta/internal/model"
	"github.com/agrisense/cwsi-eta/internal/model/messages"
)

// Tunables for the synthetic field.
const (
	// latent greenness random walk, kept inside a plausible NDVI band
	ndviMinLatent = 0.10
	ndviMaxLatent = 0.95
	ndviStep      = 0.01

	// canopy temperature walk (deg C)
	canopySeed = 27.0
	canopyMin  = 12.0
	canopyMax  = 44.0
	canopyStep = 0.4

	// total NIR+Red reflectance, jittered per reading
	bandTotal       = 0.70
	bandTotalJitter = 0.05
)

// DataGenerator holds the latent canopy state of one simulated sensor and
// walks it forward on every reading.
type DataGenerator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	ndvi    float64
	canopyT float64
	seeded  bool
}

// NewDataGenerator creates a generator; a zero seed falls back to the clock.
func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Next advances the latent state and emits one observation. The reflectance
// pair is derived so the latent greenness is exactly the NDVI of the
// emitted bands.
func (g *DataGenerator) Next(sensor *model.Sensor) messages.ObservationEvent {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.seeded {
		g.ndvi = ndviMinLatent + g.rng.Float64()*(ndviMaxLatent-ndviMinLatent)
		g.canopyT = canopySeed + g.rng.NormFloat64()
		g.seeded = true
	}

	g.ndvi = clamp(g.ndvi+g.rng.NormFloat64()*ndviStep, ndviMinLatent, ndviMaxLatent)
	g.canopyT = clamp(g.canopyT+g.rng.NormFloat64()*canopyStep, canopyMin, canopyMax)

	total := bandTotal + (g.rng.Float64()*2-1)*bandTotalJitter
	nir := total * (1 + g.ndvi) / 2
	red := total * (1 - g.ndvi) / 2

	return messages.ObservationEvent{
		FieldID:   sensor.FieldID,
		SensorID:  sensor.ID,
		Nir:       nir,
		Red:       red,
		TSensor:   g.canopyT,
		Timestamp: time.Now().UTC(),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
