package service

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"hydroponics/internal/models"
	"hydroponics/internal/repository"
)

// ----------- Simulation constants -----------
const (
	BaselinePH          = 6.0  // starting pH of a system without readings
	BaselineTemperature = 22.0 // °C
	BaselineTDS         = 800  // ppm
	StepPH              = 0.1  // max pH change per tick
	StepTemperature     = 0.5  // max °C change per tick
	StepTDS             = 25   // max ppm change per tick
	BandPHLow           = 5.0  // plausible nutrient solution band
	BandPHHigh          = 7.5
	BandTempLow         = 15.0 // °C
	BandTempHigh        = 30.0 // °C
	BandTDSLow          = 300  // ppm
	BandTDSHigh         = 1500 // ppm
)

type reading struct {
	ph, temp float64
	tds      int
}

// SimulatorService appends a random-walk reading to every system on each tick.
type SimulatorService struct {
	systems      repository.SystemRepo
	measurements repository.MeasurementRepo

	mu   sync.Mutex
	rnd  *rand.Rand
	last map[int]reading

	onTick TickObserver
}

// TickObserver is told the outcome of every simulator tick.
type TickObserver func(stored int, took time.Duration, err error)

// NewSimulatorService returns a simulator; a nil rnd is seeded from the clock.
func NewSimulatorService(systems repository.SystemRepo, measurements repository.MeasurementRepo, rnd *rand.Rand) *SimulatorService {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &SimulatorService{
		systems:      systems,
		measurements: measurements,
		rnd:          rnd,
		last:         make(map[int]reading),
	}
}

// OnTick sets the observer called after each tick of Run.
func (s *SimulatorService) OnTick(fn TickObserver) { s.onTick = fn }

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			start := time.Now()
			n, err := s.Step(ctx, now)
			if s.onTick != nil {
				s.onTick(n, time.Since(start), err)
			}
		}
	}
}

// Step records one reading per system and returns how many were stored.
// A failing system is skipped; the first error is returned.
func (s *SimulatorService) Step(ctx context.Context, now time.Time) (int, error) {
	systems, err := s.systems.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	live := make(map[int]struct{}, len(systems))
	for _, sys := range systems {
		live[sys.ID] = struct{}{}
	}
	for id := range s.last {
		if _, ok := live[id]; !ok {
			delete(s.last, id)
		}
	}

	var (
		stored   int
		firstErr error
	)
	for _, sys := range systems {
		prev, err := s.previous(ctx, sys.ID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		next := s.walk(prev)
		_, err = s.measurements.Create(ctx, models.Measurement{
			SystemID:    sys.ID,
			Timestamp:   now.UTC(),
			PH:          next.ph,
			Temperature: next.temp,
			TDS:         next.tds,
		})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.last[sys.ID] = next
		stored++
	}
	return stored, firstErr
}

// previous returns the last simulated reading, falling back to the newest
// stored one and then to the baseline.
func (s *SimulatorService) previous(ctx context.Context, systemID int) (reading, error) {
	if r, ok := s.last[systemID]; ok {
		return r, nil
	}
	ms, err := s.measurements.Latest(ctx, systemID, 1)
	if err != nil {
		return reading{}, err
	}
	if len(ms) == 0 {
		return reading{ph: BaselinePH, temp: BaselineTemperature, tds: BaselineTDS}, nil
	}
	return reading{ph: ms[0].PH, temp: ms[0].Temperature, tds: ms[0].TDS}, nil
}

func (s *SimulatorService) walk(r reading) reading {
	return reading{
		ph:   round(clampFloat(r.ph+s.delta(StepPH), BandPHLow, BandPHHigh), 2),
		temp: round(clampFloat(r.temp+s.delta(StepTemperature), BandTempLow, BandTempHigh), 1),
		tds:  clampInt(r.tds+int(math.Round(s.delta(StepTDS))), BandTDSLow, BandTDSHigh),
	}
}

// delta is uniform in [-step, step].
func (s *SimulatorService) delta(step float64) float64 {
	return (s.rnd.Float64()*2 - 1) * step
}

// helpers
func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
