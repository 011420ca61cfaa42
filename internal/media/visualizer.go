package media

import (
	"hash/fnv"
	"math"
	"sync"
	"time"
)

// EventAudioLevels carries the six visualizer bands to the frontend.
const EventAudioLevels = "audio-levels-update"

const (
	visualizerBands = 6
	idleLevel       = 0.15
	frameStep       = 1.0 / 30.0
)

// Visualizer generates simulated audio levels for the frontend
// visualizer: a deterministic waveform shaped like music (beat pulses,
// energy swells, per-band motion), not real signal analysis.
type Visualizer struct {
	mu      sync.RWMutex
	levels  []float64
	playing bool

	t         float64
	energy    float64
	beatPhase float64
	prev      []float64
}

// NewVisualizer returns a visualizer resting at the idle level.
func NewVisualizer() *Visualizer {
	v := &Visualizer{
		levels: make([]float64, visualizerBands),
		prev:   make([]float64, visualizerBands),
		energy: 0.5,
	}
	for i := range v.levels {
		v.levels[i] = idleLevel
		v.prev[i] = idleLevel
	}
	return v
}

// Levels returns a copy of the current band levels.
func (v *Visualizer) Levels() []float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]float64, len(v.levels))
	copy(out, v.levels)
	return out
}

// SetPlaying pauses or resumes the simulation.
func (v *Visualizer) SetPlaying(playing bool) {
	v.mu.Lock()
	v.playing = playing
	v.mu.Unlock()
}

// Start runs the simulation loop on its own goroutine, emitting level
// updates at ~30fps while something is playing.
func (v *Visualizer) Start(notify Notifier) {
	go func() {
		frame := 33333 * time.Microsecond
		next := time.Now()

		for {
			v.mu.RLock()
			playing := v.playing
			v.mu.RUnlock()

			if !playing {
				time.Sleep(200 * time.Millisecond)
				next = time.Now()
				continue
			}

			levels := v.Step()
			if notify != nil {
				notify.Emit(EventAudioLevels, levels)
			}

			next = next.Add(frame)
			if wait := time.Until(next); wait > 0 {
				time.Sleep(wait)
			} else {
				next = time.Now().Add(frame)
			}
		}
	}()
}

// Step advances the simulation one frame and returns the new levels.
// Deterministic: equal frame counts produce equal output.
func (v *Visualizer) Step() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.t += frameStep

	// Energy swells like quiet and loud song sections.
	energyWave := math.Sin(v.t*0.15)*0.3 + 0.9
	v.energy = v.energy*0.995 + energyWave*0.005

	// Beat pulse around 160 BPM, sharpened into a spike.
	v.beatPhase += frameStep * 2.67 * math.Pi * 2.67
	beat := math.Pow(math.Max(math.Sin(v.beatPhase), 0), 4)

	noise := pseudoNoise(v.t)
	t := v.t

	raw := []float64{
		v.energy * (0.4 + beat*0.5 + noise*0.1),                                         // bass
		v.energy * (0.35 + beat*0.3 + math.Sin(t*3.2)*0.15 + noise*0.08),                // low-mid
		v.energy * (0.3 + math.Sin(t*5.7)*0.2 + math.Cos(t*7.3)*0.1 + noise*0.1),        // mid
		v.energy * (0.28 + math.Sin(t*4.1)*0.18 + math.Cos(t*6.8)*0.12 + noise*0.08),    // high-mid
		v.energy * (0.22 + math.Sin(t*8.3)*0.15 + beat*0.1 + noise*0.1),                 // presence
		v.energy * (0.18 + math.Sin(t*11.2)*0.1 + math.Cos(t*9.7)*0.08 + noise*0.06),    // brilliance
	}

	// Exponential smoothing with a faster attack than decay keeps the
	// motion snappy without jitter.
	for i := range raw {
		smoothing := 0.25
		if raw[i] > v.prev[i] {
			smoothing = 0.5
		}
		raw[i] = v.prev[i] + (raw[i]-v.prev[i])*smoothing
		raw[i] = math.Min(math.Max(raw[i], 0.08), 0.92)
	}

	copy(v.prev, raw)
	copy(v.levels, raw)

	out := make([]float64, len(raw))
	copy(out, raw)
	return out
}

// pseudoNoise derives a repeatable value in [-0.5, 0.5) from the
// simulation clock.
func pseudoNoise(t float64) float64 {
	h := fnv.New64a()
	var buf [8]byte
	n := uint64(t * 10000)
	for i := 0; i < 8; i++ {
		buf[i] = byte(n >> (8 * i))
	}
	h.Write(buf[:])
	return float64(h.Sum64()%1000)/1000 - 0.5
}
