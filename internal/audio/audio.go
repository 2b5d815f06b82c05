// Package audio sonifies the motion of the control points: a soft pad whose
// pitch and level follow the smoothed kinetic energy.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/sim"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Gm7 add9: G2, Bb2, D3, F3, A3
var chord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

// Synth renders the pad. It is driven by UpdateEnergy from the frame loop
// and by Process from the audio thread.
type Synth struct {
	time        float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int

	mu           sync.Mutex
	energy       float64
	energySmooth float64
}

func NewSynth() *Synth {
	// 0.6 second delay for a larger space
	delayLen := int(float64(SampleRate) * 0.6)
	return &Synth{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// UpdateEnergy sets the kinetic energy the pad follows.
func (s *Synth) UpdateEnergy(e float64) {
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return
	}
	s.mu.Lock()
	s.energy = e
	s.mu.Unlock()
}

// Pitch returns the frequency multiplier for a smoothed energy: one octave
// up at most.
func Pitch(energy float64) float64 {
	return 1 + math.Min(math.Sqrt(math.Max(energy, 0))/10, 1)
}

// Level returns the master volume for a smoothed energy.
func Level(energy float64) float64 {
	return 0.05 + math.Min(math.Max(energy, 0)/20, 0.2)
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Process fills both channels of out.
func (s *Synth) Process(out [][]float32) {
	s.mu.Lock()
	target := s.energy
	s.mu.Unlock()

	// slow morphing so jumps in energy do not click
	s.energySmooth = s.energySmooth*0.995 + target*0.005

	pitch := Pitch(s.energySmooth)
	vol := Level(s.energySmooth)
	cutoff := 300.0 + math.Min(s.energySmooth*100, 900.0)
	dt := 1.0 / float64(SampleRate)

	for i := range out[0] {
		sampleL, sampleR := 0.0, 0.0
		for j, f := range chord {
			f *= pitch
			g := 1.0 / float64(len(chord))
			lfo := math.Sin(s.time*0.2 + float64(j))
			sampleL += triangle(s.time*f*0.999) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(s.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		s.filterState[0] = lpf(sampleL, cutoff, dt, s.filterState[0])
		s.filterState[1] = lpf(sampleR, cutoff, dt, s.filterState[1])
		outL, outR := s.filterState[0], s.filterState[1]

		// ping-pong feedback
		delayL := s.delayLine[0][s.delayHead]
		delayR := s.delayLine[1][s.delayHead]
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1
		s.delayLine[0][s.delayHead] = mixL * 0.7
		s.delayLine[1][s.delayHead] = mixR * 0.7
		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		out[0][i] = float32(mixL * vol)
		if len(out) > 1 {
			out[1][i] = float32(mixR * vol)
		}

		s.time += dt
	}
}

// Player streams a Synth to the default output device.
type Player struct {
	*Synth
	stream *portaudio.Stream
}

func NewPlayer() *Player {
	return &Player{Synth: NewSynth()}
}

// Start opens an output-only stereo stream.
func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, p.Process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	p.stream = stream
	dynamo.Logger().Info("audio started", "rate", SampleRate, "buffer", BufferSize)
	return nil
}

func (p *Player) Stop() {
	if p.stream == nil {
		return
	}
	p.stream.Stop()
	p.stream.Close()
	p.stream = nil
	portaudio.Terminate()
}

// OnFrame feeds the scene's kinetic energy to the synth.
func (p *Player) OnFrame(_ int, s *sim.Scene) {
	p.UpdateEnergy(s.KineticEnergy())
}
