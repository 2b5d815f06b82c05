package audio

import (
	"math"
	"testing"
)

func TestPitchAndLevel(t *testing.T) {
	if Pitch(0) != 1 || Level(0) != 0.05 {
		t.Errorf("rest: pitch %v level %v", Pitch(0), Level(0))
	}
	if Pitch(1e6) != 2 || Level(1e6) != 0.25 {
		t.Errorf("saturated: pitch %v level %v", Pitch(1e6), Level(1e6))
	}
	if Pitch(-1) != 1 {
		t.Error("negative energy should not lower the pitch")
	}
	if !(Pitch(4) > Pitch(1)) {
		t.Error("pitch should rise with energy")
	}
}

func TestSynthProcess(t *testing.T) {
	s := NewSynth()
	s.UpdateEnergy(10)
	s.UpdateEnergy(math.NaN())

	out := [][]float32{make([]float32, BufferSize), make([]float32, BufferSize)}
	for i := 0; i < 20; i++ {
		s.Process(out)
	}

	if s.energySmooth <= 0 || s.energySmooth > 10 {
		t.Errorf("smoothed energy = %v", s.energySmooth)
	}

	peak := 0.0
	for ch := range out {
		for _, v := range out[ch] {
			if math.IsNaN(float64(v)) {
				t.Fatal("NaN sample")
			}
			peak = math.Max(peak, math.Abs(float64(v)))
		}
	}
	if peak == 0 || peak > 1 {
		t.Errorf("peak = %v", peak)
	}
}
