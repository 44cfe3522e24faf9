// pkg/audio/generator.go
package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// LaserGenerator is a square wave sweeping down from start to end Hz over
// one sweep, then holding end
type LaserGenerator struct {
	sr         beep.SampleRate
	start, end float64
	sweep      int
	pos        int
	phase      float64
}

// NewLaserGenerator creates a laser zap sweeping over sweepSamples samples
func NewLaserGenerator(sr beep.SampleRate, start, end float64, sweepSamples int) *LaserGenerator {
	return &LaserGenerator{
		sr:    sr,
		start: start,
		end:   end,
		sweep: max(sweepSamples, 1),
	}
}

func (g *LaserGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.sweep), 1)
		freq := g.start + (g.end-g.start)*progress

		sample := 0.25
		if g.phase >= 0.5 {
			sample = -0.25
		}
		sample *= 1 - 0.8*progress

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *LaserGenerator) Err() error {
	return nil
}

// PlasmaGenerator is a low sine with a fast tremolo
type PlasmaGenerator struct {
	sr      beep.SampleRate
	freq    float64
	tremolo float64
	pos     int
}

// NewPlasmaGenerator creates a plasma hum at freq Hz wobbling at tremolo Hz
func NewPlasmaGenerator(sr beep.SampleRate, freq, tremolo float64) *PlasmaGenerator {
	return &PlasmaGenerator{
		sr:      sr,
		freq:    freq,
		tremolo: tremolo,
	}
}

func (g *PlasmaGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		wobble := 0.5 + 0.5*math.Sin(2*math.Pi*g.tremolo*t)
		sample := 0.3 * wobble * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PlasmaGenerator) Err() error {
	return nil
}

// ExplosionGenerator is decaying noise over a low rumble
type ExplosionGenerator struct {
	sr     beep.SampleRate
	decay  float64
	rumble float64
	pos    int
	seed   int64
}

// NewExplosionGenerator creates a blast whose envelope falls by e every
// 1/decay seconds. seed fixes the noise.
func NewExplosionGenerator(sr beep.SampleRate, decay, rumble float64, seed int64) *ExplosionGenerator {
	return &ExplosionGenerator{
		sr:     sr,
		decay:  decay,
		rumble: rumble,
		seed:   seed & 0x7fffffff,
	}
}

func (g *ExplosionGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * g.decay)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		rumble := 0.3 * math.Sin(2*math.Pi*g.rumble*t)
		sample := envelope * (0.35*noise + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ExplosionGenerator) Err() error {
	return nil
}
