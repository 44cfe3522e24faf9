// pkg/render/starfield_test.go
package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStarfield_BrightnessRange(t *testing.T) {
	s := NewStarfield(42)
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			b := s.Brightness(x, y)
			assert.GreaterOrEqual(t, b, 0.0)
			assert.LessOrEqual(t, b, 1.0)
		}
	}
}

func TestStarfield_SameSeedSameSky(t *testing.T) {
	a := NewStarfield(7)
	b := NewStarfield(7)
	assert.Equal(t, a.Stars(80, 24), b.Stars(80, 24))
}

func TestStarfield_StarsRespectThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
	}{
		{"default", DefaultStarThreshold},
		{"sparse", 0.9},
		{"everything", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStarfield(3)
			s.Threshold = tt.threshold

			stars := s.Stars(40, 12)
			for _, star := range stars {
				assert.GreaterOrEqual(t, star.Brightness, tt.threshold)
				assert.Less(t, star.X, 40)
				assert.Less(t, star.Y, 12)
			}
			if tt.threshold == 0 {
				assert.Len(t, stars, 40*12)
			}
		})
	}
}

func TestStarfield_AdvanceScrollsDown(t *testing.T) {
	s := NewStarfield(11)
	s.Speed = 2
	before := s.Brightness(5, 9)

	s.Advance(0.5)

	assert.Equal(t, before, s.Brightness(5, 10), "one row down after one row of scroll")
}
