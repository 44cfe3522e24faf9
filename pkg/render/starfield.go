// pkg/render/starfield.go
package render

import (
	"github.com/aquilax/go-perlin"
)

// Noise parameters for the backdrop
const (
	starAlpha   = 2.0
	starBeta    = 2.0
	starOctaves = int32(3)
	// starScale keeps samples off the integer lattice, where perlin noise is zero
	starScale = 0.37
)

// Defaults for a new starfield
const (
	DefaultStarThreshold = 0.72
	DefaultStarSpeed     = 4.0 // rows per second
)

// Star is one lit cell of the backdrop
type Star struct {
	X, Y       int
	Brightness float64
}

// Starfield is a scrolling perlin noise backdrop. Cells whose brightness
// reaches Threshold are drawn as stars.
type Starfield struct {
	noise     *perlin.Perlin
	Threshold float64
	Speed     float64
	offset    float64
}

// NewStarfield creates a backdrop for seed
func NewStarfield(seed int64) *Starfield {
	return &Starfield{
		noise:     perlin.NewPerlin(starAlpha, starBeta, starOctaves, seed),
		Threshold: DefaultStarThreshold,
		Speed:     DefaultStarSpeed,
	}
}

// Advance scrolls the backdrop down by Speed*deltaTime rows
func (s *Starfield) Advance(deltaTime float64) {
	s.offset += s.Speed * deltaTime
}

// Brightness returns the noise value of a cell mapped into [0, 1]
func (s *Starfield) Brightness(x, y int) float64 {
	n := s.noise.Noise2D(float64(x)*starScale, (float64(y)-s.offset)*starScale)
	b := (n + 1) / 2
	switch {
	case b < 0:
		return 0
	case b > 1:
		return 1
	}
	return b
}

// Stars lists the lit cells of a cols by rows area, row by row
func (s *Starfield) Stars(cols, rows int) []Star {
	var stars []Star
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if b := s.Brightness(x, y); b >= s.Threshold {
				stars = append(stars, Star{X: x, Y: y, Brightness: b})
			}
		}
	}
	return stars
}
