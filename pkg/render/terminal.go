// pkg/render/terminal.go
package render

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/opd-ai/go-shmup/pkg/physics"
)

var (
	playerStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	enemyStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	laserStyle     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	plasmaStyle    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	explosionStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	massiveStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	starStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	brightStar     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	statusStyle    = tcell.StyleDefault.Reverse(true)
)

// explosionGlyphs follow the blast frames
var explosionGlyphs = []rune{'@', '#', '*', '+'}

// brightStarLevel is the brightness at which a star is drawn white
const brightStarLevel = 0.85

// TerminalRenderer draws the playfield into a tcell screen with one cell
// per sprite, scaled so the whole field fits. The bottom row is a status
// line.
type TerminalRenderer struct {
	screen tcell.Screen
	field  physics.Rect
	stars  *Starfield
	status string

	cols   int
	rows   int
	height int
}

// NewTerminalRenderer creates a renderer for field on screen. stars may be nil.
func NewTerminalRenderer(screen tcell.Screen, field physics.Rect, stars *Starfield) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		field:  field,
		stars:  stars,
	}
	r.resize()
	return r
}

func (r *TerminalRenderer) resize() {
	r.cols, r.height = r.screen.Size()
	r.rows = max(r.height-1, 0)
}

// SetStatus sets the text shown on the bottom row at the next Present
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

// worldToScreen converts a playfield point to a cell. ok is false when the
// point falls outside the drawing area.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (x, y int, ok bool) {
	if r.cols == 0 || r.rows == 0 || r.field.Width <= 0 || r.field.Height <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor((pos.X - r.field.Left()) / r.field.Width * float64(r.cols)))
	y = int(math.Floor((pos.Y - r.field.Top()) / r.field.Height * float64(r.rows)))
	return x, y, x >= 0 && x < r.cols && y >= 0 && y < r.rows
}

// Clear implements entity.Surface. It also picks up terminal resizes and
// paints the backdrop.
func (r *TerminalRenderer) Clear() {
	r.resize()
	r.screen.Clear()
	if r.stars == nil {
		return
	}
	for _, s := range r.stars.Stars(r.cols, r.rows) {
		style := starStyle
		if s.Brightness >= brightStarLevel {
			style = brightStar
		}
		r.screen.SetContent(s.X, s.Y, '.', nil, style)
	}
}

// Blit implements entity.Surface.
func (r *TerminalRenderer) Blit(s entity.Sprite) {
	x, y, ok := r.worldToScreen(s.Center)
	if !ok {
		return
	}
	glyph, style := glyphFor(s)
	r.screen.SetContent(x, y, glyph, nil, style)
}

// Present implements entity.Surface.
func (r *TerminalRenderer) Present() {
	if r.height > 0 {
		for i, ch := range []rune(r.status) {
			if i >= r.cols {
				break
			}
			r.screen.SetContent(i, r.rows, ch, nil, statusStyle)
		}
	}
	r.screen.Show()
}

// glyphFor picks the cell used to draw s
func glyphFor(s entity.Sprite) (rune, tcell.Style) {
	switch s.Kind {
	case entity.KindPlayer:
		return 'A', playerStyle
	case entity.KindEnemy:
		return 'V', enemyStyle
	case entity.KindProjectile:
		if slices.Contains(entity.PlasmaBall.Frames, s.Region) {
			return 'o', plasmaStyle
		}
		return '|', laserStyle
	case entity.KindExplosion:
		if i := slices.Index(entity.ExplosionFrames, s.Region); i >= 0 {
			return explosionGlyphs[i%len(explosionGlyphs)], explosionStyle
		}
		return explosionGlyphs[0], explosionStyle
	case entity.KindMassive:
		return 'O', massiveStyle
	default:
		return '?', tcell.StyleDefault
	}
}
