// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/opd-ai/go-shmup/pkg/logging"
)

// NullRenderer is a surface that draws nothing. It counts what it is given
// and logs one debug entry per frame, which is all a headless run needs.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context

	frames  uint64
	current map[entity.Kind]int
	last    map[entity.Kind]int
}

// NewNullRenderer creates a NullRenderer logging through logger. A nil
// logger discards.
func NewNullRenderer(ctx context.Context, logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &NullRenderer{
		logger:  logger,
		ctx:     ctx,
		current: make(map[entity.Kind]int),
		last:    make(map[entity.Kind]int),
	}
}

// Clear implements entity.Surface.
func (d *NullRenderer) Clear() {
	clear(d.current)
}

// Blit implements entity.Surface.
func (d *NullRenderer) Blit(s entity.Sprite) {
	d.current[s.Kind]++
}

// Present implements entity.Surface.
func (d *NullRenderer) Present() {
	d.frames++
	d.current, d.last = d.last, d.current
	clear(d.current)

	d.logger.Debug(d.ctx, "frame presented",
		"frame", d.frames,
		"players", d.last[entity.KindPlayer],
		"enemies", d.last[entity.KindEnemy],
		"projectiles", d.last[entity.KindProjectile],
		"explosions", d.last[entity.KindExplosion],
	)
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// LastFrame returns the sprite count per kind of the last presented frame
func (d *NullRenderer) LastFrame() map[entity.Kind]int {
	out := make(map[entity.Kind]int, len(d.last))
	for k, v := range d.last {
		out[k] = v
	}
	return out
}
