// pkg/render/status.go
package render

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/entity"
)

// StatusLines summarises w: the clock and population first, then one line
// per live player
func StatusLines(w *engine.World) []string {
	s := w.Stats()
	lines := []string{
		fmt.Sprintf("t=%.1fs enemies %d shots %d", s.Elapsed, s.Enemies, s.Projectiles),
	}
	for _, p := range w.Players {
		lines = append(lines, fmt.Sprintf("%s hp %d kills %d %s", p.Name, p.Health, p.Kills, selectedWeapon(p)))
	}
	return lines
}

// StatusLine is StatusLines on a single row
func StatusLine(w *engine.World) string {
	return strings.Join(StatusLines(w), " | ")
}

func selectedWeapon(s *entity.Ship) string {
	if s.Selected < 0 || s.Selected >= len(s.Weapons) {
		return "-"
	}
	return s.Weapons[s.Selected].Name()
}
