// pkg/render/engo/hud.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"
)

// hudFontURL is the name the embedded font is registered under
const hudFontURL = "gomono.ttf"

// hudMargin is the distance of the text from the window corner
const hudMargin = 8

// hudZ draws the HUD above every sprite
const hudZ = playerZ + 10

// HUDSystem draws status text in the top left corner. The text comes from
// lines, which is called once per frame.
type HUDSystem struct {
	lines func() []string
	font  *common.Font
	text  string

	entity struct {
		ecs.BasicEntity
		common.RenderComponent
		common.SpaceComponent
	}
}

// NewHUDSystem creates a HUD showing lines
func NewHUDSystem(lines func() []string) *HUDSystem {
	return &HUDSystem{lines: lines}
}

// LoadHUDFont registers the embedded monospace font and builds a font of
// size points. It must run on the render thread.
func LoadHUDFont(size float64) (*common.Font, error) {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	font := &common.Font{
		URL:  hudFontURL,
		FG:   color.White,
		Size: size,
	}
	if err := font.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("create hud font: %w", err)
	}
	return font, nil
}

// Attach gives the HUD a font and adds its text entity to rs
func (hud *HUDSystem) Attach(rs spriteSystem, font *common.Font) {
	hud.font = font
	hud.entity.BasicEntity = ecs.NewBasic()
	hud.entity.Position = engo.Point{X: hudMargin, Y: hudMargin}
	hud.entity.RenderComponent.SetZIndex(hudZ)
	hud.entity.Drawable = common.Text{Font: font, Text: " "}
	rs.Add(&hud.entity.BasicEntity, &hud.entity.RenderComponent, &hud.entity.SpaceComponent)
}

// Text returns the text shown by the last Update
func (hud *HUDSystem) Text() string {
	return hud.text
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the HUD text
func (hud *HUDSystem) Update(dt float32) {
	text := strings.Join(hud.lines(), "\n")
	if text == hud.text {
		return
	}
	hud.text = text
	if hud.font != nil {
		hud.entity.Drawable = common.Text{Font: hud.font, Text: text, LineSpacing: 0.3}
	}
}
