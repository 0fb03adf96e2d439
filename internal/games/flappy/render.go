package flappy

import (
	"fmt"
	"math"
	"strings"

	"github.com/PekerRian/meowdy/internal/config"
	"github.com/PekerRian/meowdy/internal/core"
)

// Visual characters for rendering
const (
	AvatarChar    = '█'
	AvatarEyeChar = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	LifeChar      = '♥'
)

// blinkPeriod is the number of frames the avatar stays visible or hidden while blinking.
const blinkPeriod = 4

// viewport maps world units to terminal cells. Row 0 holds the HUD and the
// last row the ground; the world is scaled into the rows in between.
type viewport struct {
	sx, sy  float64
	top     int
	fieldH  int
	screenW int
	shake   int
}

func newViewport(dst *core.Screen, cfg config.FlappyConfig) viewport {
	fieldH := dst.Height() - 2
	if fieldH < 1 {
		fieldH = 1
	}
	return viewport{
		sx:      float64(dst.Width()) / cfg.World.Width,
		sy:      float64(fieldH) / cfg.World.Height,
		top:     1,
		fieldH:  fieldH,
		screenW: dst.Width(),
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x*v.sx)) + v.shake
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// Render draws a snapshot. frame drives the blink and shake animations.
func Render(dst *core.Screen, snap Snapshot, cfg config.FlappyConfig, frame int) {
	dst.Clear()
	v := newViewport(dst, cfg)
	if snap.Vibrating {
		v.shake = 1
		if frame%2 == 1 {
			v.shake = -1
		}
	}

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorOrange)

	for _, o := range snap.Obstacles {
		drawObstacle(dst, v, o, cfg)
	}

	if !snap.Blinking || (frame/blinkPeriod)%2 == 0 {
		drawAvatar(dst, v, snap.AvatarY, cfg)
	}

	drawHUD(dst, snap)

	switch {
	case snap.GameOver():
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			"SPACE to play again  |  ESC for menu")
	case !snap.Started && snap.Running:
		drawCenteredMessage(dst, "MEOWDY FLAP", "Press SPACE to start", "")
	}
}

func drawObstacle(dst *core.Screen, v viewport, o ObstacleView, cfg config.FlappyConfig) {
	left := v.col(o.X)
	right := v.col(o.X+cfg.Obstacles.Width) - 1
	if right < left {
		right = left
	}
	gapTop := v.row(o.GapTop)
	gapBottom := v.row(o.GapTop + cfg.Obstacles.GapSize)
	fieldBottom := v.top + v.fieldH

	for x := left; x <= right; x++ {
		for y := v.top; y < gapTop; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if gapTop > v.top {
			dst.SetColored(x, gapTop-1, PipeCapTop, core.ColorBrightGreen)
		}
		for y := gapBottom; y < fieldBottom; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if gapBottom < fieldBottom {
			dst.SetColored(x, gapBottom, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}

func drawAvatar(dst *core.Screen, v viewport, y float64, cfg config.FlappyConfig) {
	left := v.col(cfg.Avatar.X)
	right := core.Max(left, v.col(cfg.Avatar.X+cfg.Avatar.Width)-1)
	top := v.row(y)
	bottom := core.Max(top, v.row(y+cfg.Avatar.Height)-1)

	for cy := top; cy <= bottom; cy++ {
		for cx := left; cx <= right; cx++ {
			ch := AvatarChar
			if cx == right && cy == top {
				ch = AvatarEyeChar
			}
			dst.SetColored(cx, cy, ch, core.ColorBrightYellow)
		}
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorWhite)

	lives := "Lives: " + strings.Repeat(string(LifeChar), snap.Lives)
	if snap.Lives > 5 {
		lives = fmt.Sprintf("Lives: %c x%d", LifeChar, snap.Lives)
	}
	x := dst.Width() - len([]rune(lives)) - 1
	dst.DrawTextColored(x, 0, lives, core.ColorRed)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), core.Max(len(line1), len(line2))) + 4
	boxH := 5
	if line2 != "" {
		boxH = 6
	}
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(line1))/2, boxY+3, line1)
	if line2 != "" {
		dst.DrawTextColored(boxX+(boxW-len(line2))/2, boxY+4, line2, core.ColorGray)
	}
}
