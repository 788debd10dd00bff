package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vehicle-sim/parameter"
	"github.com/lixenwraith/vehicle-sim/physics"
	"github.com/lixenwraith/vehicle-sim/recovery"
	"github.com/lixenwraith/vehicle-sim/vehicle"
)

const (
	// Terminal cells are about twice as tall as wide
	colsPerMeter = 2.0
	rowsPerMeter = 1.0

	gridSpacing = 5.0
	hudRows     = 2
)

var (
	styleGrid     = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleDrivable = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleProp     = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWheel    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSkidding = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// view maps the world XZ plane onto the screen, +Z up and +X right
type view struct {
	width, height    int
	centerX, centerZ float64
}

func (v view) project(x, z float64) (col, row int) {
	col = v.width/2 + int(math.Round((x-v.centerX)*colsPerMeter))
	row = v.height/2 - int(math.Round((z-v.centerZ)*rowsPerMeter))
	return col, row
}

func (v view) unproject(col, row int) (x, z float64) {
	x = v.centerX + float64(col-v.width/2)/colsPerMeter
	z = v.centerZ - float64(row-v.height/2)/rowsPerMeter
	return x, z
}

func (v view) inside(col, row int) bool {
	return col >= 0 && col < v.width && row >= hudRows && row < v.height-1
}

func (g *Game) draw() {
	g.screen.Clear()

	pos := g.world.Body().Position()
	v := view{width: g.width, height: g.height, centerX: pos.X(), centerZ: pos.Z()}

	g.drawGround(v)
	g.drawTrails(v)
	g.drawVehicle(v)
	g.drawHUD()

	g.screen.Show()
}

func (g *Game) drawGround(v view) {
	boxes := g.world.Scene().Boxes()
	for row := hudRows; row < v.height-1; row++ {
		for col := 0; col < v.width; col++ {
			x, z := v.unproject(col, row)
			if r, style, ok := boxCell(boxes, x, z); ok {
				g.screen.SetContent(col, row, r, nil, style)
				continue
			}
			if nearGrid(x, colsPerMeter) && nearGrid(z, rowsPerMeter) {
				g.screen.SetContent(col, row, '·', nil, styleGrid)
			}
		}
	}
}

func boxCell(boxes []physics.Box, x, z float64) (rune, tcell.Style, bool) {
	for _, b := range boxes {
		if x < b.Min.X() || x > b.Max.X() || z < b.Min.Z() || z > b.Max.Z() {
			continue
		}
		if b.Layer&parameter.LayerDrivable != 0 {
			return '░', styleDrivable, true
		}
		return '▓', styleProp, true
	}
	return 0, tcell.StyleDefault, false
}

// nearGrid reports whether v is within half a cell of a grid line
func nearGrid(v, cellsPerMeter float64) bool {
	d := math.Abs(v - gridSpacing*math.Round(v/gridSpacing))
	return d < 0.5/cellsPerMeter
}

func (g *Game) drawTrails(v view) {
	now := time.Now()
	for _, t := range g.trails {
		col, row := v.project(t.x, t.z)
		if !v.inside(col, row) {
			continue
		}
		intensity := 1 - now.Sub(t.timestamp).Seconds()/skidTrailLife.Seconds()
		if intensity <= 0 {
			continue
		}
		shade := int32(60 + 140*intensity)
		color := tcell.NewRGBColor(shade, shade, shade)
		g.screen.SetContent(col, row, '▒', nil, tcell.StyleDefault.Foreground(color))
	}
}

func (g *Game) drawVehicle(v view) {
	body := g.world.Body()
	rot := body.Rotation()
	pos := body.Position()
	style := modeStyle(g.report.Mode)

	// Chassis footprint sampled on a body-space grid
	const step = 0.25
	for lx := -parameter.BodyHalfWidth; lx <= parameter.BodyHalfWidth+1e-9; lx += step {
		for lz := -parameter.BodyHalfLength; lz <= parameter.BodyHalfLength+1e-9; lz += step {
			p := pos.Add(rot.Rotate(mgl64.Vec3{lx, 0, lz}))
			col, row := v.project(p.X(), p.Z())
			if v.inside(col, row) {
				g.screen.SetContent(col, row, '#', nil, style)
			}
		}
	}

	nose := pos.Add(rot.Rotate(mgl64.Vec3{0, 0, parameter.BodyHalfLength + 0.5}))
	if col, row := v.project(nose.X(), nose.Z()); v.inside(col, row) {
		g.screen.SetContent(col, row, '^', nil, style)
	}

	for _, w := range g.report.Wheels {
		col, row := v.project(w.WheelCenter.X(), w.WheelCenter.Z())
		if !v.inside(col, row) {
			continue
		}
		r, ws := 'o', styleWheel
		switch {
		case w.Skidding:
			r, ws = 'x', styleSkidding
		case !w.Grounded:
			r = '°'
		}
		g.screen.SetContent(col, row, r, nil, ws)
	}
}

func modeStyle(m vehicle.Mode) tcell.Style {
	switch m {
	case vehicle.ModeAirborne:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua)
	case vehicle.ModeSuspended:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorSilver)
}

func (g *Game) drawHUD() {
	rep := g.report
	rec := g.world.Recovery()
	pos := g.world.Body().Position()

	phase := rec.State().String()
	if rec.State() != recovery.StateRightSideUp {
		phase = fmt.Sprintf("%s %.1fs", phase, rec.Timer().Seconds())
	}

	status := fmt.Sprintf(" %5.1f m/s  %-9s  wheels %d/%d  skids %d  pos (%.1f, %.1f, %.1f)  %s",
		rep.Speed, rep.Mode, rep.GroundedCount, len(rep.Wheels), len(rep.Skids()),
		pos.X(), pos.Y(), pos.Z(), phase)
	g.drawText(0, 0, status, styleHUD)

	input := fmt.Sprintf(" throttle %+.0f  steer %+.0f  ratio %.2f", rep.Input.Throttle, rep.Input.Steer, rep.SpeedRatio)
	if g.player == nil {
		input += "  audio off"
	}
	g.drawText(0, 1, input, styleHelp)

	g.drawText(0, g.height-1, " WASD/arrows drive  space stop  f flip  c cancel recovery  r reset  q quit", styleHelp)
}

func (g *Game) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= g.width {
			return
		}
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
