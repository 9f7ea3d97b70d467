package game

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	menuBg      = color.RGBA{40, 40, 40, 230}
	menuHover   = color.RGBA{70, 110, 170, 240}
	menuText    = color.White
	monitorText = color.RGBA{255, 200, 0, 255}
)

func (g *Manager) Draw(screen *ebiten.Image) {
	frame := g.MyPet.Frame

	if g.art != nil {
		// 为什么要 Y=11？因为文字是从脚底（基线）开始画的，往下挪一点防止头被切掉
		if frame >= 0 && frame < len(g.art) && g.art[frame] != nil {
			text.Draw(screen, strings.Join(g.art[frame], "\n"), basicfont.Face7x13, 0, 11, g.ink)
		}
	} else if frame >= 0 && frame < len(g.frames) && g.frames[frame] != nil {
		screen.DrawImage(g.frames[frame], nil)
	}

	if g.monitor != nil {
		line := fmt.Sprintf("CPU %.1f%% MEM %.1f%%", g.MyPet.CPUUsage, g.MyPet.MemUsage)
		text.Draw(screen, line, basicfont.Face7x13, 2, g.MyPet.Height-3, monitorText)
	}

	if g.menu.IsOpen() {
		g.drawMenu(screen)
	}
}

func (g *Manager) drawMenu(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	cursor := image.Pt(mx, my)

	r := g.menu.Rect()
	fillRect(screen, r, menuBg)
	for i, it := range g.menu.Items {
		ir := g.menu.ItemRect(i)
		if cursor.In(ir) {
			fillRect(screen, ir, menuHover)
		}
		p := g.menu.LabelPos(i)
		text.Draw(screen, it.Label, basicfont.Face7x13, p.X, p.Y, menuText)
	}
}

func fillRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}
