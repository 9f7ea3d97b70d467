package game

import (
	"context"
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hashicorp/go-hclog"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wenhao19971211/wanwan-desktop-pet/config"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/ascii"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/assets"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/director"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/drag"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/entity"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/menu"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/monitor"
)

// basicfont.Face7x13 的特性：每个字宽 7 像素，高 13 像素
const (
	fontW, fontH = 7, 13

	doubleClick = 300 * time.Millisecond
	// 窗口被挂起很久之后回来，不要一口气补几十秒的动画
	maxStep = time.Second
)

// Manager 实现 ebiten.Game
type Manager struct {
	MyPet *entity.Pet

	cfg    config.Config
	logger hclog.Logger

	frames []*ebiten.Image // nil 表示这一帧读不出来，画空白
	art    [][]string      // ascii 模式下每一帧的字符画
	ink    color.Color

	director *director.Director
	drag     drag.State
	menu     *menu.Menu
	monitor  *monitor.Sampler // 没开监控时为 nil

	now       func() time.Time
	last      time.Time
	lastPress time.Time
	tps       int
}

// New 读资源、搭好动画，还没碰窗口
func New(cfg config.Config, logger hclog.Logger) (*Manager, error) {
	g := &Manager{
		MyPet:  &entity.Pet{},
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		ink:    color.RGBA{0, 255, 0, 255},
	}

	// 1. 读图片
	dir := assets.DefaultResolver().Resolve(cfg.Assets.Dir)
	imgs, loaded := assets.Load(dir, cfg.Assets.FrameCount, cfg.Assets.Scale, logger.Named("assets"))
	if loaded == 0 {
		logger.Warn("no frames could be loaded, using blank window", "dir", dir)
	}

	// 2. 量体裁衣：窗口 = 图片大小（或者字符画大小）
	if cfg.Render.Style == config.StyleASCII {
		g.art = ascii.Frames(imgs, cfg.Render.ASCIIWidth, cfg.Render.ASCIIChars)
		if c, err := colorful.Hex(cfg.Render.Color); err == nil {
			g.ink = c
		} else {
			logger.Warn("bad render color, keeping green", "color", cfg.Render.Color, "error", err)
		}
		g.MyPet.Width, g.MyPet.Height = artSize(g.art, cfg.Window.FallbackWidth, cfg.Window.FallbackHeight)
	} else {
		g.frames = make([]*ebiten.Image, len(imgs))
		for i, img := range imgs {
			if img != nil {
				g.frames[i] = ebiten.NewImageFromImage(img)
			}
		}
		g.MyPet.Width, g.MyPet.Height = assets.Size(imgs, cfg.Window.FallbackWidth, cfg.Window.FallbackHeight)
	}
	g.menu = menu.New(g.MyPet.Width, g.MyPet.Height)

	// 3. 动画
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	d, err := director.Build(cfg, g.MyPet, rng, logger.Named("director"))
	if err != nil {
		return nil, err
	}
	g.director = d

	if cfg.Monitor.Enabled {
		g.monitor = monitor.New(cfg.Monitor.Interval.Duration, logger.Named("monitor"))
	}
	return g, nil
}

// Init 设置窗口尺寸、居中、启动动画和监控
func (g *Manager) Init(ctx context.Context) {
	ebiten.SetWindowSize(g.MyPet.Width, g.MyPet.Height)

	// 每次启动都放到主屏幕正中间
	if m := ebiten.Monitor(); m != nil {
		sw, sh := m.Size()
		g.MyPet.Center(sw, sh)
	}

	g.director.Start()
	g.syncWindow()

	if g.monitor != nil {
		g.monitor.Start(ctx)
	}

	g.tps = g.cfg.Window.IdleTPS
	ebiten.SetTPS(g.tps)
	g.last = g.now()

	g.logger.Info("pet ready",
		"size", image.Pt(g.MyPet.Width, g.MyPet.Height),
		"position", g.MyPet.Base,
		"style", g.cfg.Render.Style)
}

func (g *Manager) Update() error {
	// 1. 动画按真实流逝的时间推进
	now := g.now()
	dt := now.Sub(g.last)
	g.last = now
	if dt > maxStep {
		dt = maxStep
	}
	g.director.Advance(dt)

	// 2. ESC 关闭程序
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 3. 鼠标
	if err := g.handleMouse(now); err != nil {
		return err
	}

	if g.monitor != nil {
		if st, ok := g.monitor.Stats(); ok {
			g.MyPet.CPUUsage, g.MyPet.MemUsage = st.CPU, st.Mem
		}
	}

	g.syncWindow()
	g.adjustTPS()
	return nil
}

func (g *Manager) handleMouse(now time.Time) error {
	// 获取鼠标相对于窗口左上角的坐标
	mx, my := ebiten.CursorPosition()
	cursor := image.Pt(mx, my)
	// Ebiten 只给相对坐标，屏幕绝对位置 = 窗口位置 + 相对位置
	wx, wy := ebiten.WindowPosition()
	global := image.Pt(wx+mx, wy+my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.menu.Open(cursor)
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.menu.IsOpen() {
			action, ok := g.menu.HitTest(cursor)
			g.menu.Close()
			if ok {
				return g.do(action)
			}
			return nil
		}
		// 刚按下的瞬间，记录鼠标相对于窗口的偏移量
		g.drag.Press(global, image.Pt(wx, wy))
		if now.Sub(g.lastPress) < doubleClick && g.director.Blink() {
			g.logger.Debug("blink on double click")
		}
		g.lastPress = now
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		// 正在拖拽中：新窗口位置 = 鼠标屏幕绝对位置 - 初始偏移量
		if tl, ok := g.drag.Move(global); ok {
			g.MyPet.DragTo(tl)
		}
	} else {
		g.drag.Release()
	}
	return nil
}

func (g *Manager) do(action menu.Action) error {
	switch action {
	case menu.ActionSettings:
		// 设置页还没做，先打日志
		args := []interface{}{"action", action.String()}
		if g.monitor != nil {
			if st, ok := g.monitor.Stats(); ok {
				args = append(args, "cpu", st.CPU, "mem", st.Mem)
			}
		}
		g.logger.Info("settings requested", args...)
	case menu.ActionExit:
		g.logger.Info("exit requested")
		return ebiten.Termination
	}
	return nil
}

// syncWindow 锚点或浮动变了才挪窗口
func (g *Manager) syncWindow() {
	if g.MyPet.TakeDirty() {
		tl := g.MyPet.TopLeft()
		ebiten.SetWindowPosition(tl.X, tl.Y)
	}
}

// adjustTPS 有人理它（拖拽 / 悬停 / 菜单）或者正在眨眼时开高帧率，否则省电
func (g *Manager) adjustTPS() {
	x, y := ebiten.CursorPosition()
	active := g.MyPet.Contains(x, y) || g.drag.Dragging() || g.menu.IsOpen() || g.director.Blinking()

	want := g.cfg.Window.IdleTPS
	if active {
		want = g.cfg.Window.ActiveTPS
	}
	if want != g.tps {
		g.tps = want
		ebiten.SetTPS(want)
	}
}

func (g *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	// 告诉 Ebiten 画布大小就是窗口大小
	return g.MyPet.Width, g.MyPet.Height
}

// artSize 字符画的像素尺寸，一帧都没有时用保底尺寸
func artSize(art [][]string, fallbackW, fallbackH int) (int, int) {
	w, h := ascii.PixelSize(art, fontW, fontH)
	if w == 0 || h == 0 {
		return fallbackW, fallbackH
	}
	return w, h
}
