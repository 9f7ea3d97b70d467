// Package tui 在终端里跑同一套动画，用字符画代替窗口。
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wenhao19971211/wanwan-desktop-pet/internal/director"
)

// FPS 终端刷新率
const FPS = 30

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/FPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// screen 是 director 的渲染目标
type screen struct {
	frame  int
	offset int
}

func (s *screen) Render(frame, offset int) {
	s.frame = frame
	s.offset = offset
}

var (
	petStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	blinkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00")).Bold(true)
)

// Preview bubbletea 模型
type Preview struct {
	director *director.Director
	screen   *screen
	art      [][]string
	rows     int // 所有帧里最高的行数，画面高度固定
	lift     int // 最大的向上浮动，给它预留空行；字符画里一个偏移单位算一行

	now  func() time.Time
	last time.Time
}

// NewSink 给 director.Build 用的渲染目标
func NewSink() director.Sink { return &screen{} }

// NewPreview sink 必须是 NewSink 返回的那个
func NewPreview(d *director.Director, sink director.Sink, art [][]string, offsets map[int]int) Preview {
	p := Preview{
		director: d,
		art:      art,
		now:      time.Now,
	}
	p.screen, _ = sink.(*screen)
	if p.screen == nil {
		p.screen = &screen{}
	}
	for _, lines := range art {
		p.rows = max(p.rows, len(lines))
	}
	for _, off := range offsets {
		p.lift = max(p.lift, -off)
	}
	return p
}

func (p Preview) Init() tea.Cmd {
	return tick()
}

func (p Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case "b", " ":
			p.director.Blink()
		}
		return p, nil
	case tickMsg:
		now := p.now()
		if !p.last.IsZero() {
			p.director.Advance(now.Sub(p.last))
		}
		p.last = now
		return p, tick()
	}
	return p, nil
}

func (p Preview) View() string {
	var b strings.Builder

	// 浮动：往上浮 = 上面少空几行
	pad := p.lift + p.screen.offset
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat("\n", pad))

	var lines []string
	if f := p.screen.frame; f >= 0 && f < len(p.art) {
		lines = p.art[f]
	}
	for i := 0; i < p.rows; i++ {
		if i < len(lines) {
			b.WriteString(petStyle.Render(lines[i]))
		}
		b.WriteByte('\n')
	}
	// 上下加起来固定 lift 行，状态栏不跟着跳
	b.WriteString(strings.Repeat("\n", max(0, p.lift-pad)))

	status := statusStyle.Render("idle")
	if p.director.Blinking() {
		status = blinkStyle.Render("blinking")
	}
	b.WriteString(status + statusStyle.Render("  ·  b: blink  q: quit"))
	b.WriteByte('\n')
	return b.String()
}
