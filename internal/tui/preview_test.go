package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wenhao19971211/wanwan-desktop-pet/config"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/director"
)

type fixedRand int

func (r fixedRand) IntN(n int) int { return int(r) % n }

func newTestPreview(t *testing.T) (Preview, *time.Time) {
	t.Helper()
	sink := NewSink()
	d, err := director.Build(config.Defaults(), sink, fixedRand(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	d.Start()
	art := [][]string{{"AAA"}, {"BBB"}, {"CCC"}, {"DDD"}}
	p := NewPreview(d, sink, art, config.Defaults().Idle.BobOffsets)

	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }
	return p, &clock
}

func TestPreview_ShowsFirstFrame(t *testing.T) {
	p, _ := newTestPreview(t)
	if v := p.View(); !strings.Contains(v, "AAA") || strings.Contains(v, "blinking") {
		t.Errorf("view = %q, want frame 0 and idle status", v)
	}
}

func TestPreview_TickAdvancesAnimation(t *testing.T) {
	p, clock := newTestPreview(t)

	m, _ := p.Update(tickMsg{})
	*clock = clock.Add(900 * time.Millisecond)
	m, cmd := m.Update(tickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if v := m.View(); !strings.Contains(v, "BBB") {
		t.Errorf("view after 900ms = %q, want frame 1", v)
	}
}

func TestPreview_HeightStaysFixed(t *testing.T) {
	p, clock := newTestPreview(t)
	// 默认最大上浮 3，1 行字符画，1 行状态栏
	const want = 3 + 1 + 1

	if n := strings.Count(p.View(), "\n"); n != want {
		t.Errorf("frame 0 view has %d lines, want %d", n, want)
	}
	var m tea.Model = p
	m, _ = m.Update(tickMsg{})
	for _, step := range []time.Duration{900, 120, 150} {
		*clock = clock.Add(step * time.Millisecond)
		m, _ = m.Update(tickMsg{})
		if n := strings.Count(m.View(), "\n"); n != want {
			t.Errorf("after %dms view has %d lines, want %d", step, n, want)
		}
	}
	// 第 3 帧上浮 3 行，第一行就是字符画
	if first := strings.Split(m.View(), "\n")[0]; !strings.Contains(first, "DDD") {
		t.Errorf("frame 3 first line = %q, want DDD", first)
	}
}

func TestPreview_BlinkKey(t *testing.T) {
	p, _ := newTestPreview(t)
	m, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if v := m.View(); !strings.Contains(v, "blinking") {
		t.Errorf("view = %q, want blink status", v)
	}
}

func TestPreview_Quit(t *testing.T) {
	p, _ := newTestPreview(t)
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
