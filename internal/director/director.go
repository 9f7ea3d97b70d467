// Package director 把待机动画和眨眼两个状态机挂到同一个定时器队列上，
// 并且是唯一一个往窗口上"画"的地方。
package director

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/wenhao19971211/wanwan-desktop-pet/internal/anim"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/blink"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/sched"
)

// Sink 渲染目标：窗口、终端预览、测试里的假窗口
type Sink interface {
	Render(frame, offset int)
}

// Director 两个状态机的仲裁者。
// 所有回调都在 sched.Advance 的调用线程里执行，所以这里不需要锁。
type Director struct {
	sched  *sched.Scheduler
	idle   *anim.Sequencer  // nil 表示没有待机动画，只眨眼
	blink  *blink.Scheduler // nil 表示不眨眼
	sink   Sink
	logger hclog.Logger

	// 眨眼期间丢掉待机动画的渲染（待机序列照常走，只是不画）
	suppressIdle bool

	// 每次重新进入等待都换一代，旧的等待定时器到点后直接作废
	armGen uint64

	frame   int
	offset  int
	renders int
}

// Option 可选项
type Option func(*Director)

// WithLogger 指定日志
func WithLogger(l hclog.Logger) Option {
	return func(d *Director) { d.logger = l }
}

// WithSuppressIdle 眨眼时是否压住待机动画
func WithSuppressIdle(on bool) Option {
	return func(d *Director) { d.suppressIdle = on }
}

// New 组装。idle 和 bl 都可以为 nil。
func New(s *sched.Scheduler, idle *anim.Sequencer, bl *blink.Scheduler, sink Sink, opts ...Option) *Director {
	d := &Director{
		sched:        s,
		idle:         idle,
		blink:        bl,
		sink:         sink,
		logger:       hclog.NewNullLogger(),
		suppressIdle: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start 画第一帧，把两个状态机的第一个定时器排上
func (d *Director) Start() {
	switch {
	case d.idle != nil:
		st := d.idle.Start()
		d.render(st.Frame, st.Offset)
		d.sched.After(st.Delay, d.idleTick)
	case d.blink != nil:
		d.render(d.blink.IdleFrame(), 0)
	default:
		d.render(0, 0)
	}

	if d.blink != nil {
		d.arm(d.blink.Arm())
	}
}

// Advance 宿主循环每帧调用一次
func (d *Director) Advance(dt time.Duration) {
	d.sched.Advance(dt)
}

// Blink 手动触发一次眨眼（双击）。已经在眨眼时返回 false。
func (d *Director) Blink() bool {
	if d.blink == nil || d.blink.Blinking() {
		return false
	}
	// 作废还在等的那个定时器，眨完以后会重新排
	d.armGen++
	return d.fire()
}

// Blinking 当前是否在眨眼
func (d *Director) Blinking() bool {
	return d.blink != nil && d.blink.Blinking()
}

// Frame 最后一次画的帧
func (d *Director) Frame() int { return d.frame }

// Offset 最后一次画的偏移
func (d *Director) Offset() int { return d.offset }

// Renders 一共画了多少次
func (d *Director) Renders() int { return d.renders }

func (d *Director) idleTick() {
	st := d.idle.Tick()
	if st.Render {
		if d.suppressIdle && d.Blinking() {
			d.logger.Trace("idle frame suppressed during blink", "frame", st.Frame)
		} else {
			d.render(st.Frame, st.Offset)
		}
	}
	if d.idle.Active() {
		d.sched.After(st.Delay, d.idleTick)
	}
}

func (d *Director) arm(st anim.Step) {
	d.armGen++
	gen := d.armGen
	d.logger.Trace("blink armed", "wait", st.Delay)
	d.sched.After(st.Delay, func() {
		if gen != d.armGen {
			return
		}
		d.fire()
	})
}

func (d *Director) fire() bool {
	st, ok := d.blink.Fire()
	if !ok {
		return false
	}
	d.logger.Trace("blink started", "repeats", d.blink.RepeatsPlanned())
	d.render(st.Frame, d.offset)
	d.sched.After(st.Delay, d.blinkStep)
	return true
}

func (d *Director) blinkStep() {
	st := d.blink.Advance()
	if st.Render {
		d.render(st.Frame, d.offset)
	}
	if d.blink.State() == blink.IdleWaiting {
		d.logger.Trace("blink finished")
		d.arm(st)
		return
	}
	d.sched.After(st.Delay, d.blinkStep)
}

func (d *Director) render(frame, offset int) {
	d.frame = frame
	d.offset = offset
	d.renders++
	if d.sink != nil {
		d.sink.Render(frame, offset)
	}
}
