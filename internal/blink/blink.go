// Package blink 眨眼的小状态机：随机等一会儿，闭眼再睁眼，一次或两次，然后回到待机帧。
package blink

import (
	"fmt"
	"time"

	"github.com/wenhao19971211/wanwan-desktop-pet/internal/anim"
)

// State 三个状态
type State int

const (
	IdleWaiting State = iota
	Blinking
	InterRepeatPause
)

func (s State) String() string {
	switch s {
	case IdleWaiting:
		return "idle-waiting"
	case Blinking:
		return "blinking"
	case InterRepeatPause:
		return "inter-repeat-pause"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Rand 随机源，math/rand/v2 的 *rand.Rand 直接满足
type Rand interface {
	IntN(n int) int
}

// Config 眨眼参数
type Config struct {
	Sequence  anim.Sequence
	Intervals anim.IntervalTable
	IdleFrame int

	MinWait, MaxWait   time.Duration // 两次眨眼之间
	MinPause, MaxPause time.Duration // 连眨两次中间的停顿
}

// DefaultConfig 闭眼 0->3 再睁开 3->0
func DefaultConfig() Config {
	return Config{
		Sequence:  anim.Sequence{0, 1, 2, 3, 2, 1, 0},
		Intervals: anim.Millis(0, 30, 20, 60, 20, 40, 0),
		IdleFrame: 0,
		MinWait:   2000 * time.Millisecond,
		MaxWait:   5000 * time.Millisecond,
		MinPause:  80 * time.Millisecond,
		MaxPause:  120 * time.Millisecond,
	}
}

func (c Config) validate() error {
	if err := anim.Check(c.Sequence, c.Intervals); err != nil {
		return err
	}
	if c.MinWait < 0 || c.MaxWait < c.MinWait {
		return fmt.Errorf("blink: bad wait range [%s, %s]", c.MinWait, c.MaxWait)
	}
	if c.MinPause < 0 || c.MaxPause < c.MinPause {
		return fmt.Errorf("blink: bad pause range [%s, %s]", c.MinPause, c.MaxPause)
	}
	return nil
}

// Scheduler 只有它自己改 BlinkState，窗口那边从来不碰
type Scheduler struct {
	cfg Config
	rng Rand

	state          State
	blinking       bool
	repeatsPlanned int
	repeatsDone    int
	step           int
}

// New 创建眨眼调度器
func New(cfg Config, rng Rand) (*Scheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("blink: nil random source")
	}
	return &Scheduler{cfg: cfg, rng: rng}, nil
}

// Arm 进入等待：不画，返回一个 [MinWait, MaxWait] 的随机延迟
func (s *Scheduler) Arm() anim.Step {
	s.state = IdleWaiting
	s.blinking = false
	return anim.Step{Delay: s.nextWait()}
}

// Fire 等待定时器到点。已经在眨眼就什么也不做（防重入）。
func (s *Scheduler) Fire() (anim.Step, bool) {
	if s.blinking {
		return anim.Step{}, false
	}
	s.blinking = true
	s.state = Blinking
	s.repeatsPlanned = 1 + s.rng.IntN(2)
	s.repeatsDone = 0
	s.step = 0
	return s.render(), true
}

// Advance 眨眼过程中的下一个子步骤
func (s *Scheduler) Advance() anim.Step {
	switch s.state {
	case InterRepeatPause:
		s.state = Blinking
		s.step = 0
		return s.render()
	case Blinking:
		if s.step < len(s.cfg.Sequence) {
			return s.render()
		}
		s.repeatsDone++
		if s.repeatsDone < s.repeatsPlanned {
			// 连眨：停顿一下再来一遍
			s.state = InterRepeatPause
			s.step = 0
			return anim.Step{Delay: s.between(s.cfg.MinPause, s.cfg.MaxPause)}
		}
		step := s.Arm()
		step.Render = true
		step.Frame = s.cfg.IdleFrame
		return step
	}
	return anim.Step{}
}

func (s *Scheduler) render() anim.Step {
	st := anim.Step{
		Render: true,
		Frame:  s.cfg.Sequence[s.step],
		Delay:  s.cfg.Intervals[s.step],
	}
	s.step++
	return st
}

func (s *Scheduler) nextWait() time.Duration {
	return s.between(s.cfg.MinWait, s.cfg.MaxWait)
}

// between 闭区间均匀取值，按毫秒取整
func (s *Scheduler) between(lo, hi time.Duration) time.Duration {
	loMs, hiMs := lo.Milliseconds(), hi.Milliseconds()
	if hiMs <= loMs {
		return lo
	}
	return time.Duration(loMs+int64(s.rng.IntN(int(hiMs-loMs+1)))) * time.Millisecond
}

func (s *Scheduler) State() State { return s.state }
func (s *Scheduler) Blinking() bool { return s.blinking }
func (s *Scheduler) RepeatsPlanned() int { return s.repeatsPlanned }
func (s *Scheduler) RepeatsDone() int { return s.repeatsDone }
func (s *Scheduler) IdleFrame() int { return s.cfg.IdleFrame }
