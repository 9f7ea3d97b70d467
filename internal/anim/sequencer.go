package anim

// Sequencer 待机动画的状态机。
// 它自己不碰窗口也不碰定时器：Start/Tick 只返回 Step，由调用方去画、去排下一次。
type Sequencer struct {
	seq       Sequence
	intervals IntervalTable
	offsets   map[int]int // 帧 -> 垂直偏移(像素)，浮动效果用，可以为空

	current int
	active  bool
}

// New 创建一个 Sequencer，长度不一致或者为空时直接报错
func New(seq Sequence, intervals IntervalTable, offsets map[int]int) (*Sequencer, error) {
	if err := Check(seq, intervals); err != nil {
		return nil, err
	}
	s := &Sequencer{
		seq:       append(Sequence(nil), seq...),
		intervals: append(IntervalTable(nil), intervals...),
		offsets:   make(map[int]int, len(offsets)),
	}
	for k, v := range offsets {
		s.offsets[k] = v
	}
	return s, nil
}

// Start 从第 0 步开始
func (s *Sequencer) Start() Step {
	if len(s.seq) == 0 {
		return Step{}
	}
	s.current = 0
	s.active = true
	return s.step()
}

// Tick 前进一步（取模循环），返回这一步要画的帧和下一次的间隔。
// 先前进再画：第 i 步的帧停留 intervals[i]，Start 画的第 0 步停留 intervals[0]。
func (s *Sequencer) Tick() Step {
	if !s.active || len(s.seq) == 0 {
		return Step{}
	}
	s.current = (s.current + 1) % len(s.seq)
	return s.step()
}

func (s *Sequencer) step() Step {
	frame := s.seq[s.current]
	return Step{
		Render: true,
		Frame:  frame,
		Offset: s.offsets[frame],
		Delay:  s.intervals[s.current],
	}
}

// Current 当前步数
func (s *Sequencer) Current() int { return s.current }

// Active 是否已经 Start
func (s *Sequencer) Active() bool { return s.active }
