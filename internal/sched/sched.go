// Package sched 单线程的一次性定时器队列。
//
// 没有后台 goroutine：宿主循环（ebiten 的 Update 或者 bubbletea 的 tick）每次把流逝的时间
// 交给 Advance，到点的回调按到期时间顺序在调用方的线程里执行；同时到期的按 After 的先后。
package sched

import (
	"container/heap"
	"time"
)

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any) { *h = append(*h, x.(*timer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// 全是 0 间隔的序列会在同一时刻无限重排自己，这里限一下每次 Advance 的执行数，剩下的留到下一次
const maxFiresPerAdvance = 4096

// Scheduler 虚拟时钟 + 定时器堆
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
}

// New 返回一个时钟从 0 开始的调度器
func New() *Scheduler {
	return &Scheduler{}
}

// After 在 d 之后执行 fn。d <= 0 表示下一次 Advance（哪怕 dt 为 0）就执行。
func (s *Scheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.timers, &timer{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance 时钟前进 dt，执行所有到期的回调，返回执行了几个。
// 回调里新排的定时器如果也落在这段时间内，同样会被执行。
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0
	for len(s.timers) > 0 && s.timers[0].due <= target && fired < maxFiresPerAdvance {
		t := heap.Pop(&s.timers).(*timer)
		// 回调看到的 Now 是它自己的到期时间；上次被截断留下的旧定时器不让时钟倒退
		s.now = max(s.now, t.due)
		t.fn()
		fired++
	}
	s.now = target
	return fired
}

// Now 虚拟时钟当前时间
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending 还没到期的定时器个数
func (s *Scheduler) Pending() int { return len(s.timers) }

// Next 最近一个定时器还要多久，没有定时器时 ok 为 false
func (s *Scheduler) Next() (d time.Duration, ok bool) {
	if len(s.timers) == 0 {
		return 0, false
	}
	return max(s.timers[0].due-s.now, 0), true
}
