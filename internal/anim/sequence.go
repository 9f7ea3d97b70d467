package anim

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptySequence  = errors.New("anim: empty sequence")
	ErrLengthMismatch = errors.New("anim: sequence and interval table differ in length")
	ErrBadInterval    = errors.New("anim: negative interval")
	ErrBadFrame       = errors.New("anim: frame index out of range")
)

// Sequence 帧索引的有序循环，例如 [0,1,2,3,3,2,1,0]
type Sequence []int

// IntervalTable 每一步停留的时间，和 Sequence 一一对应
type IntervalTable []time.Duration

// Millis 把毫秒数组转成 IntervalTable，写默认值的时候省事
func Millis(ms ...int) IntervalTable {
	t := make(IntervalTable, len(ms))
	for i, v := range ms {
		t[i] = time.Duration(v) * time.Millisecond
	}
	return t
}

// Validate 检查所有帧索引都落在 [0, frameCount) 里
func (s Sequence) Validate(frameCount int) error {
	for i, f := range s {
		if f < 0 || f >= frameCount {
			return fmt.Errorf("%w: step %d references frame %d of %d", ErrBadFrame, i, f, frameCount)
		}
	}
	return nil
}

// Check 校验一对 (sequence, intervals)
func Check(seq Sequence, intervals IntervalTable) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if len(seq) != len(intervals) {
		return fmt.Errorf("%w: %d frames, %d intervals", ErrLengthMismatch, len(seq), len(intervals))
	}
	for i, d := range intervals {
		if d < 0 {
			return fmt.Errorf("%w: step %d is %s", ErrBadInterval, i, d)
		}
	}
	for i, f := range seq {
		if f < 0 {
			return fmt.Errorf("%w: step %d references frame %d", ErrBadFrame, i, f)
		}
	}
	return nil
}

// Step 一次 tick 的结果：要不要重画、画哪一帧、垂直偏移、多久以后再来
type Step struct {
	Render bool
	Frame  int
	Offset int
	Delay  time.Duration
}
