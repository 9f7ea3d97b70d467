package blink

import (
	"math/rand/v2"
	"testing"
	"time"
)

// scripted 按顺序吐出预设的值（对 n 取模）
type scripted struct {
	values []int
	calls  int
}

func (s *scripted) IntN(n int) int {
	v := s.values[s.calls%len(s.values)]
	s.calls++
	return v % n
}

func TestArm_DelayInRange(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		s, err := New(DefaultConfig(), rand.New(rand.NewPCG(seed, seed*7+1)))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 20; i++ {
			d := s.Arm().Delay
			if d < 2000*time.Millisecond || d > 5000*time.Millisecond {
				t.Fatalf("seed %d: wait %s outside [2s, 5s]", seed, d)
			}
		}
	}
}

func TestArm_Bounds(t *testing.T) {
	lo, _ := New(DefaultConfig(), &scripted{values: []int{0}})
	if d := lo.Arm().Delay; d != 2000*time.Millisecond {
		t.Errorf("lowest wait = %s, want 2s", d)
	}
	hi, _ := New(DefaultConfig(), &scripted{values: []int{3000}})
	if d := hi.Arm().Delay; d != 5000*time.Millisecond {
		t.Errorf("highest wait = %s, want 5s", d)
	}
}

func TestFire_RepeatsPlanned(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		s, _ := New(DefaultConfig(), rand.New(rand.NewPCG(seed, 3)))
		s.Arm()
		if _, ok := s.Fire(); !ok {
			t.Fatal("fire from idle should start a blink")
		}
		if p := s.RepeatsPlanned(); p != 1 && p != 2 {
			t.Fatalf("seed %d: repeats_planned = %d", seed, p)
		}
	}
}

func TestFire_ReentrancyGuard(t *testing.T) {
	s, _ := New(DefaultConfig(), &scripted{values: []int{0}})
	s.Arm()
	s.Fire()
	s.Advance()
	if st, ok := s.Fire(); ok || st.Render {
		t.Errorf("second fire while blinking = %+v, %v; want no-op", st, ok)
	}
	if s.State() != Blinking {
		t.Errorf("state = %s, want blinking", s.State())
	}
}

// runEpisode 从 Fire 一直推进到回到等待状态，返回所有画过的帧
func runEpisode(t *testing.T, s *Scheduler) (frames []int, pauses []time.Duration, last time.Duration) {
	t.Helper()
	st, ok := s.Fire()
	if !ok {
		t.Fatal("fire failed")
	}
	frames = append(frames, st.Frame)
	for i := 0; i < 100; i++ {
		prev := s.State()
		st = s.Advance()
		if st.Render {
			frames = append(frames, st.Frame)
		}
		if s.State() == InterRepeatPause && prev == Blinking {
			pauses = append(pauses, st.Delay)
		}
		if s.State() == IdleWaiting {
			return frames, pauses, st.Delay
		}
	}
	t.Fatal("episode never finished")
	return
}

func TestEpisode_TwoRepeats(t *testing.T) {
	// IntN(2)=1 -> 两次; 停顿 IntN(41)=20 -> 100ms; 等待 IntN(3001)=500 -> 2500ms
	s, _ := New(DefaultConfig(), &scripted{values: []int{1, 20, 500}})
	s.Arm()
	s.rng = &scripted{values: []int{1, 20, 500}}

	frames, pauses, wait := runEpisode(t, s)

	want := []int{0, 1, 2, 3, 2, 1, 0, 0, 1, 2, 3, 2, 1, 0, 0}
	if len(frames) != 15 {
		t.Fatalf("renders = %d (%v), want 14 sub-frames + 1 idle", len(frames), frames)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame[%d] = %d, want %d", i, frames[i], want[i])
		}
	}
	if len(pauses) != 1 || pauses[0] != 100*time.Millisecond {
		t.Errorf("pauses = %v, want [100ms]", pauses)
	}
	if wait != 2500*time.Millisecond {
		t.Errorf("re-arm wait = %s, want 2.5s", wait)
	}
	if s.Blinking() || s.RepeatsDone() != 2 {
		t.Errorf("blinking=%v repeats_done=%d after episode", s.Blinking(), s.RepeatsDone())
	}
}

func TestEpisode_OneRepeat(t *testing.T) {
	s, _ := New(DefaultConfig(), &scripted{values: []int{0}})
	s.Arm()
	frames, pauses, wait := runEpisode(t, s)
	if len(frames) != 8 {
		t.Errorf("renders = %d, want 7 + idle", len(frames))
	}
	if len(pauses) != 0 {
		t.Errorf("single blink should not pause, got %v", pauses)
	}
	if frames[len(frames)-1] != s.IdleFrame() {
		t.Errorf("last frame = %d, want idle frame", frames[len(frames)-1])
	}
	if wait != 2000*time.Millisecond {
		t.Errorf("wait = %s, want 2s", wait)
	}
}

func TestEpisode_PauseRange(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		s, _ := New(DefaultConfig(), rand.New(rand.NewPCG(seed, 11)))
		s.Arm()
		_, pauses, wait := runEpisode(t, s)
		for _, p := range pauses {
			if p < 80*time.Millisecond || p > 120*time.Millisecond {
				t.Fatalf("seed %d: pause %s outside [80ms, 120ms]", seed, p)
			}
		}
		if wait < 2*time.Second || wait > 5*time.Second {
			t.Fatalf("seed %d: re-arm wait %s", seed, wait)
		}
	}
}

func TestEpisode_SubStepDelays(t *testing.T) {
	s, _ := New(DefaultConfig(), &scripted{values: []int{0}})
	s.Arm()
	want := DefaultConfig().Intervals
	st, _ := s.Fire()
	got := []time.Duration{st.Delay}
	for i := 1; i < len(want); i++ {
		got = append(got, s.Advance().Delay)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delay[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Intervals = cfg.Intervals[:3]
	if _, err := New(cfg, &scripted{values: []int{0}}); err == nil {
		t.Error("mismatched blink table should fail")
	}
	cfg = DefaultConfig()
	cfg.MaxWait = time.Second
	if _, err := New(cfg, &scripted{values: []int{0}}); err == nil {
		t.Error("max wait below min wait should fail")
	}
	if _, err := New(DefaultConfig(), nil); err == nil {
		t.Error("nil rand should fail")
	}
}
