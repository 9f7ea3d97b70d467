package director

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/wenhao19971211/wanwan-desktop-pet/config"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/anim"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/blink"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/sched"
)

// Build 按配置把待机动画、眨眼、定时器队列拼起来。窗口和终端预览共用。
func Build(cfg config.Config, sink Sink, rng blink.Rand, logger hclog.Logger) (*Director, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var idle *anim.Sequencer
	if cfg.Idle.Enabled {
		seq, intervals := cfg.IdleTables()
		s, err := anim.New(seq, intervals, cfg.Idle.BobOffsets)
		if err != nil {
			return nil, fmt.Errorf("idle animation: %w", err)
		}
		idle = s
	}

	var bl *blink.Scheduler
	if cfg.Blink.Enabled {
		b, err := blink.New(cfg.BlinkParams(), rng)
		if err != nil {
			return nil, fmt.Errorf("blink: %w", err)
		}
		bl = b
	}

	logger.Debug("director built",
		"idle", cfg.Idle.Enabled,
		"blink", cfg.Blink.Enabled,
		"suppress_idle", cfg.Blink.SuppressIdle)

	return New(sched.New(), idle, bl, sink,
		WithLogger(logger),
		WithSuppressIdle(cfg.Blink.SuppressIdle),
	), nil
}
