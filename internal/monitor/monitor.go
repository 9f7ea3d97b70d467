package monitor

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats 一次采样
type Stats struct {
	CPU float64 // 0-100
	Mem float64 // 0-100
}

// Sampler 后台定时采集 CPU / 内存。
// 采集在自己的 goroutine 里，窗口线程只通过 Stats() 读，所以要加锁。
type Sampler struct {
	interval time.Duration
	logger   hclog.Logger

	// 方便测试替换
	readCPU func() (float64, error)
	readMem func() (float64, error)

	mu    sync.RWMutex
	stats Stats
	ok    bool
}

// New 创建采集器，interval <= 0 时用 2 秒
func New(interval time.Duration, logger hclog.Logger) *Sampler {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Sampler{
		interval: interval,
		logger:   logger,
		readCPU:  readCPU,
		readMem:  readMem,
	}
}

// Start 启动采集协程，ctx 取消时退出
func (s *Sampler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			s.update()
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stats 最近一次采样，还没采到时 ok 为 false
func (s *Sampler) Stats() (Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, s.ok
}

func (s *Sampler) update() {
	next, _ := s.Stats()

	if v, err := s.readMem(); err == nil {
		next.Mem = v
	} else {
		s.logger.Debug("read memory", "error", err)
	}
	if v, err := s.readCPU(); err == nil {
		next.CPU = v
	} else {
		s.logger.Debug("read cpu", "error", err)
	}

	// 保留 1 位小数，看着干净
	next.CPU = math.Round(next.CPU*10) / 10
	next.Mem = math.Round(next.Mem*10) / 10

	s.mu.Lock()
	s.stats = next
	s.ok = true
	s.mu.Unlock()
}

func readMem() (float64, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return v.UsedPercent, nil
}

// Percent(0, false)：和上一次调用之间的平均值，不阻塞
func readCPU() (float64, error) {
	c, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(c) == 0 {
		return 0, nil
	}
	return c[0], nil
}
