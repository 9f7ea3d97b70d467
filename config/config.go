package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wenhao19971211/wanwan-desktop-pet/internal/anim"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/blink"
)

// Config 对应 config.yml。文件是可选的，程序从来不往回写。
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Window  WindowConfig  `yaml:"window"`
	Idle    IdleConfig    `yaml:"idle"`
	Blink   BlinkConfig   `yaml:"blink"`
	Render  RenderConfig  `yaml:"render"`
	Monitor MonitorConfig `yaml:"monitor"`
}

// AssetsConfig 帧图片
type AssetsConfig struct {
	Dir        string  `yaml:"dir"`         // 相对于资源根目录
	FrameCount int     `yaml:"frame_count"` // 读 1.png .. N.png
	Scale      float64 `yaml:"scale"`       // 1 表示原尺寸
}

// WindowConfig 窗口
type WindowConfig struct {
	Title          string `yaml:"title"`
	FallbackWidth  int    `yaml:"fallback_width"`  // 图片读不出来时的窗口尺寸
	FallbackHeight int    `yaml:"fallback_height"`
	IdleTPS        int    `yaml:"idle_tps"`   // 没人理它时
	ActiveTPS      int    `yaml:"active_tps"` // 拖拽 / 悬停 / 眨眼时
}

// IdleConfig 待机动画
type IdleConfig struct {
	Enabled    bool        `yaml:"enabled"`
	Sequence   []int       `yaml:"sequence"`
	Intervals  []Duration  `yaml:"intervals"`
	BobOffsets map[int]int `yaml:"bob_offsets"` // 帧 -> 垂直偏移
}

// BlinkConfig 眨眼
type BlinkConfig struct {
	Enabled      bool       `yaml:"enabled"`
	Sequence     []int      `yaml:"sequence"`
	Intervals    []Duration `yaml:"intervals"`
	IdleFrame    int        `yaml:"idle_frame"`
	MinWait      Duration   `yaml:"min_wait"`
	MaxWait      Duration   `yaml:"max_wait"`
	MinPause     Duration   `yaml:"min_pause"`
	MaxPause     Duration   `yaml:"max_pause"`
	SuppressIdle bool       `yaml:"suppress_idle"` // 眨眼时不画待机帧
}

// RenderConfig 画法
type RenderConfig struct {
	Style      string `yaml:"style"`       // sprite | ascii
	ASCIIWidth int    `yaml:"ascii_width"` // 字符画每行字符数
	ASCIIChars string `yaml:"ascii_chars"`
	Color      string `yaml:"color"` // 字符画颜色 #rrggbb
}

// MonitorConfig 系统监控
type MonitorConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

const (
	StyleSprite = "sprite"
	StyleASCII  = "ascii"
)

// Duration 让 YAML 里可以写 "900ms" 这种字符串，裸整数按毫秒算
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!int" {
		var ms int64
		if err := value.Decode(&ms); err != nil {
			return err
		}
		d.Duration = time.Duration(ms) * time.Millisecond
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

func millis(ms ...int) []Duration {
	out := make([]Duration, len(ms))
	for i, v := range ms {
		out[i] = Duration{time.Duration(v) * time.Millisecond}
	}
	return out
}

// Defaults 找不到配置文件，或者读取失败时，用这个“保底”
func Defaults() Config {
	return Config{
		Assets: AssetsConfig{
			Dir:        filepath.Join("assets", "stand"),
			FrameCount: 4,
			Scale:      1,
		},
		Window: WindowConfig{
			Title:          "wanwan",
			FallbackWidth:  200,
			FallbackHeight: 200,
			IdleTPS:        30,
			ActiveTPS:      60,
		},
		Idle: IdleConfig{
			Enabled:    true,
			Sequence:   []int{0, 1, 2, 3, 3, 2, 1, 0},
			Intervals:  millis(900, 120, 150, 180, 180, 150, 120, 1200),
			BobOffsets: map[int]int{0: 0, 1: -1, 2: -2, 3: -3},
		},
		Blink: BlinkConfig{
			Enabled:      true,
			Sequence:     []int{0, 1, 2, 3, 2, 1, 0},
			Intervals:    millis(0, 30, 20, 60, 20, 40, 0),
			IdleFrame:    0,
			MinWait:      Duration{2 * time.Second},
			MaxWait:      Duration{5 * time.Second},
			MinPause:     Duration{80 * time.Millisecond},
			MaxPause:     Duration{120 * time.Millisecond},
			SuppressIdle: true,
		},
		Render: RenderConfig{
			Style:      StyleSprite,
			ASCIIWidth: 50,
			ASCIIChars: "@%#*+=-:. ",
			Color:      "#00ff00",
		},
		Monitor: MonitorConfig{
			Enabled:  false,
			Interval: Duration{2 * time.Second},
		},
	}
}

// Load 读默认路径
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom 读指定路径，和默认值合并。文件不存在不算错。
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// yaml 会把 mapping 合并进已有的 map，先清空，文件里没写再补回默认值
	cfg.Idle.BobOffsets = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Idle.BobOffsets == nil {
		cfg.Idle.BobOffsets = Defaults().Idle.BobOffsets
	}

	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate 序列长度、帧索引、时间范围
func (c Config) Validate() error {
	if c.Assets.FrameCount < 1 {
		return fmt.Errorf("assets.frame_count must be >= 1, got %d", c.Assets.FrameCount)
	}
	if c.Assets.Scale <= 0 {
		return fmt.Errorf("assets.scale must be > 0, got %v", c.Assets.Scale)
	}
	if c.Window.FallbackWidth <= 0 || c.Window.FallbackHeight <= 0 {
		return fmt.Errorf("window fallback size must be positive, got %dx%d", c.Window.FallbackWidth, c.Window.FallbackHeight)
	}
	if c.Window.IdleTPS <= 0 || c.Window.ActiveTPS < c.Window.IdleTPS {
		return fmt.Errorf("window tps must satisfy 0 < idle_tps <= active_tps, got %d/%d", c.Window.IdleTPS, c.Window.ActiveTPS)
	}
	if c.Idle.Enabled {
		seq, intervals := c.IdleTables()
		if err := anim.Check(seq, intervals); err != nil {
			return fmt.Errorf("idle: %w", err)
		}
		if err := seq.Validate(c.Assets.FrameCount); err != nil {
			return fmt.Errorf("idle: %w", err)
		}
	}
	if c.Blink.Enabled {
		bc := c.BlinkParams()
		if err := anim.Check(bc.Sequence, bc.Intervals); err != nil {
			return fmt.Errorf("blink: %w", err)
		}
		if err := bc.Sequence.Validate(c.Assets.FrameCount); err != nil {
			return fmt.Errorf("blink: %w", err)
		}
		if bc.IdleFrame < 0 || bc.IdleFrame >= c.Assets.FrameCount {
			return fmt.Errorf("blink: idle_frame %d out of range [0, %d)", bc.IdleFrame, c.Assets.FrameCount)
		}
		if bc.MaxWait < bc.MinWait || bc.MinWait < 0 {
			return fmt.Errorf("blink: max_wait %s below min_wait %s", bc.MaxWait, bc.MinWait)
		}
		if bc.MaxPause < bc.MinPause || bc.MinPause < 0 {
			return fmt.Errorf("blink: max_pause %s below min_pause %s", bc.MaxPause, bc.MinPause)
		}
	}
	switch c.Render.Style {
	case StyleSprite, StyleASCII:
	default:
		return fmt.Errorf("render.style must be %q or %q, got %q", StyleSprite, StyleASCII, c.Render.Style)
	}
	if c.Render.Style == StyleASCII && c.Render.ASCIIWidth <= 0 {
		return fmt.Errorf("render.ascii_width must be > 0, got %d", c.Render.ASCIIWidth)
	}
	return nil
}

// IdleTables 转成 anim 的类型
func (c Config) IdleTables() (anim.Sequence, anim.IntervalTable) {
	return anim.Sequence(c.Idle.Sequence), toTable(c.Idle.Intervals)
}

// BlinkParams 转成 blink 的配置
func (c Config) BlinkParams() blink.Config {
	return blink.Config{
		Sequence:  anim.Sequence(c.Blink.Sequence),
		Intervals: toTable(c.Blink.Intervals),
		IdleFrame: c.Blink.IdleFrame,
		MinWait:   c.Blink.MinWait.Duration,
		MaxWait:   c.Blink.MaxWait.Duration,
		MinPause:  c.Blink.MinPause.Duration,
		MaxPause:  c.Blink.MaxPause.Duration,
	}
}

func toTable(ds []Duration) anim.IntervalTable {
	t := make(anim.IntervalTable, len(ds))
	for i, d := range ds {
		t[i] = d.Duration
	}
	return t
}

// Path 默认配置路径 $XDG_CONFIG_HOME/wanwan/config.yml
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "wanwan", "config.yml")
}
