package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/wenhao19971211/wanwan-desktop-pet/config"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/game"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "wanwan",
	Short: "wanwan, a tiny desktop pet that blinks and bobs",
	Long: `wanwan puts a frameless, always-on-top pet on your desktop.

Drag it with the left mouse button, double-click to make it blink,
right-click for the menu. Esc quits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg := loadConfig(logger)
		return runPet(cmd.Context(), cfg, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wanwan/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}

// Execute 入口
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "wanwan",
		Level:  hclog.LevelFromString(logLevel),
		Output: os.Stderr,
	})
}

// loadConfig 配置坏了也不退出，用默认值继续
func loadConfig(logger hclog.Logger) config.Config {
	path := configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		logger.Warn("config ignored, using defaults", "path", path, "error", err)
	}
	return cfg
}

func runPet(ctx context.Context, cfg config.Config, logger hclog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 1. 基础窗口设置
	ebiten.SetWindowDecorated(false) // 无边框
	ebiten.SetWindowFloating(true)   // 始终置顶
	ebiten.SetWindowTitle(cfg.Window.Title)

	// 2. 初始化逻辑
	mgr, err := game.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pet: %w", err)
	}
	mgr.Init(ctx) // 这里面会计算并重新 SetWindowSize

	// 3. 启动
	opts := &ebiten.RunGameOptions{
		ScreenTransparent: true, // 透明背景
		SkipTaskbar:       true,
	}
	if err := ebiten.RunGameWithOptions(mgr, opts); err != nil {
		return fmt.Errorf("run pet: %w", err)
	}
	logger.Info("bye")
	return nil
}
