package cmd

import (
	"fmt"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wenhao19971211/wanwan-desktop-pet/internal/ascii"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/assets"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/director"
	"github.com/wenhao19971211/wanwan-desktop-pet/internal/tui"
)

var previewWidth int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the pet's animation as ASCII art in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg := loadConfig(logger)

		width := cfg.Render.ASCIIWidth
		if previewWidth > 0 {
			width = previewWidth
		}

		dir := assets.DefaultResolver().Resolve(cfg.Assets.Dir)
		imgs, loaded := assets.Load(dir, cfg.Assets.FrameCount, 1, logger.Named("assets"))
		if loaded == 0 {
			return fmt.Errorf("no frames found in %s", dir)
		}
		art := ascii.Frames(imgs, width, cfg.Render.ASCIIChars)

		sink := tui.NewSink()
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
		d, err := director.Build(cfg, sink, rng, logger.Named("director"))
		if err != nil {
			return err
		}
		d.Start()

		program := tea.NewProgram(tui.NewPreview(d, sink, art, cfg.Idle.BobOffsets))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 0, "characters per line (default render.ascii_width)")
	rootCmd.AddCommand(previewCmd)
}
