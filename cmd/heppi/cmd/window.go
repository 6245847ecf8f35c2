package cmd

import (
	"fmt"
	"os"

	"github.com/heppi/heppi"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play the show in a window",
	Long: `Open a resizable window and play the show.

Keys:
  R    restart the show
  S    save a screenshot
  F    toggle the FPS overlay
  Esc  quit

Clicking anywhere sets off a burst at the pointer.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

var (
	windowWidth       int
	windowHeight      int
	windowFPS         bool
	windowDebug       bool
	windowScreenshots string
	windowScript      string
)

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().IntVar(&windowWidth, "width", 960, "initial window width")
	windowCmd.Flags().IntVar(&windowHeight, "height", 640, "initial window height")
	windowCmd.Flags().BoolVar(&windowFPS, "fps", false, "show the FPS overlay")
	windowCmd.Flags().BoolVar(&windowDebug, "debug", false, "log per-frame timings at debug level")
	windowCmd.Flags().StringVar(&windowScreenshots, "screenshots", "screenshots", "directory for screenshots")
	windowCmd.Flags().StringVar(&windowScript, "script", "", "JSON script of clicks, waits and screenshots to run")
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadShowConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var script *heppi.Script
	if windowScript != "" {
		data, err := os.ReadFile(windowScript)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if script, err = heppi.LoadScript(data); err != nil {
			return err
		}
	}

	show, err := heppi.NewShow(cfg, heppi.WithLogger(log))
	if err != nil {
		return err
	}
	onIgnite, closeSound := newSound(log)
	defer closeSound()

	log.Info().Int("phrases", len(cfg.Phrases)).Bool("snow", cfg.Snow.Enabled).Msg("opening window")
	return heppi.Run(show, heppi.RunConfig{
		Width:         windowWidth,
		Height:        windowHeight,
		ShowFPS:       windowFPS,
		Debug:         windowDebug,
		ScreenshotDir: windowScreenshots,
		Script:        script,
		OnIgnite:      onIgnite,
		Logger:        log,
	})
}
