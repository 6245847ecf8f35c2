package cmd

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/heppi/heppi"
	"github.com/heppi/heppi/term"
	"github.com/spf13/cobra"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Play the show in the terminal",
	Long: `Play the show in the terminal using half-block characters, two
pixels per cell. The terminal needs true color for the best result.

Keys: r restarts, s toggles snow, q / Esc / Ctrl-C quits.
Clicking sets off a burst at the pointer.

Logs are discarded unless --log-file is set.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

var termFPS int

func init() {
	rootCmd.AddCommand(termCmd)
	termCmd.Flags().IntVar(&termFPS, "fps", 30, "frames per second")
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadShowConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	onIgnite, closeSound := newSound(log)
	defer closeSound()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := func(cols, rows int) (*heppi.Show, error) {
		log.Info().Int("cols", cols).Int("rows", rows).Msg("terminal opened")
		return heppi.NewShow(term.FitConfig(cfg, cols, rows), heppi.WithLogger(log))
	}
	return term.Run(ctx, build, term.Options{
		FPS:      termFPS,
		OnIgnite: onIgnite,
		Logger:   log,
	})
}
