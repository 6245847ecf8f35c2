// Package cmd contains the heppi CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heppi/heppi"
	"github.com/heppi/heppi/audio"
	"github.com/heppi/heppi/internal/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "heppi",
	Short: "A Christmas greeting of fireworks and snow",
	Long: `heppi launches fireworks that spell out a sequence of phrases
(MERRY, CHRISTMAS, I LOVE YOU by default), then settles into an endless
ambient display of random bursts while snow falls.

It plays in a window, in the terminal, or headless into PNG frames.

Running 'heppi' without a subcommand opens the window.`,
	SilenceUsage: true,
	RunE:         runWindow,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// globalFlags are bound to viper under the same names.
var globalFlags = []string{"config", "log-level", "log-file", "pretty", "seed", "no-snow", "no-trails", "sound"}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SilenceErrors = true

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML show configuration (defaults are built in)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file instead of stderr")
	pf.Bool("pretty", false, "human-readable console logs")
	pf.Uint64("seed", 0, "random seed; 0 picks one from the clock")
	pf.Bool("no-snow", false, "hide the snow layer")
	pf.Bool("no-trails", false, "clear every frame instead of leaving trails")
	pf.Bool("sound", false, "play a pop for every explosion")

	for _, name := range globalFlags {
		viper.BindPFlag(name, pf.Lookup(name))
	}
}

// initConfig loads .env and binds HEPPI_ environment variables.
func initConfig() {
	_ = godotenv.Load()
	viper.SetEnvPrefix("HEPPI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadShowConfig reads the configuration file, if any, and applies the
// global flag overrides.
func loadShowConfig() (heppi.Config, error) {
	cfg := heppi.DefaultConfig()
	if path := viper.GetString("config"); path != "" {
		var err error
		if cfg, err = heppi.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if viper.GetBool("no-snow") {
		cfg.Snow.Enabled = false
	}
	if viper.GetBool("no-trails") {
		cfg.Trails = false
	}
	if seed := viper.GetUint64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

// newLogger builds the CLI logger writing to the --log-file, or to fallback
// when none is set. The returned func closes the log file.
func newLogger(fallback io.Writer) (zerolog.Logger, func(), error) {
	out, done := fallback, func() {}
	if path := viper.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), done, fmt.Errorf("open log file: %w", err)
		}
		out, done = f, func() { f.Close() }
	}
	l := logger.New(logger.Config{
		Level:  viper.GetString("log-level"),
		Pretty: viper.GetBool("pretty"),
		Output: out,
	})
	logger.SetGlobalLogger(l)
	return l, done, nil
}

// newSound opens the speaker when --sound is set. It returns the ignition
// callback and a cleanup func; both are no-ops without sound. Audio failures
// are logged and the show runs silently.
func newSound(log zerolog.Logger) (func(ids []int), func()) {
	if !viper.GetBool("sound") {
		return nil, func() {}
	}
	p := audio.NewPlayer(log)
	if err := p.Init(); err != nil {
		log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		return nil, func() {}
	}
	return p.Ignite, p.Close
}
