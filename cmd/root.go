package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/amish-gaur/DataPriv/config"
)

const appName = "radar"

// version is overridden at build time with -ldflags "-X github.com/amish-gaur/DataPriv/cmd.version=..."
var version = "dev"

// k holds the parsed command line flags; file and env configuration is loaded separately by config.Load
var k *koanf.Koanf

var rootCmd = &cobra.Command{
	Use:     appName,
	Short:   "privacy policy analysis and risk scoring service",
	Long:    "radar locates a site's privacy policy, summarizes what it collects and shares, and scores the privacy risk to the user",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cobra.CheckErr(initCmdFlags(cmd))
	},
}

// Execute runs the root command with a context that is cancelled on SIGINT or SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	k = koanf.New(".")
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", config.DefaultConfigFilePath, "config file location")
	rootCmd.PersistentFlags().Bool("pretty", false, "human readable log output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}

func initConfig() {
	if err := initCmdFlags(rootCmd); err != nil {
		log.Fatal().Err(err).Msg("error loading flags")
	}

	setupLogging(k.Bool("debug"), k.Bool("pretty"))
}

// initCmdFlags merges the flags of cmd, including inherited persistent flags, into k
func initCmdFlags(cmd *cobra.Command) error {
	return k.Load(posflag.Provider(cmd.Flags(), k.Delim(), k), nil)
}

// setupLogging sets the global zerolog level and writer; logs always go to stderr so
// command output on stdout stays machine readable
func setupLogging(debug, pretty bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(os.Stderr)
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger.With().Timestamp().Str("app", appName).Logger()
}
