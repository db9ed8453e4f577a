package cmd

import (
	"fmt"
	"os"

	"github.com/arcanaland/konamimap/internal/config"
	"github.com/arcanaland/konamimap/internal/extract"
	"github.com/arcanaland/konamimap/internal/fetch"
	"github.com/arcanaland/konamimap/internal/logging"
	"github.com/arcanaland/konamimap/internal/pipeline"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/arcanaland/konamimap/cmd.Version=..."
var Version = "dev"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "konamimap",
	Short: "Generate a KONAMI ID -> card name C++ header",
	Long: `Konamimap downloads every card from the YGOPRODeck API, extracts each card's
KONAMI ID and writes a std::map<int, std::wstring> lookup table to CardIdMapping.hpp.

Cards without a known KONAMI ID are kept as commented-out entries.
Run without arguments to regenerate the header from scratch.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := logging.New(os.Stderr, cfg.Log.Level)
		if err != nil {
			return err
		}
		log.Info().Msgf("KONAMI ID -> Card Name Mapping Builder %s", Version)

		client := fetch.NewClient(cfg.Source.Timeout.Duration, cfg.Source.UserAgent)
		p := pipeline.New(client, pipeline.Options{
			URL:        cfg.Source.URL,
			OutputPath: cfg.Output.Path,
			TableName:  cfg.Output.TableName,
			Extract:    extract.Options{IncludeNegativeIDs: cfg.Extract.IncludeNegativeIDs},
		}, log)

		result, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}

		colorize.NoColor = !logging.IsTerminal(os.Stdout)
		fmt.Printf("✅ Wrote %s mappings (%s without KONAMI ID) to %s\n",
			colorize.HiWhiteString("%d", result.Entries),
			colorize.YellowString("%d", result.Sentinels),
			colorize.CyanString("%s", result.Path))

		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/konamimap/config.toml)")
	RootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error or disabled")

	RootCmd.Flags().StringP("output", "o", "", "Path of the generated header")
	RootCmd.Flags().String("url", "", "Card database URL")
	RootCmd.Flags().Bool("include-negative", false, "Keep negative KONAMI IDs instead of skipping them")
}

// loadConfig loads the config file and applies command-line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("output") {
		cfg.Output.Path, _ = flags.GetString("output")
	}
	if flags.Changed("url") {
		cfg.Source.URL, _ = flags.GetString("url")
	}
	if flags.Changed("include-negative") {
		cfg.Extract.IncludeNegativeIDs, _ = flags.GetBool("include-negative")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return cfg, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
