package cmd

import (
	"fmt"
	"os"

	"github.com/arcanaland/konamimap/internal/extract"
	"github.com/arcanaland/konamimap/internal/logging"
	"github.com/arcanaland/konamimap/internal/validator"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [path]",
	Short: "Report KONAMI ID coverage of a downloaded cardinfo JSON file",
	Long: `Inspect reads a cardinfo.php?misc=yes response saved to disk and reports how
many cards have a KONAMI ID, which cards share one and which will be commented out.
Nothing is downloaded or written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonPath := args[0]

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return fmt.Errorf("error reading %s: %v", jsonPath, err)
		}

		records, err := extract.Decode(data)
		if err != nil {
			return err
		}

		opts := extract.Options{IncludeNegativeIDs: cfg.Extract.IncludeNegativeIDs}
		results := validator.NewValidator(records, opts).Validate()

		colorize.NoColor = !logging.IsTerminal(os.Stdout)
		verbose, _ := cmd.Flags().GetBool("verbose")
		printResults(jsonPath, results, verbose)

		if len(results.Errors) > 0 {
			return fmt.Errorf("inspection failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolP("verbose", "v", false, "List every warning")
	inspectCmd.Flags().Bool("include-negative", false, "Keep negative KONAMI IDs instead of skipping them")
}

func printResults(path string, results validator.ValidationResults, verbose bool) {
	stats := results.Stats

	fmt.Println("Inspection Results:")
	fmt.Println("-------------------")
	fmt.Println(colorize.CyanString("Cards:            ") + colorize.HiWhiteString("%d", stats.Cards))
	fmt.Println(colorize.CyanString("With KONAMI ID:   ") + colorize.HiWhiteString("%d", stats.WithKonamiID))
	fmt.Println(colorize.CyanString("Without:          ") + colorize.YellowString("%d", stats.Sentinels))
	fmt.Println(colorize.CyanString("Negative IDs:     ") + colorize.HiWhiteString("%d", stats.NegativeIDs))
	fmt.Println(colorize.CyanString("Multiple IDs:     ") + colorize.HiWhiteString("%d", stats.MultipleIDs))
	fmt.Println(colorize.CyanString("Distinct IDs:     ") + colorize.HiWhiteString("%d", stats.UniqueKonamiID))
	fmt.Println(colorize.CyanString("Shared IDs:       ") + colorize.HiWhiteString("%d", stats.DuplicateIDs))
	fmt.Println()

	if len(results.Errors) == 0 {
		fmt.Printf("✅ '%s' can be turned into a mapping header.\n", path)
	} else {
		fmt.Printf("❌ '%s' has %d errors:\n", path, len(results.Errors))
		for i, err := range results.Errors {
			fmt.Printf("%d. %s\n", i+1, err)
		}
	}

	if len(results.Warnings) == 0 {
		return
	}

	if !verbose {
		fmt.Printf("\n%d warnings (use --verbose to list them)\n", len(results.Warnings))
		return
	}

	fmt.Println("\nWarnings:")
	for i, warn := range results.Warnings {
		fmt.Printf("%d. %s\n", i+1, warn)
	}
}
