package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mabhi256/jdepcheck/internal/analyzer"
	"github.com/mabhi256/jdepcheck/internal/classfile"
	"github.com/mabhi256/jdepcheck/internal/inventory"
	"github.com/mabhi256/jdepcheck/internal/manifest"
	"github.com/mabhi256/jdepcheck/internal/report"
	"github.com/mabhi256/jdepcheck/internal/tui"
	"github.com/mabhi256/jdepcheck/utils"
)

var (
	outputFormat    string
	failOnViolation bool
	cacheSize       int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [manifest-file]",
	Short: "Classify a module's declared dependencies",
	Long: `Analyze reads a resolved-dependency manifest, extracts the classes the
module's compiled output references, indexes the classes provided by the
transitive dependency graphs, and reports which dependencies are
used-and-declared, used-but-undeclared, or declared-but-unused.

Examples:
  jdepcheck analyze jdepcheck.yaml
  jdepcheck analyze jdepcheck.yaml -o tui
  jdepcheck analyze jdepcheck.yaml --fail-on-violation`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".yaml", ".yml"}),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		validFormats := []string{"cli", "cli-more", "tui"}
		if !slices.Contains(validFormats, outputFormat) {
			return fmt.Errorf("invalid output format: %s. Valid options: %v", outputFormat, validFormats)
		}

		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return fmt.Errorf("manifest does not exist: %s", args[0])
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.Load(args[0])
		if err != nil {
			return err
		}

		roles, err := m.Roles()
		if err != nil {
			return err
		}

		cache, err := inventory.NewCache(cacheSize, classfile.NewExtractor())
		if err != nil {
			return err
		}

		a, err := analyzer.NewAnalyzer(cache)
		if err != nil {
			return err
		}

		result, err := a.Analyze(m.Module.Output, roles)
		if err != nil {
			return err
		}

		if outputFormat == "tui" {
			if err := tui.StartTUI(result); err != nil {
				return fmt.Errorf("unable to start TUI: %w", err)
			}
		} else {
			report.PrintReport(result, outputFormat)
		}

		if failOnViolation && result.HasViolations() {
			return fmt.Errorf("dependency declaration violations found: %d used-undeclared, %d unused-declared",
				result.UsedUndeclared.Len(), result.UnusedDeclared.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputFormat, "output", "o", "cli", "Output format")
	analyzeCmd.Flags().BoolVar(&failOnViolation, "fail-on-violation", false, "Exit non-zero when violations are found")
	analyzeCmd.Flags().IntVar(&cacheSize, "cache-size", inventory.DefaultCacheSize, "Max artifact inventories kept in memory")

	// When user types: jdepcheck analyze file.yaml -o <TAB>
	_ = analyzeCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"cli", "cli-more", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
}
