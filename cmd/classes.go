package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mabhi256/jdepcheck/internal/classfile"
	"github.com/mabhi256/jdepcheck/utils"
)

var showProvided bool

var classesCmd = &cobra.Command{
	Use:   "classes [jar|directory|class-file]",
	Short: "Dump the class names one artifact references or provides",
	Long: `Classes inspects a single compiled artifact and prints either the
fully-qualified class names its bytecode references (default) or the class
names it provides (--provided). Useful for debugging unexpected analysis
results.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension([]string{".jar", ".war", ".zip", ".class"}),
	RunE: func(cmd *cobra.Command, args []string) error {
		extractor := classfile.NewExtractor()

		var classes map[string]struct{}
		var err error
		if showProvided {
			classes, err = extractor.ProvidedClasses(args[0])
		} else {
			classes, err = extractor.ReferencedClasses(args[0])
		}
		if err != nil {
			return err
		}

		names := make([]string, 0, len(classes))
		for name := range classes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Println(name)
		}
		fmt.Printf("\n%d classes\n", len(names))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)

	classesCmd.Flags().BoolVar(&showProvided, "provided", false, "List provided instead of referenced classes")
}
