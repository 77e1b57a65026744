package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mabhi256/jdepcheck/internal/analyzer"
	"github.com/mabhi256/jdepcheck/internal/artifact"
)

// PrintReport renders an analysis result to stdout in the requested format.
// Whether violations fail the build is the caller's policy, not the report's.
func PrintReport(result *analyzer.Result, outputFormat string) {
	if result == nil {
		fmt.Println("Error: No analysis result available for report")
		return
	}

	switch outputFormat {
	case "cli":
		printSummary(result)
	case "cli-more":
		printSummary(result)
		printAudit(result)
	default:
		fmt.Printf("Unknown output format '%s', using summary format\n\n", outputFormat)
		printSummary(result)
	}
}

func printSummary(result *analyzer.Result) {
	// Header
	fmt.Printf("🔍 Dependency Declaration Analysis\n")
	fmt.Printf("Used classes: %d  |  Indexed classes: %d  |  Declared dependencies: %d\n",
		len(result.Usage), result.Index.Len(), result.Declared.Len())
	fmt.Println(strings.Repeat("═", 65))

	fmt.Println("\n✅ USED & DECLARED")
	fmt.Println(strings.Repeat("─", 35))
	printArtifactSet(result.UsedDeclared, "none")

	fmt.Println("\n⚠️  USED BUT UNDECLARED")
	fmt.Println(strings.Repeat("─", 35))
	if result.UsedUndeclared.Len() == 0 {
		fmt.Println("   none 🎉")
	} else {
		fmt.Println("   These work only by transitive accident, declare them:")
		printArtifactSet(result.UsedUndeclared, "")
	}

	fmt.Println("\n🗑️  DECLARED BUT UNUSED")
	fmt.Println(strings.Repeat("─", 35))
	if result.UnusedDeclared.Len() == 0 {
		fmt.Println("   none 🎉")
	} else {
		fmt.Println("   No class of these is referenced, remove or allow-list them:")
		printArtifactSet(result.UnusedDeclared, "")
	}

	printAmbiguities(result.Ambiguities)
	fmt.Println()
}

func printArtifactSet(set *artifact.Set, emptyLabel string) {
	if set.Len() == 0 {
		if emptyLabel != "" {
			fmt.Printf("   %s\n", emptyLabel)
		}
		return
	}
	for _, id := range set.Sorted() {
		fmt.Printf("   %s\n", id)
	}
}

func printAmbiguities(ambiguities []analyzer.Ambiguity) {
	if len(ambiguities) == 0 {
		return
	}

	fmt.Println("\n🟡 AMBIGUOUS CLASS OWNERSHIP")
	fmt.Println(strings.Repeat("─", 35))
	fmt.Printf("   %d class name(s) provided by more than one artifact;\n", len(ambiguities))
	fmt.Println("   every owner was treated as satisfying usage.")

	limit := min(len(ambiguities), 10)
	for _, diag := range ambiguities[:limit] {
		owners := make([]string, 0, len(diag.Owners))
		for _, id := range diag.Owners {
			owners = append(owners, id.String())
		}
		fmt.Printf("   %s ← %s\n", diag.Class, strings.Join(owners, ", "))
	}
	if len(ambiguities) > limit {
		fmt.Printf("   ... and %d more (use -o cli-more for the full list)\n", len(ambiguities)-limit)
	}
}

// printAudit dumps the intermediates a reviewer needs to retrace the
// classification: the usage set, the full owner index and the allow lists.
func printAudit(result *analyzer.Result) {
	fmt.Println("\n📋 AUDIT TRAIL")
	fmt.Println(strings.Repeat("═", 65))

	fmt.Printf("\nAllowed to use (%d):\n", result.AllowedToUse.Len())
	printArtifactSet(result.AllowedToUse, "none")
	fmt.Printf("\nAllowed to declare (%d):\n", result.AllowedToDeclare.Len())
	printArtifactSet(result.AllowedToDeclare, "none")

	fmt.Printf("\nClass owner index (%d classes):\n", result.Index.Len())
	for _, className := range result.Index.ClassNames() {
		owners := result.Index.Owners(className)
		names := make([]string, 0, owners.Len())
		for _, id := range owners.Values() {
			names = append(names, id.String())
		}
		marker := " "
		if owners.Len() > 1 {
			marker = "🟡"
		}
		fmt.Printf(" %s %s → %s\n", marker, className, strings.Join(names, ", "))
	}

	fmt.Printf("\nUsed classes (%d):\n", len(result.Usage))
	for _, className := range sortedClasses(result.Usage) {
		fmt.Printf("   %s\n", className)
	}
}

func sortedClasses(classes map[string]struct{}) []string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
