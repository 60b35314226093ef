package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openherb/herbarium/pkg/translate"
)

var (
	translateSlug   string
	translateReport string
)

// translateCmd represents the translate command.
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Back-fill missing language variants",
	Long: `Back-fill missing language variants on corpus documents. Simplified
Chinese is derived from traditional text by glyph substitution; other
gaps become clearly marked placeholders for a human-review pass.
Authored content is never overwritten, so re-running is a no-op on a
complete corpus.

Examples:
  herbarium translate                   # Fill the whole corpus
  herbarium translate --slug "dang*"    # Fill matching documents
  herbarium translate --dry-run         # Show the gaps without writing`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVar(&translateSlug, "slug", "", "Only fill documents matching this glob")
	translateCmd.Flags().StringVar(&translateReport, "report", "", "Write a JSON report to this path")
}

func runTranslate(_ *cobra.Command, _ []string) error {
	c, err := loadCorpus(translateSlug)
	if err != nil {
		return err
	}

	var (
		all   []translate.Change
		tally = map[translate.ChangeKind]int{}
		files int
	)

	for _, f := range c.Files {
		changes := translate.Fill(f.Doc)
		if len(changes) == 0 {
			continue
		}
		files++
		all = append(all, changes...)
		for _, ch := range changes {
			tally[ch.Kind]++
			if globalFlags.Verbose {
				fmt.Printf("  %s %s[%s] %s\n", ch.DocID, ch.Field, ch.Tag, ch.Kind)
			}
		}
		if !globalFlags.DryRun {
			if err := c.Save(f); err != nil {
				return err
			}
		}
	}

	fmt.Printf("%d documents touched: %d derived, %d copied, %d placeholders\n",
		files,
		tally[translate.Derived],
		tally[translate.Copied],
		tally[translate.Placeholder])
	if globalFlags.DryRun && files > 0 {
		fmt.Println("Dry run: no files were written")
	}

	if translateReport != "" {
		return writeReport(translateReport, all)
	}
	return nil
}
