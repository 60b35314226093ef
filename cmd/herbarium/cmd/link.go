package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openherb/herbarium/pkg/constants"
	"github.com/openherb/herbarium/pkg/corpus"
	"github.com/openherb/herbarium/pkg/linker"
	"github.com/openherb/herbarium/pkg/normalize"
)

var (
	linkSlug    string
	linkReport  string
	linkDelay   time.Duration
	linkTimeout time.Duration
)

// linkCmd represents the link command.
var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link plants to external authorities",
	Long: `Link plant documents to external authority records by normalized
scientific name. Matches below the confidence threshold are reported
but never written. Plants already linked to the service are skipped
without any network call, so re-running is cheap and idempotent.

Examples:
  herbarium link gbif                     # Link all plants to GBIF
  herbarium link wikidata --slug "dang*"  # Link matching plants
  herbarium link gbif --dry-run           # Show what would change`,
}

// linkGBIFCmd links plants against the GBIF backbone taxonomy.
var linkGBIFCmd = &cobra.Command{
	Use:   "gbif",
	Short: "Link plants to the GBIF backbone taxonomy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLink(cmd, linker.NewGBIF(linkTimeout))
	},
}

// linkWikidataCmd links plants against Wikidata entities.
var linkWikidataCmd = &cobra.Command{
	Use:   "wikidata",
	Short: "Link plants to Wikidata entities",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLink(cmd, linker.NewWikidata(linkTimeout))
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.AddCommand(linkGBIFCmd)
	linkCmd.AddCommand(linkWikidataCmd)

	linkCmd.PersistentFlags().StringVar(&linkSlug, "slug", "", "Only link plants matching this glob")
	linkCmd.PersistentFlags().StringVar(&linkReport, "report", "", "Write a JSON report to this path")
	linkCmd.PersistentFlags().DurationVar(&linkDelay, "delay", constants.LinkDelay,
		"Minimum pause between external calls")
	linkCmd.PersistentFlags().DurationVar(&linkTimeout, "timeout", constants.MatchTimeout,
		"Per-request timeout for external calls")
}

// plantResult pairs a linking outcome with the plant it applies to.
type plantResult struct {
	Plant string `json:"plant"`
	linker.Result
}

func runLink(cmd *cobra.Command, svc linker.Service) error {
	c, err := loadCorpus(linkSlug, corpus.WithRoles(corpus.RolePlant))
	if err != nil {
		return err
	}

	l := linker.New(svc, linker.Config{
		Timeout: linkTimeout,
		Delay:   linkDelay,
	})
	norm := normalize.Default()

	var (
		results []plantResult
		tally   = map[linker.Status]int{}
	)

	for _, f := range c.Files {
		plant, ok := f.Doc.(*corpus.Plant)
		if !ok {
			continue
		}

		res := l.Link(cmd.Context(), plant, norm.Normalize(plant.ScientificName))
		tally[res.Status]++
		results = append(results, plantResult{Plant: plant.ID, Result: res})

		switch res.Status {
		case linker.StatusLinked:
			fmt.Printf("✓ %s → %s (%d)\n", plant.ID, res.URL, res.Confidence)
			if !globalFlags.DryRun {
				if err := c.Save(f); err != nil {
					return err
				}
			}
		case linker.StatusLowConfidence:
			fmt.Printf("? %s best candidate %s below threshold (%d)\n",
				plant.ID, res.ExternalID, res.Confidence)
		default:
			if globalFlags.Verbose {
				fmt.Printf("- %s %s\n", plant.ID, res.Status)
			}
		}

		if err := cmd.Context().Err(); err != nil {
			return err
		}
	}

	fmt.Printf("\n%s: %d linked, %d already linked, %d low confidence, %d not found, %d skipped\n",
		svc.Name(),
		tally[linker.StatusLinked],
		tally[linker.StatusAlreadyLinked],
		tally[linker.StatusLowConfidence],
		tally[linker.StatusNotFound],
		tally[linker.StatusSkipped])
	if globalFlags.DryRun && tally[linker.StatusLinked] > 0 {
		fmt.Println("Dry run: no files were written")
	}

	if linkReport != "" {
		return writeReport(linkReport, results)
	}
	return nil
}
