package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openherb/herbarium/pkg/index"
)

var indexOut string

// indexCmd represents the index command.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build denormalized index artifacts",
	Long: `Build the denormalized index artifacts the site consumes: flat plant
and profile summaries plus a merged herbs view joining each system
profile to its plant. Profiles whose plant reference does not resolve
are reported as orphans, never silently dropped.

Examples:
  herbarium index                  # Write artifacts under index/
  herbarium index --out site/data  # Write artifacts elsewhere
  herbarium index --dry-run        # Print counts without writing`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&indexOut, "out", "index", "Output directory for generated artifacts")
}

func runIndex(_ *cobra.Command, _ []string) error {
	c, err := loadCorpus("")
	if err != nil {
		return err
	}

	idx := index.Build(c)

	fmt.Printf("%d herbs (%d with profiles, %d plant-only), %d profiles, %d orphans\n",
		len(idx.Herbs), idx.WithProfiles(), idx.PlantOnly(), len(idx.Profiles), len(idx.Orphans))
	for _, orphan := range idx.Orphans {
		fmt.Printf("  orphan: %s → %s\n", orphan.ProfileID, orphan.PlantID)
	}

	if globalFlags.DryRun {
		fmt.Println("Dry run: no artifacts were written")
		return nil
	}

	if err := idx.Write(indexOut); err != nil {
		return err
	}
	fmt.Printf("Artifacts written to %s\n", indexOut)
	return nil
}
