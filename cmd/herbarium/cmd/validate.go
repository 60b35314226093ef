package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openherb/herbarium/pkg/errors"
	"github.com/openherb/herbarium/pkg/validate"
)

var (
	validateSlug   string
	validateReport string
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate corpus structure and cross-references",
	Long: `Validate every corpus document against the structural rules of the
knowledge base: required fields per document role, language-map shape
and minimum translations, system-scoping of content fields, and
resolution of profile and classification references.

Warnings are advisory; errors make the command exit non-zero.

Examples:
  herbarium validate                     # Validate the whole corpus
  herbarium validate --slug "gins*"      # Validate matching documents
  herbarium validate --report out.json   # Persist machine-readable findings`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateSlug, "slug", "", "Only validate documents matching this glob")
	validateCmd.Flags().StringVar(&validateReport, "report", "", "Write a JSON report to this path")
}

func runValidate(_ *cobra.Command, _ []string) error {
	c, err := loadCorpus(validateSlug)
	if err != nil {
		return err
	}

	rep := validate.Corpus(c)

	for _, failure := range rep.ParseFailures {
		fmt.Printf("✗ parse failure: %s\n", failure)
	}
	for _, result := range rep.Results {
		if len(result.Issues) == 0 {
			if globalFlags.Verbose {
				fmt.Printf("✓ %s\n", result.Path)
			}
			continue
		}
		if globalFlags.Quiet && result.ErrorCount() == 0 {
			continue
		}
		fmt.Printf("%s (%s)\n", result.Path, result.ID)
		for _, iss := range result.Issues {
			if globalFlags.Quiet && iss.Severity != validate.Error {
				continue
			}
			fmt.Printf("  %s: %s %s", iss.Level, iss.Kind, iss.Field)
			if iss.Detail != "" {
				fmt.Printf(" (%s)", iss.Detail)
			}
			fmt.Println()
		}
	}

	fmt.Printf("\n%d documents, %d passed, %d errors, %d warnings\n",
		rep.Documents(), rep.Passed(), rep.Errors(), rep.Warnings())

	if validateReport != "" {
		if err := writeReport(validateReport, rep); err != nil {
			return err
		}
	}

	if rep.Failed() {
		return &errors.ValidationError{
			Field:   "corpus",
			Message: fmt.Sprintf("%d blocking errors", rep.Errors()),
		}
	}
	return nil
}
