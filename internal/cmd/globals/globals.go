// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import "github.com/spf13/cobra"

// DefaultCorpusDir is where the knowledge base lives relative to the
// repository root.
const DefaultCorpusDir = "corpus"

// Flags holds global common flags across all commands.
type Flags struct {
	Corpus  string
	Quiet   bool
	Verbose bool
	NoColor bool
	DryRun  bool
}

// AddFlags adds common flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.PersistentFlags().StringVarP(&flags.Corpus, "corpus", "C", DefaultCorpusDir,
		"Corpus root directory")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Minimal output")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Verbose output")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"Disable colored output")
	cmd.PersistentFlags().BoolVar(&flags.DryRun, "dry-run", false,
		"Report what would change without writing any file")

	return flags
}

// Parse extracts global flags from the command hierarchy.
// This is useful for subcommands that need to access global flags when
// they weren't passed the flags struct directly.
func Parse(cmd *cobra.Command) (*Flags, error) {
	root := cmd
	for root.Parent() != nil {
		root = root.Parent()
	}

	corpus, _ := root.PersistentFlags().GetString("corpus")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")
	dryRun, _ := root.PersistentFlags().GetBool("dry-run")

	return &Flags{
		Corpus:  corpus,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
		DryRun:  dryRun,
	}, nil
}
