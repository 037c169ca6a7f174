package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/textdup/textdup/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "textdup",
	Short: "Near-duplicate text detection with MinHash and LSH",
	Long: `textdup detects near-duplicate and related text documents using
MinHash signatures and locality-sensitive hashing, without computing
pairwise comparisons over the whole corpus.

Features:
  • O(n) rolling-hash shingling
  • Unweighted and TF-IDF-weighted MinHash signatures
  • Banded LSH candidate retrieval over flat bucket tables
  • Sub-linear duplicate-pair discovery for large corpora`,
	Version: version.Short(),
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Add main subcommands
	rootCmd.AddCommand(NewDedupCmd())
	rootCmd.AddCommand(NewQueryCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
