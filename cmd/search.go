package cmd

import (
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the capture corpus",
	Long: `Query the capture corpus for matches, unknown faces and look-alikes.

Similarity queries compare face embeddings with cosine similarity;
metadata queries only look at detection counts and matched names.`,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
