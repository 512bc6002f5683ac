package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-insight",
	Short: "Query service for face recognition data",
	Long: `Face Insight answers questions about processed camera captures:
which photos contain a known person, which faces are still unidentified,
and which stored captures look like an uploaded photo. Face detection and
embedding extraction happen upstream; this tool only queries the results.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
