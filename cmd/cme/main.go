package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose  bool
	addDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "cme",
	Short: "Extract communication models from Bundestag plenary transcripts",
	Long: `cme reads plenary transcripts (protocol XML or open data JSON), finds who
reacted to whom in the transcribed annotations and writes the resulting
communication model as JSON.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every soft miss of the extraction")
	rootCmd.AddCommand(manualCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
