package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linkedin-content-engine",
	Short: "A CLI for managing the LinkedIn content engine services",
	Long:  `The LinkedIn content engine generates, scores and ranks posts from collected business stories and learns from review feedback.`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
