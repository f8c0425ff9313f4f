// Package main is the entry point for the emberquest CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "emberquest",
	Short: "EmberQuest text adventure",
	Long:  `EmberQuest is a turn-based text RPG: explore the world, fight monsters, learn skills, and pick a class.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
}
