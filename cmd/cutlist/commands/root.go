// Package commands implements the cutlist command-line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cutlist",
	Short: "Sheet cutting layout optimizer",
	Long: `CutList Pro - Sheet Cutting Layout Optimizer

Packs rectangular parts onto stock sheets, minimizing the number of
sheets and material waste. Reads part lists from CSV/XLSX files or
saved projects and exports layouts as PDF, XLSX, DXF, or QR labels.`,
	Run: nil,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(OptimizeCmd)
	rootCmd.AddCommand(CompareCmd)
}
