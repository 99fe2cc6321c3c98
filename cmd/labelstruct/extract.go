package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct"
	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/output"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Preview the import rows read from a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	result := labelstruct.Extract(inputPath, extractOptions())
	if result.Fallback {
		fmt.Fprintf(os.Stderr, "warning: %s; showing fallback row\n", result.Warning)
	}

	return writeOutput(func(w io.Writer) error {
		return output.WriteJSON(w, result, pretty)
	})
}
