package main

import (
	"github.com/spf13/cobra"

	"filesort/internal/export"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return export.WriteJSON(cmd.OutOrStdout(), v)
}
