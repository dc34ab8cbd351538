package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	var (
		categoriesFile string
		jsonOutput     bool
		extensionsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the active category table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := ctx.categoryTable(categoriesFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if extensionsOnly {
				if jsonOutput {
					return writeJSON(cmd, table.Extensions())
				}
				fmt.Fprintln(out, strings.Join(table.Extensions(), " "))
				return nil
			}
			if jsonOutput {
				return writeJSON(cmd, table.Rules())
			}

			rules := table.Rules()
			rows := make([][]string, 0, len(rules))
			for _, rule := range rules {
				exts := strings.Join(rule.Extensions, " ")
				if rule.Name == table.CatchAll() {
					exts = "(everything else)"
				}
				rows = append(rows, []string{rule.Name, exts})
			}
			fmt.Fprintln(out, renderTable([]tableColumn{{title: "Category"}, {title: "Extensions"}}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoriesFile, "categories", "", "Category table file (TOML or YAML) overriding the configured table")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print as JSON")
	cmd.Flags().BoolVar(&extensionsOnly, "extensions", false, "List every recognized extension, sorted")
	return cmd
}
