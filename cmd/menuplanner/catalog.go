// cmd/menuplanner/catalog.go
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"menu-planner/internal/models"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show or edit the dish lists",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every category with its dishes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		planner, closeDB, err := openPlanner()
		if err != nil {
			return err
		}
		defer closeDB()

		catalog, err := planner.Catalog(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range models.AllCategories {
			fmt.Fprintf(out, "%s (%s)\n", c.Label(), c)
			for _, dish := range catalog[c] {
				fmt.Fprintf(out, "  %s\n", dish)
			}
		}
		return nil
	},
}

var catalogSetCmd = &cobra.Command{
	Use:   "set <category> <file|->",
	Short: "Replace a category from a file with one dish per line",
	Long: `Replace a category's dishes. Each line of the file is one dish; blank
lines and repeated names are dropped. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := models.ParseCategory(args[0])
		if err != nil {
			return err
		}
		text, err := readSource(cmd.InOrStdin(), args[1])
		if err != nil {
			return err
		}

		planner, closeDB, err := openPlanner()
		if err != nil {
			return err
		}
		defer closeDB()

		catalog, err := planner.UpdateCategory(cmd.Context(), category, text)
		if err := persistWarning(err); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", category.Label(), strings.Join(catalog[category], ", "))
		return nil
	},
}

func readSource(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read dish list: %w", err)
	}
	return string(data), nil
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd, catalogSetCmd)
}
