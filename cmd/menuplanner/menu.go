// cmd/menuplanner/menu.go
package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"menu-planner/internal/menu"
	"menu-planner/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's menu, generating it if needed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		planner, closeDB, err := openPlanner()
		if err != nil {
			return err
		}
		defer closeDB()

		entry, err := planner.Today(cmd.Context())
		if err := persistWarning(err); err != nil {
			return err
		}
		return printEntry(cmd.OutOrStdout(), entry)
	},
}

var refreshCmd = &cobra.Command{
	Use:       "refresh [lunch|dinner]",
	Short:     "Pick a new menu for today, or only for one meal",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(models.Lunch), string(models.Dinner)},
	RunE: func(cmd *cobra.Command, args []string) error {
		planner, closeDB, err := openPlanner()
		if err != nil {
			return err
		}
		defer closeDB()

		var entry models.HistoryEntry
		if len(args) == 0 {
			entry, err = planner.RefreshDay(cmd.Context())
		} else {
			slot, perr := models.ParseMealSlot(args[0])
			if perr != nil {
				return perr
			}
			entry, err = planner.RefreshMeal(cmd.Context(), slot)
		}
		if err := persistWarning(err); err != nil {
			return err
		}
		return printEntry(cmd.OutOrStdout(), entry)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the stored menus, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		planner, closeDB, err := openPlanner()
		if err != nil {
			return err
		}
		defer closeDB()

		history, err := planner.History(cmd.Context())
		if err != nil {
			return err
		}
		for i, entry := range history {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err := printEntry(cmd.OutOrStdout(), entry); err != nil {
				return err
			}
		}
		return nil
	},
}

// persistWarning downgrades a failed write to a log line; the computed menu
// is still shown.
func persistWarning(err error) error {
	if errors.Is(err, menu.ErrPersist) {
		logger.Warn("Menu was not saved", zap.Error(err))
		return nil
	}
	return err
}

func printEntry(out io.Writer, entry models.HistoryEntry) error {
	fmt.Fprintln(out, entry.Date)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, slot := range models.AllMealSlots {
		fmt.Fprintf(tw, "%s\t\t\n", slot.Label())
		meal := entry.Menu.Slot(slot)
		for _, c := range models.AllCategories {
			dish := meal[c]
			if dish == "" {
				dish = "—"
			}
			fmt.Fprintf(tw, "  %s\t%s\t\n", c.Label(), dish)
		}
	}
	return tw.Flush()
}
