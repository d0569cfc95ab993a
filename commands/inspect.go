package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-event-timeline/internal/application/timeline"
	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/presentation/formatter"
)

var inspectCmd = &cobra.Command{
	Use:    "inspect <file>",
	Short:  "Debug command to print a summary of the file for every bucket unit",
	Long:   `Loads the file once and prints the summary for minutes, hours and days with the current shift.`,
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctrl, err := newController(cfg, args[0])
	if err != nil {
		return err
	}
	return inspect(ctrl, cmd.OutOrStdout())
}

// inspect prints one summary per unit, restoring the original unit after.
func inspect(ctrl *timeline.Controller, w io.Writer) error {
	original := ctrl.Config().Unit
	defer ctrl.SetUnit(original)

	fmt.Fprintf(w, "File:   %s\nEvents: %d\n", ctrl.Path(), ctrl.EventCount())
	summary := formatter.NewSummaryFormatter(w)
	for _, u := range model.BucketUnits {
		if err := ctrl.SetUnit(u); err != nil {
			return describe(err)
		}
		if err := ctrl.Draw(summary); err != nil {
			return describe(err)
		}
	}
	return nil
}
