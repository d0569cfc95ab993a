package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-event-timeline/internal/application/timeline"
	"github.com/penwyp/go-event-timeline/internal/config"
	"github.com/penwyp/go-event-timeline/internal/data/watcher"
	"github.com/penwyp/go-event-timeline/internal/presentation/formatter"
	"github.com/penwyp/go-event-timeline/internal/util"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Redraw the timeline every time the file changes",
	Long: `Draws the timeline like the root command, then keeps watching the file.
Each change reloads the whole file and draws the chart again. A change that
cannot be charted is reported and the previous chart is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctrl, err := newController(cfg, args[0])
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(args[0], watcher.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}
	defer fw.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go fw.Run(ctx)

	return watchLoop(ctx, ctrl, cfg.Output, fw.Changes(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// watchLoop draws once, then once per change signal, until ctx ends or
// changes is closed.
func watchLoop(ctx context.Context, ctrl *timeline.Controller, out config.OutputSettings,
	changes <-chan struct{}, stdout, stderr io.Writer) error {

	redraw := func() {
		if out.Format == formatter.FormatTerminal && out.Path == "" {
			fmt.Fprint(stdout, util.ClearScreen+util.MoveCursorHome)
		}
		if err := render(ctrl, out, stdout, stderr); err != nil {
			fmt.Fprintln(stderr, util.FormatError(err.Error()))
		}
	}

	redraw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := ctrl.Reload(); err != nil {
				fmt.Fprintln(stderr, util.FormatError(describe(err).Error()+" (keeping previous chart)"))
				continue
			}
			redraw()
		}
	}
}
