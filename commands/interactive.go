package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-event-timeline/internal/application/timeline"
	"github.com/penwyp/go-event-timeline/internal/config"
	"github.com/penwyp/go-event-timeline/internal/data/watcher"
	"github.com/penwyp/go-event-timeline/internal/presentation/formatter"
	"github.com/penwyp/go-event-timeline/internal/presentation/interaction"
	"github.com/penwyp/go-event-timeline/internal/util"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive <file>",
	Aliases: []string{"ui"},
	Short:   "Adjust the timeline with the keyboard",
	Long: `Shows the timeline in the terminal and redraws it on every key press:

  u          cycle bucket unit (minutes, hours, days)
  k          cycle chart kind (bars, dots, line)
  + / ->     shift one hour later      - / <-   one hour earlier
  ] / up     wider bars                [ / down narrower bars
  r          reload the file           e        export PNG
  q / Esc    quit

The file is also reloaded automatically when it changes on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctrl, err := newController(cfg, args[0])
	if err != nil {
		return err
	}

	keys, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("interactive mode needs a terminal: %w", err)
	}
	defer keys.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var changes <-chan struct{}
	if fw, err := watcher.NewFileWatcher(args[0], watcher.DefaultDebounce); err != nil {
		util.LogWarn("File watching disabled", util.F("error", err))
	} else {
		defer fw.Close()
		go fw.Run(ctx)
		changes = fw.Changes()
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprint(stdout, util.HideCursor)
	defer fmt.Fprint(stdout, util.ShowCursor+"\r\n")

	session := &interactiveSession{ctrl: ctrl, out: cfg.Output, w: stdout}
	return session.run(ctx, keys.Events(), changes)
}

// interactiveSession is the single goroutine that owns the controller while
// the keyboard UI runs.
type interactiveSession struct {
	ctrl   *timeline.Controller
	out    config.OutputSettings
	w      io.Writer
	width  int // terminal cells, 0 = detect
	status string
	help   bool
}

func (s *interactiveSession) run(ctx context.Context, keys <-chan interaction.KeyEvent, changes <-chan struct{}) error {
	s.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if s.handle(interaction.ActionFor(ev)) {
				return nil
			}
			s.draw()

		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			s.setResult("reloaded", s.ctrl.Reload())
			s.draw()
		}
	}
}

// handle applies one action and reports whether the session should end.
func (s *interactiveSession) handle(action interaction.Action) bool {
	switch action {
	case interaction.ActionQuit:
		return true
	case interaction.ActionCycleUnit:
		s.setResult("unit changed", s.ctrl.CycleUnit())
	case interaction.ActionCycleKind:
		s.setResult("kind changed", s.ctrl.CycleKind())
	case interaction.ActionShiftUp:
		s.setResult("shift changed", s.ctrl.NudgeShift(1))
	case interaction.ActionShiftDown:
		s.setResult("shift changed", s.ctrl.NudgeShift(-1))
	case interaction.ActionWidthUp:
		s.setResult("bar width changed", s.ctrl.NudgeBarWidth(1))
	case interaction.ActionWidthDown:
		s.setResult("bar width changed", s.ctrl.NudgeBarWidth(-1))
	case interaction.ActionReload:
		s.setResult("reloaded", s.ctrl.Reload())
	case interaction.ActionExport:
		s.export()
	case interaction.ActionHelp:
		s.help = !s.help
	}
	return false
}

func (s *interactiveSession) export() {
	out := s.out
	out.Format = formatter.FormatPNG
	if out.Path == "" || !strings.HasSuffix(strings.ToLower(out.Path), ".png") {
		out.Path = defaultPNGPath
	}

	if err := render(s.ctrl, out, io.Discard, io.Discard); err != nil {
		s.setResult("", err)
		return
	}
	s.status = "exported " + out.Path
}

func (s *interactiveSession) setResult(ok string, err error) {
	if err != nil {
		s.status = util.FormatError(describe(err).Error())
		return
	}
	s.status = ok
}

func (s *interactiveSession) draw() {
	var sb strings.Builder
	sb.WriteString(util.ClearScreen + util.MoveCursorHome)

	spec, err := s.ctrl.Chart()
	if err != nil {
		sb.WriteString(util.FormatError(describe(err).Error()) + "\n")
	} else {
		sb.WriteString(formatter.NewTerminalFormatter(nil, s.width).Render(spec))
	}

	sb.WriteString("\n" + s.ctrl.Status() + "\n")
	if s.status != "" {
		sb.WriteString(s.status + "\n")
	}
	if s.help {
		sb.WriteString(interaction.HelpText + "\n")
	} else {
		sb.WriteString("h help  q quit\n")
	}

	// raw mode needs explicit carriage returns
	fmt.Fprint(s.w, strings.ReplaceAll(sb.String(), "\n", "\r\n"))
}
