package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-event-timeline/internal/application/timeline"
	"github.com/penwyp/go-event-timeline/internal/config"
	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/penwyp/go-event-timeline/internal/data/cache"
	"github.com/penwyp/go-event-timeline/internal/data/parser"
	"github.com/penwyp/go-event-timeline/internal/presentation/formatter"
	"github.com/penwyp/go-event-timeline/internal/util"
)

var (
	// Logging related
	debug bool

	// Configuration file
	configPath string

	// Timeline settings
	unit     string
	kind     string
	shift    float64
	barWidth float64

	// Output related
	outputFormat string
	outPath      string
	imageWidth   int
	imageHeight  int
	noCaption    bool

	rootCmd = &cobra.Command{
		Use:   "go-event-timeline <file> [flags]",
		Short: "Plot a timeline of events from a timestamp log",
		Long: `go-event-timeline reads a text file with one timestamp per line, counts the
events per minute, hour or day and draws the result as a timeline chart.

Examples:
  go-event-timeline events.log                              # Bar chart in the terminal
  go-event-timeline events.log --unit hours --kind line     # Hourly line chart
  go-event-timeline events.log --shift 2                    # Correct a clock that is 2 hours behind
  go-event-timeline events.log -o png --out timeline.png    # Export a PNG image
  go-event-timeline events.log -o csv > counts.csv          # Export bucket counts
  go-event-timeline watch events.log                        # Redraw whenever the file changes
  go-event-timeline interactive events.log                  # Adjust the chart with the keyboard`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRender,
	}
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Draw the timeline once (same as running without a command)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

const defaultPNGPath = "timeline.png"

func init() {
	// Configuration
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile,
		"YAML configuration file")

	// Timeline settings
	rootCmd.PersistentFlags().StringVarP(&unit, "unit", "u", "minutes",
		"Bucket unit (minutes, hours, days)")
	rootCmd.PersistentFlags().StringVarP(&kind, "kind", "k", "bars",
		"Chart kind (bars, dots, line)")
	rootCmd.PersistentFlags().Float64VarP(&shift, "shift", "s", 0,
		"Time shift in hours applied to every event (-24 to 24, fractions allowed)")
	rootCmd.PersistentFlags().Float64VarP(&barWidth, "bar-width", "w", 0.02,
		"Bar width in days for bar charts (0.01 to 0.5)")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatter.FormatTerminal,
		"Output format (terminal, png, json, csv, table, summary)")
	rootCmd.PersistentFlags().StringVar(&outPath, "out", "",
		"Output file (default stdout, timeline.png for png)")
	rootCmd.PersistentFlags().IntVar(&imageWidth, "width", formatter.DefaultPNGWidth,
		"PNG width in pixels")
	rootCmd.PersistentFlags().IntVar(&imageHeight, "height", formatter.DefaultPNGHeight,
		"PNG height in pixels")
	rootCmd.PersistentFlags().BoolVar(&noCaption, "no-caption", false,
		"Do not stamp the settings caption on PNG output")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.AddCommand(renderCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctrl, err := newController(cfg, args[0])
	if err != nil {
		return err
	}
	return render(ctrl, cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// loadSettings layers defaults, the YAML file and changed flags, then sets
// up logging.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(configPath, flags.Changed("config"))
	if err != nil {
		return cfg, err
	}

	if flags.Changed("unit") {
		cfg.Timeline.Unit = unit
	}
	if flags.Changed("kind") {
		cfg.Timeline.Kind = kind
	}
	if flags.Changed("shift") {
		cfg.Timeline.ShiftHours = shift
	}
	if flags.Changed("bar-width") {
		cfg.Timeline.BarWidth = barWidth
	}
	if flags.Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("out") {
		cfg.Output.Path = outPath
	}
	if flags.Changed("width") {
		cfg.Output.Width = imageWidth
	}
	if flags.Changed("height") {
		cfg.Output.Height = imageHeight
	}
	if noCaption {
		cfg.Output.Caption = false
	}
	if debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logFile := config.ExpandPath(cfg.Log.File)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return cfg, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(cfg.Log.Level, logFile, debug); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newController(cfg config.Config, path string) (*timeline.Controller, error) {
	tc, err := cfg.TimelineConfig()
	if err != nil {
		return nil, err
	}
	// reloads of an unchanged file skip parsing
	events := cache.NewEventCache(parser.ParseFile)
	ctrl := timeline.NewControllerWithLoader(tc, events.Load)
	if err := ctrl.Load(path); err != nil {
		return nil, describe(err)
	}
	return ctrl, nil
}

// render draws the controller's chart. Files are only written once the
// whole chart has been produced, so a failure never leaves a partial image.
func render(ctrl *timeline.Controller, out config.OutputSettings, stdout, stderr io.Writer) error {
	var buf bytes.Buffer
	f, err := formatter.New(out.Format, &buf, formatterOptions(ctrl, out))
	if err != nil {
		return err
	}
	if err := ctrl.Draw(f); err != nil {
		return describe(err)
	}

	path := outputPath(out)
	if path == "" || path == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	util.LogInfo("Chart written", util.F("path", path), util.F("format", out.Format))
	fmt.Fprintf(stderr, "Chart written to %s\n", path)
	return nil
}

func formatterOptions(ctrl *timeline.Controller, out config.OutputSettings) formatter.Options {
	opts := formatter.Options{Width: out.Width, Height: out.Height}
	if !formatter.IsBinary(out.Format) {
		// width means terminal cells for text output
		opts.Width = 0
	}
	if out.Caption {
		opts.Caption = fmt.Sprintf("%s  %s", filepath.Base(ctrl.Path()), ctrl.Status())
	}
	return opts
}

func outputPath(out config.OutputSettings) string {
	if out.Path == "" && formatter.IsBinary(out.Format) {
		return defaultPNGPath
	}
	return out.Path
}

// describe adds guidance to the errors a user can fix.
func describe(err error) error {
	switch {
	case err == nil:
		return nil
	case model.IsUserError(err):
		return fmt.Errorf("cannot draw timeline: %w", err)
	default:
		return err
	}
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
