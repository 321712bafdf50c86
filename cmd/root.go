package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"filesize/internal/config"
	"filesize/internal/sizer"
	"filesize/internal/tui"
	"filesize/pkg/bytefmt"
)

// version is injected at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "filesize <path>...",
	Short: "Calculate file and directory sizes",
	Long: `filesize reports the size of files and directories, with optional
recursive traversal, forced display units, and a raw byte mode for scripts.`,
	Example: `  filesize file.txt              # size with an automatic unit
  filesize -u mb file.txt        # force megabytes
  filesize -c file.txt           # raw byte count only
  filesize -r directory/         # include all subdirectories
  filesize file.txt logs/ /tmp   # several paths at once`,
	Version:       version,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	opts := sizer.Options{
		Recursive: viper.GetBool("recursive"),
		Clean:     viper.GetBool("clean"),
	}
	if token := viper.GetString("unit"); token != "" {
		unit, err := bytefmt.ParseUnit(token)
		if err != nil {
			return err
		}
		opts.Unit = &unit
	}

	var updates chan sizer.Progress
	uiDone := make(chan struct{})
	if viper.GetBool("progress") {
		updates = make(chan sizer.Progress, 64)
		program := tea.NewProgram(
			tui.NewModel(updates, len(args)),
			tea.WithOutput(os.Stderr), // stdout carries only the report
			tea.WithInput(nil),        // leave interrupts to the shell
		)
		go func() {
			_, _ = program.Run()
			// Drain so the scan never blocks if the display exits early.
			for range updates {
			}
			close(uiDone)
		}()
	} else {
		close(uiDone)
	}

	summary, outcomes, err := sizer.Run(cmd.Context(), args, opts, updates)
	if updates != nil {
		close(updates)
	}
	<-uiDone
	if err != nil {
		return err
	}

	slog.Debug("run complete",
		"paths", summary.Paths,
		"failed", summary.Failed,
		"files", summary.Files,
		"size", humanize.IBytes(uint64(summary.Bytes)),
	)

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			fmt.Fprintln(os.Stdout, errLineStyle.Render(outcome.Line))
			continue
		}
		fmt.Fprintln(os.Stdout, outcome.Line)
	}

	if viper.GetBool("progress") {
		rows := []tui.SummaryRow{
			{Label: "Paths measured", Value: fmt.Sprintf("%d", summary.Paths)},
			{Label: "Paths failed", Value: fmt.Sprintf("%d", summary.Failed)},
			{Label: "Files counted", Value: fmt.Sprintf("%d", summary.Files)},
			{Label: "Total size", Value: humanize.IBytes(uint64(summary.Bytes))},
		}
		fmt.Fprintln(os.Stderr, tui.RenderSummary(rows))
	}

	if viper.GetBool("copy") {
		if err := clipboard.WriteAll(sizer.Text(outcomes)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not copy the report to the clipboard: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Report copied to clipboard.")
		}
	}

	return nil
}

var errLineStyle = lipgloss.NewStyle().Foreground(tui.ColorWarn)

// Execute runs the root command, mapping an interrupt to the conventional
// 130 exit status and every other failure to 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.BoolP("clean", "c", false, "print raw sizes in bytes with no formatting")
	flags.BoolP("recursive", "r", false, "include all subdirectories when sizing a directory")
	flags.StringP("unit", "u", "", "force the display unit (b, kb, mb, gb, tb)")
	flags.Bool("progress", false, "show live progress while scanning")
	flags.Bool("copy", false, "copy the report to the system clipboard")
	flags.Bool("verbose", false, "enable debug logging")
	flags.BoolP("version", "v", false, "print the version and exit")

	_ = viper.BindPFlag("clean", flags.Lookup("clean"))
	_ = viper.BindPFlag("recursive", flags.Lookup("recursive"))
	_ = viper.BindPFlag("unit", flags.Lookup("unit"))
	_ = viper.BindPFlag("progress", flags.Lookup("progress"))
	_ = viper.BindPFlag("copy", flags.Lookup("copy"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

func initConfig() {
	cfgFile := config.Init()
	if viper.GetBool("verbose") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if cfgFile != "" {
		slog.Debug("using config file", "path", cfgFile)
	}
}
