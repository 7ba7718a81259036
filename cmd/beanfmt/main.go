package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"beanfmt/internal/version"
)

// errReported means diagnostics were already printed; main only sets the
// exit status.
var errReported = errors.New("reported")

// newRootCmd builds the command tree. The root command itself formats.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "beanfmt [flags] <file>... | -",
		Short: "Canonical formatter for beancount ledgers",
		Long: `beanfmt rewrites beancount ledger files into a canonical layout:
consistent spacing, posting amounts aligned per section, comments and
blank lines kept where they were.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runFormat,
	}
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	addFormatFlags(rootCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("diagnostics", "pretty", "diagnostics output (pretty|short|json)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main runs the root command and exits with status 1 on any failure.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "beanfmt: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
