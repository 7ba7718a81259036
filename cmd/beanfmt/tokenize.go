package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"beanfmt/internal/diag"
	"beanfmt/internal/diagfmt"
	"beanfmt/internal/lexer"
	"beanfmt/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.bean",
		Short: "Dump the token stream of a ledger file",
		Long:  `Tokenize breaks a ledger file down into the tokens the formatter sees`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	colorMode, err := readColorMode(colorFlag)
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(filePath)
	if err != nil {
		return err
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(fileSet.Get(fileID), diag.BagReporter{Bag: bag})

	if format == "json" {
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	} else {
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, fileSet)
	}
	if err != nil {
		return err
	}

	if bag.Len() > 0 {
		diagFlag, _ := cmd.Root().PersistentFlags().GetString("diagnostics")
		diagKind, err := readDiagFormat(diagFlag)
		if err != nil {
			return err
		}
		bag.Sort()
		var report diagfmt.Report
		printDiagnostics(cmd.ErrOrStderr(), bag, fileSet, diagKind, resolveMode(colorMode, os.Stderr), maxDiagnostics, &report)
		if report.Count > 0 {
			if err := report.Encode(cmd.ErrOrStderr()); err != nil {
				return err
			}
		}
	}
	if bag.HasErrors() {
		return errReported
	}
	return nil
}
