package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pipebind/internal/diag"
	"pipebind/internal/diagfmt"
	"pipebind/internal/driver"
	"pipebind/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file>",
	Short: "Print the syntax tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, maxDiagnostics, err := dumpFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	printDumpDiagnostics(cmd, result.Bag, result.FileSet)

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	default:
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	format, maxDiagnostics, err := dumpFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	printDumpDiagnostics(cmd, result.Bag, result.FileSet)

	switch format {
	case "pretty":
		return diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.AST, result.FileSet)
	default:
		return diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.AST)
	}
}

func dumpFlags(cmd *cobra.Command) (format string, maxDiagnostics int, err error) {
	format, err = cmd.Flags().GetString("format")
	if err != nil {
		return "", 0, fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return "", 0, fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return "", 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return format, maxDiagnostics, nil
}

// printDumpDiagnostics выводит ошибки лексера/парсера в stderr
func printDumpDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	colored, _ := useColor(cmd, os.Stderr)
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{Color: colored, Context: 1})
}
