package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pipebind/internal/ast"
	"pipebind/internal/diagfmt"
	"pipebind/internal/driver"
	"pipebind/internal/target"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] <expr>",
	Short: "Validate a single binding target expression",
	Long: `Classify parses one expression as the second argument of assign_to/2 would
see it. A bare variable name is accepted; anything else is classified and
explained.`,
	Example: `  pipebind classify '"user"'
  pipebind classify --bound user,acc user`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	classifyCmd.Flags().StringSlice("bound", nil, "names already bound in the enclosing scope")
}

type classifyOutput struct {
	Expr           string `json:"expr"`
	Accepted       bool   `json:"accepted"`
	Name           string `json:"name,omitempty"`
	Context        string `json:"context,omitempty"`
	Strategy       string `json:"strategy,omitempty"`
	Classification string `json:"classification,omitempty"`
	Code           string `json:"code,omitempty"`
	Category       string `json:"category,omitempty"`
	Message        string `json:"message,omitempty"`
	CorrectedUsage string `json:"corrected_usage,omitempty"`
	CounterExample string `json:"counter_example,omitempty"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	bound, err := cmd.Flags().GetStringSlice("bound")
	if err != nil {
		return fmt.Errorf("failed to get bound flag: %w", err)
	}

	node, parsed := driver.ParseExpr(args[0])
	if parsed.Bag.HasErrors() {
		colored, _ := useColor(cmd, os.Stderr)
		diagfmt.Pretty(cmd.ErrOrStderr(), parsed.Bag, parsed.FileSet, diagfmt.PrettyOpts{Color: colored})
		return errFindings
	}

	out := classifyExpr(node, args[0], bound, cmd.Flags().Changed("bound"))
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	writeClassifyPretty(cmd.OutOrStdout(), out)
	if !out.Accepted {
		return errFindings
	}
	return nil
}

// classifyExpr runs Validate, then either the strategy lookup or Classify and Render.
func classifyExpr(node ast.Node, expr string, bound []string, withStrategy bool) classifyOutput {
	out := classifyOutput{Expr: expr}
	res := target.Validate(node)
	if res.OK() {
		out.Accepted = true
		out.Name = res.Ident.Name
		out.Context = res.Ident.Context
		if withStrategy {
			names := make([]string, 0, len(bound))
			for _, b := range bound {
				if b = strings.TrimSpace(b); b != "" {
					names = append(names, b)
				}
			}
			out.Strategy = target.StrategyFor(res.Ident, target.NewScope(names...)).String()
		}
		return out
	}
	cls, d := target.ClassifyAndRender(res.Rejected)
	out.Classification = cls.String()
	out.Code = cls.Code().ID()
	out.Category = target.Category(cls)
	out.Message = d.Message
	out.CorrectedUsage = d.CorrectedUsage
	out.CounterExample = d.CounterExample
	return out
}

func writeClassifyPretty(w io.Writer, out classifyOutput) {
	if out.Accepted {
		fmt.Fprintf(w, "ok: `%s` is a valid binding target\n", out.Name)
		if out.Strategy != "" {
			fmt.Fprintf(w, "strategy: %s\n", out.Strategy)
		}
		return
	}
	fmt.Fprintf(w, "%s %s\n", out.Code, out.Classification)
	fmt.Fprintln(w, out.Message)
}
