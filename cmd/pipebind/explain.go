package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/driver"
	"pipebind/internal/target"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code|category]",
	Short: "Describe a diagnostic code or target category",
	Long: `Explain prints what a diagnostic code means. For BND codes (or category names
such as StringLiteral) it renders the full message for a sample target.
Without arguments it lists every binding target category.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			listCategories(cmd.OutOrStdout())
			return nil
		}
		return explain(cmd.OutOrStdout(), args[0])
	},
}

func listCategories(w io.Writer) {
	for _, c := range target.Classifications() {
		category := target.Category(c)
		if category == "" {
			category = "anything else"
		}
		fmt.Fprintf(w, "%s  %-16s %s\n", c.Code().ID(), c.String(), category)
	}
}

func explain(w io.Writer, arg string) error {
	cls, ok := target.ParseClassification(arg)
	if !ok {
		code, found := diag.ParseCode(arg)
		if !found {
			return fmt.Errorf("unknown code or category %q", arg)
		}
		if cls, ok = target.FromCode(code); !ok {
			fmt.Fprintf(w, "%s: %s\n", code.ID(), code.Title())
			return nil
		}
	}

	code := cls.Code()
	fmt.Fprintf(w, "%s: %s\n", code.ID(), code.Title())
	fmt.Fprintf(w, "category: %s\n\n", cls.String())
	d := target.Render(cls, sampleTarget(cls))
	fmt.Fprintf(w, "example:\n%s\n", indent(d.Message, "  "))
	return nil
}

// sampleTarget is the target node of the category's counter-example.
func sampleTarget(cls target.Classification) ast.Node {
	counter := target.Render(cls, &ast.Bad{}).CounterExample
	if counter == "" {
		// Unknown: любой не перечисленный вид узла
		node, _ := driver.ParseExpr("%{id: 1}")
		return node
	}
	node, _ := driver.ParseExpr(counter)
	if call, ok := node.(*ast.Call); ok && len(call.Args) == 2 {
		return call.Args[1]
	}
	return node
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
