package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdlc/binding"
	"hdlc/diag"
	"hdlc/syntax"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Bind and evaluate expressions",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEval,
	}
	cmd.Flags().Bool("type", false, "Print the bound type of each expression")
	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	d, err := cfg.setup(cmd)
	if err != nil {
		return err
	}
	showType, _ := cmd.Flags().GetBool("type")

	failed := 0
	for _, text := range args {
		expr, err := syntax.ParseExpr(text)
		if err != nil {
			return fmt.Errorf("%q: %w", text, err)
		}

		bc := d.Context(d.Root, cfg.bindFlags())
		e := binding.Bind(bc, expr)
		diags := bc.Diags()
		var out string
		if !e.Bad() {
			ctx := d.EvalContext()
			out = binding.DescribeValue(e.Eval(ctx))
			diags = append(diags, ctx.Diags()...)
		}

		diag.Render(cmd.ErrOrStderr(), "<expr>", text, diags)
		if diags.HasErrors() || e.Bad() {
			failed++
			continue
		}
		if showType {
			fmt.Fprintf(cmd.OutOrStdout(), "%s : %s => %s\n", text, e.Type(), out)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s => %s\n", text, out)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(args))
	}
	return nil
}
