package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdlc/diag"
	"hdlc/syntax"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check STMT...",
		Short: "Check and run assignments in order",
		Long: "Each assignment is checked for assignability and driver conflicts, " +
			"then executed against the declarations. Later statements see earlier writes.",
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().StringSlice("show", nil, "Variables to print after all statements ran")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	d, err := cfg.setup(cmd)
	if err != nil {
		return err
	}

	failed := 0
	for _, text := range args {
		stmt, err := syntax.ParseAssignment(text)
		if err != nil {
			return fmt.Errorf("%q: %w", text, err)
		}
		diags, stored := d.Execute(d.Root, cfg.bindFlags(), stmt)
		diag.Render(cmd.ErrOrStderr(), "<stmt>", text, diags)

		status := "stored"
		switch {
		case diags.HasErrors():
			status = "rejected"
			failed++
		case !stored:
			status = "not stored"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", text, status)
	}

	show, _ := cmd.Flags().GetStringSlice("show")
	for _, name := range show {
		v, ok := d.Value(name)
		if !ok {
			return fmt.Errorf("no variable named %q", name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, v)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statements rejected", failed, len(args))
	}
	return nil
}
