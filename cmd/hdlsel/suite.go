package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdlc/conformance"
)

func newSuiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite [DIR]",
		Short: "Run YAML and Markdown conformance suites",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSuite,
	}
	cmd.Flags().String("run", "", "Only run cases whose file/name contains this text")
	return cmd
}

func runSuite(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if _, err := cfg.setup(cmd); err != nil {
		return err
	}

	dir := "conformance/testdata"
	if len(args) == 1 {
		dir = args[0]
	}
	tests, err := conformance.LoadDir(dir)
	if err != nil {
		return err
	}

	runner := conformance.NewRunner()
	runner.Match, _ = cmd.Flags().GetString("run")
	results := runner.RunAll(tests)

	out := cmd.OutOrStdout()
	for _, r := range results {
		if !r.Passed && !r.Skipped {
			fmt.Fprintf(out, "FAIL %s/%s: %v\n", r.Test.File, r.Test.Test.Name, r.Error)
		}
	}
	stats := conformance.ComputeStats(results)
	fmt.Fprintln(out, conformance.FormatStats(stats))
	if stats.Failed > 0 {
		return fmt.Errorf("%d cases failed", stats.Failed)
	}
	return nil
}
