package conformance

import (
	"fmt"
	"slices"
	"strings"

	"hdlc/binding"
	"hdlc/diag"
	"hdlc/elab"
	"hdlc/syntax"
)

// TestResult is the outcome of running a single case
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance cases. Every case elaborates its own
// design so cases never see each other's writes.
type Runner struct {
	// Match restricts the run to cases whose "file/name" contains it
	Match string
}

// NewRunner creates a test runner that runs every case
func NewRunner() *Runner {
	return &Runner{}
}

// parseFlags maps suite flag names to bind flags
func parseFlags(names []string) (binding.Flags, error) {
	var flags binding.Flags
	for _, name := range names {
		switch name {
		case "non_procedural":
			flags |= binding.NonProcedural
		case "assertion":
			flags |= binding.AssertionExpr
		case "unevaluated":
			flags |= binding.UnevaluatedBranch
		default:
			return 0, fmt.Errorf("unknown flag %q", name)
		}
	}
	return flags, nil
}

// outcome is what a case actually produced
type outcome struct {
	value  string
	typ    string
	diags  diag.Diagnostics
	bad    bool
	stored bool
}

// Run executes a single case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{Test: test, Skipped: true, SkipReason: reason}
	}
	if r.Match != "" && !strings.Contains(test.File+"/"+test.Test.Name, r.Match) {
		return TestResult{Test: test, Skipped: true, SkipReason: "filtered"}
	}
	fail := func(err error) TestResult {
		return TestResult{Test: test, Error: err}
	}

	tc := test.Test
	flags, err := parseFlags(tc.Flags)
	if err != nil {
		return fail(err)
	}

	df := elab.DeclFile{Source: test.Suite.Decls + tc.Decls, Init: test.Suite.Init}
	d, err := df.Elaborate()
	if err != nil {
		return fail(fmt.Errorf("elaborate: %w", err))
	}

	var out outcome
	if tc.Assign != "" {
		out, err = runAssign(d, flags, tc)
	} else {
		out, err = runExpr(d, flags, tc.Expr)
	}
	if err != nil {
		return fail(err)
	}

	if err := checkExpectation(tc.Expect, out); err != nil {
		return fail(err)
	}
	return TestResult{Test: test, Passed: true}
}

func runExpr(d *elab.Design, flags binding.Flags, text string) (outcome, error) {
	expr, err := syntax.ParseExpr(text)
	if err != nil {
		return outcome{}, fmt.Errorf("parse error: %w", err)
	}
	bc := d.Context(d.Root, flags)
	e := binding.Bind(bc, expr)
	out := outcome{typ: e.Type().String(), diags: bc.Diags(), bad: e.Bad()}
	if e.Bad() {
		out.value = binding.DescribeValue(nil)
		return out, nil
	}
	ctx := d.EvalContext()
	out.value = binding.DescribeValue(e.Eval(ctx))
	out.diags = append(out.diags, ctx.Diags()...)
	return out, nil
}

func runAssign(d *elab.Design, flags binding.Flags, tc TestCase) (outcome, error) {
	stmt, err := syntax.ParseAssignment(tc.Assign)
	if err != nil {
		return outcome{}, fmt.Errorf("parse error: %w", err)
	}
	diags, stored := d.Execute(d.Root, flags, stmt)
	out := outcome{diags: diags, stored: stored}
	if tc.Read == "" {
		out.value = binding.DescribeValue(nil)
		return out, nil
	}

	read, err := runExpr(d, 0, tc.Read)
	if err != nil {
		return outcome{}, fmt.Errorf("read: %w", err)
	}
	if len(read.diags) > 0 {
		return outcome{}, fmt.Errorf("read %q: %s", tc.Read, read.diags[0])
	}
	out.value = read.value
	out.typ = read.typ
	return out, nil
}

// RunAll executes all loaded cases
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			stats.Skipped++
		case r.Passed:
			stats.Passed++
		default:
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation compares what a case produced with what it expects
func checkExpectation(expect Expectation, out outcome) error {
	if expect.Bad != out.bad {
		if out.bad {
			return fmt.Errorf("binding failed: %v", codeNames(out.diags))
		}
		return fmt.Errorf("expected binding to fail")
	}

	want := expect.Diags
	if want == nil {
		want = []string{}
	}
	if got := codeNames(out.diags); !slices.Equal(got, want) {
		return fmt.Errorf("expected diagnostics %v, got %v", want, got)
	}
	for _, name := range want {
		if _, ok := diag.CodeFromString(name); !ok {
			return fmt.Errorf("unknown diagnostic code: %s", name)
		}
	}

	if expect.Type != "" && expect.Type != out.typ {
		return fmt.Errorf("expected type %s, got %s", expect.Type, out.typ)
	}
	if expect.Value != nil && *expect.Value != out.value {
		return fmt.Errorf("expected %s, got %s", *expect.Value, out.value)
	}
	if expect.Stored != nil && *expect.Stored != out.stored {
		return fmt.Errorf("expected stored=%v, got %v", *expect.Stored, out.stored)
	}
	return nil
}

func codeNames(ds diag.Diagnostics) []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Code.String()
	}
	return names
}
