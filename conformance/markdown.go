package conformance

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages understood in Markdown suites. Outside a test only
// sv and init fences are allowed; they belong to the suite.
const (
	fenceDecls  = "sv"
	fenceInit   = "init"
	fenceExpr   = "expr"
	fenceAssign = "assign"
	fenceRead   = "read"
	fenceFlags  = "flags"
	fenceValue  = "value"
	fenceType   = "type"
	fenceDiags  = "diags"
	fenceBad    = "bad"
	fenceStored = "stored"
)

// ExtractSuite parses a Markdown suite. A level-one heading names the
// suite and each "Test: name" heading starts a case whose fences follow.
func ExtractSuite(markdown string) (*Suite, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	suite := &Suite{}
	var current *TestCase
	flush := func() error {
		if current == nil {
			return nil
		}
		if !current.HasInput() {
			return fmt.Errorf("test '%s' has no expr or assign fence", current.Name)
		}
		suite.Tests = append(suite.Tests, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if name, ok := strings.CutPrefix(heading, "Test: "); ok {
				if err := flush(); err != nil {
					return ast.WalkStop, err
				}
				current = &TestCase{Name: name}
			} else if n.Level == 1 && suite.Name == "" {
				suite.Name = heading
			}

		case *ast.FencedCodeBlock:
			lang := string(n.Language(source))
			content := strings.TrimRight(fenceContent(n, source), "\n")
			line := lineNumber(n, source)
			if lang == "" {
				return ast.WalkContinue, nil
			}

			if current == nil {
				switch lang {
				case fenceDecls:
					suite.Decls += content + "\n"
				case fenceInit:
					suite.Init = append(suite.Init, nonEmptyLines(content)...)
				default:
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, lang)
				}
				return ast.WalkContinue, nil
			}
			if err := applyFence(current, lang, content); err != nil {
				return ast.WalkStop, fmt.Errorf("line %d: %w", line, err)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return suite, nil
}

func applyFence(tc *TestCase, lang, content string) error {
	single := func(dst *string) error {
		if *dst != "" {
			return fmt.Errorf("multiple %s fences in test '%s'", lang, tc.Name)
		}
		*dst = content
		return nil
	}

	switch lang {
	case fenceDecls:
		tc.Decls += content + "\n"
	case fenceExpr:
		return single(&tc.Expr)
	case fenceAssign:
		return single(&tc.Assign)
	case fenceRead:
		return single(&tc.Read)
	case fenceType:
		return single(&tc.Expect.Type)
	case fenceFlags:
		tc.Flags = append(tc.Flags, strings.Fields(content)...)
	case fenceValue:
		if tc.Expect.Value != nil {
			return fmt.Errorf("multiple value fences in test '%s'", tc.Name)
		}
		v := content
		tc.Expect.Value = &v
	case fenceDiags:
		tc.Expect.Diags = append(tc.Expect.Diags, nonEmptyLines(content)...)
	case fenceBad:
		tc.Expect.Bad = true
	case fenceStored:
		b, err := strconv.ParseBool(strings.TrimSpace(content))
		if err != nil {
			return fmt.Errorf("stored fence in test '%s': %w", tc.Name, err)
		}
		tc.Expect.Stored = &b
	default:
		return fmt.Errorf("unknown fence language '%s' in test '%s'", lang, tc.Name)
	}
	return nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// lineNumber returns the 1-based line of the node's first content line
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	if start > len(source) {
		start = len(source)
	}
	return 1 + bytes.Count(source[:start], []byte("\n"))
}
