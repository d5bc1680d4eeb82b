package trace

import (
	"bytes"
	"testing"

	"github.com/nalgeon/be"

	"hdlc/diag"
	"hdlc/types"
)

func TestTracerFilters(t *testing.T) {
	var buf bytes.Buffer
	tr := &Tracer{enabled: true, filters: []string{"q*"}, writer: &buf}

	tr.Select("q[0]", types.NewInt(32, true, 5))
	tr.Select("v[1]", types.NewInt(1, false, 1))
	tr.Store("q[1]", nil)

	be.Equal(t, buf.String(), "[TRACE] SELECT q[0] => 32'sd5\n[TRACE] STORE q[1] <= <no value>\n")
}

func TestTracerDisabled(t *testing.T) {
	var buf bytes.Buffer
	Init(false, nil, &buf)
	defer Init(false, nil, nil)

	Select("a", types.NewStr("x"))
	be.True(t, !IsEnabled())
	be.Equal(t, buf.Len(), 0)
}

func TestTracerDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	Init(true, nil, &buf)
	defer Init(false, nil, nil)

	var ds diag.Diagnostics
	Diagnostic(ds.Add(diag.ConstEvalQueueRange, diag.Range{Start: 2, End: 7}))
	be.Equal(t, buf.String(), "[TRACE] DIAG error ConstEvalQueueRange @2..7\n")
}
