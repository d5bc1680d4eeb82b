package diag

import (
	"bytes"
	"testing"

	"github.com/nalgeon/be"
)

func TestCodeNames(t *testing.T) {
	for c := Code(0); c < numCodes; c++ {
		name := c.String()
		be.True(t, name != "")
		back, ok := CodeFromString(name)
		be.True(t, ok)
		be.Equal(t, back, c)
	}

	_, ok := CodeFromString("NoSuchCode")
	be.True(t, !ok)
}

func TestSeverities(t *testing.T) {
	be.Equal(t, IndexValueInvalid.Severity(), SeverityError)
	be.Equal(t, ConstEvalDynamicArrayIndex.Severity(), SeverityWarning)
	be.Equal(t, UserDefPartialDriver.Severity(), SeverityWarning)
	be.Equal(t, NoteDeclarationHere.Severity(), SeverityNote)
}

func TestDiagnosticsBuilder(t *testing.T) {
	var ds Diagnostics
	ds.Add(IndexValueInvalid, Range{Start: 4, End: 5}).Arg("32'sd4").Arg("bit[7:0]$[0:3]")
	ds.Add(ConstEvalDynamicArrayIndex, Range{}).Arg(3).Arg("int$[]").Arg(3)

	be.Equal(t, len(ds), 2)
	be.True(t, ds.Has(IndexValueInvalid))
	be.Equal(t, ds.Count(ConstEvalDynamicArrayIndex), 1)
	be.True(t, ds.HasErrors())
	be.Equal(t, ds[0].Message(), "index 32'sd4 is out of bounds for bit[7:0]$[0:3]")
	be.Equal(t, ds[1].String(), "warning: ConstEvalDynamicArrayIndex: index 3 is out of bounds for int$[] of size 3")
}

func TestRender(t *testing.T) {
	src := "logic [7:0] v;\nv[2:5]"
	var ds Diagnostics
	ds.Add(SelectEndianMismatch, Range{Start: 17, End: 20}).Arg("logic[7:0]").
		Note(NoteDeclarationHere, Range{Start: 12, End: 13})

	var buf bytes.Buffer
	Render(&buf, "in.sv", src, ds)
	want := "in.sv:2:3: error: endianness of selection must match declared range of logic[7:0] [SelectEndianMismatch]\n" +
		"  v[2:5]\n" +
		"    ^^^\n" +
		"in.sv:1:13: note: declared here [NoteDeclarationHere]\n" +
		"  logic [7:0] v;\n" +
		"              ^\n"
	be.Equal(t, buf.String(), want)
}
