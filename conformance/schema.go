package conformance

// Suite is one suite file: shared declarations and the cases run
// against them
type Suite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Decls       string     `yaml:"decls,omitempty"`
	Init        []string   `yaml:"init,omitempty"` // procedural assignments run before each case
	Tests       []TestCase `yaml:"tests"`
}

// TestCase is a single expression or assignment with its expectation
type TestCase struct {
	Name   string      `yaml:"name"`
	Skip   any         `yaml:"skip,omitempty"` // bool or string
	Decls  string      `yaml:"decls,omitempty"` // appended to the suite declarations
	Flags  []string    `yaml:"flags,omitempty"` // non_procedural, assertion, unevaluated
	Expr   string      `yaml:"expr,omitempty"`
	Assign string      `yaml:"assign,omitempty"`
	Read   string      `yaml:"read,omitempty"` // evaluated after assign
	Expect Expectation `yaml:"expect"`
}

// Expectation defines what a case must produce. Diags lists every
// diagnostic code in order; an empty list means none.
type Expectation struct {
	Value  *string  `yaml:"value,omitempty"` // DescribeValue text
	Type   string   `yaml:"type,omitempty"`
	Diags  []string `yaml:"diags,omitempty"`
	Bad    bool     `yaml:"bad,omitempty"`    // binding fails
	Stored *bool    `yaml:"stored,omitempty"` // assignment stored or not
}

// IsSkipped returns true if this case should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
	case string:
		return true, v
	}
	return false, ""
}

// HasInput reports whether the case names something to run
func (tc *TestCase) HasInput() bool {
	return tc.Expr != "" || tc.Assign != ""
}
