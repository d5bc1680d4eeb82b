package diag

// Severity classifies how a diagnostic affects compilation
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the severity label used when rendering
func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// Code identifies a diagnostic kind
type Code int

const (
	Unknown Code = iota

	// Static type errors
	BadIndexExpression
	CannotIndexScalar
	RangeSelectAssociative
	InvalidMemberAccess
	UnknownMember
	InvalidClassAccess
	ExprMustBeIntegral
	UnboundedNotAllowed
	UndeclaredIdentifier
	NotAValue
	BadAssignment
	AssignmentPatternNoContext
	BadBinaryExpression
	ExpressionNotCallable
	TooFewArguments
	TooManyArguments
	UnknownSystemMethod
	LocalMemberAccess

	// Static bounds errors
	IndexValueInvalid
	BadRangeExpression
	RangeWidthTooLarge
	SelectEndianMismatch
	SelectEndianDynamic
	ValueMustBePositive
	ExpressionNotConstant

	// Context restrictions
	DynamicNotProcedural
	ClassMemberInAssertion
	CoverOptionImmutable
	ExpressionNotAssignable
	AssignmentToConst
	ProceduralNetAssign
	MultipleContinuousDrivers
	MixedVarAssigns

	// Constant evaluation
	ConstEvalArrayIndexInvalid
	ConstEvalAssociativeIndexInvalid
	ConstEvalPartSelectInvalid
	ConstEvalTaggedUnion
	ConstEvalQueueRange
	ConstEvalNonConstVariable
	ConstEvalNotConstant
	ConstEvalNoQueueTarget

	// Warnings
	SelectOfVectoredNet
	UnexpectedWithClause
	UserDefPartialDriver
	ConstEvalDynamicArrayRange
	ConstEvalDynamicArrayIndex
	ConstEvalAssociativeElementNotFound
	ConstEvalStringIndexInvalid

	// Notes
	NoteDeclarationHere
	NotePreviousDriver

	numCodes
)

type codeInfo struct {
	name     string
	severity Severity
	message  string
}

var codeTable = [numCodes]codeInfo{
	Unknown: {"Unknown", SeverityError, "unknown diagnostic"},

	BadIndexExpression:         {"BadIndexExpression", SeverityError, "value of type %[1]v cannot be indexed"},
	CannotIndexScalar:          {"CannotIndexScalar", SeverityError, "scalar type cannot be indexed"},
	RangeSelectAssociative:     {"RangeSelectAssociative", SeverityError, "cannot select a range of elements from an associative array"},
	InvalidMemberAccess:        {"InvalidMemberAccess", SeverityError, "invalid member access '%[1]v' for type %[2]v"},
	UnknownMember:              {"UnknownMember", SeverityError, "no member named '%[1]v' in %[2]v"},
	InvalidClassAccess:         {"InvalidClassAccess", SeverityError, "cannot access '%[1]v' of %[2]v"},
	ExprMustBeIntegral:         {"ExprMustBeIntegral", SeverityError, "expression type %[1]v is not integral"},
	UnboundedNotAllowed:        {"UnboundedNotAllowed", SeverityError, "unbounded literal '$' not allowed here"},
	UndeclaredIdentifier:       {"UndeclaredIdentifier", SeverityError, "use of undeclared identifier '%[1]v'"},
	NotAValue:                  {"NotAValue", SeverityError, "'%[1]v' cannot be used in an expression"},
	BadAssignment:              {"BadAssignment", SeverityError, "value of type %[1]v cannot be converted to %[2]v"},
	AssignmentPatternNoContext: {"AssignmentPatternNoContext", SeverityError, "assignment pattern target type cannot be determined"},
	BadBinaryExpression:        {"BadBinaryExpression", SeverityError, "invalid operands to binary expression (%[1]v and %[2]v)"},
	ExpressionNotCallable:      {"ExpressionNotCallable", SeverityError, "expression is not callable"},
	TooFewArguments:            {"TooFewArguments", SeverityError, "too few arguments to '%[1]v'; expected %[2]v, have %[3]v"},
	TooManyArguments:           {"TooManyArguments", SeverityError, "too many arguments to '%[1]v'; expected %[2]v, have %[3]v"},
	UnknownSystemMethod:        {"UnknownSystemMethod", SeverityError, "unknown built-in method '%[1]v' for type %[2]v"},
	LocalMemberAccess:          {"LocalMemberAccess", SeverityError, "'%[1]v' is a local member of %[2]v"},

	IndexValueInvalid:     {"IndexValueInvalid", SeverityError, "index %[1]v is out of bounds for %[2]v"},
	BadRangeExpression:    {"BadRangeExpression", SeverityError, "cannot select range of [%[1]v:%[2]v] from %[3]v"},
	RangeWidthTooLarge:    {"RangeWidthTooLarge", SeverityError, "range width %[1]v is larger than type %[2]v"},
	SelectEndianMismatch:  {"SelectEndianMismatch", SeverityError, "endianness of selection must match declared range of %[1]v"},
	SelectEndianDynamic:   {"SelectEndianDynamic", SeverityError, "selection [%[1]v:%[2]v] of dynamic type %[3]v must be ascending"},
	ValueMustBePositive:   {"ValueMustBePositive", SeverityError, "value must be positive"},
	ExpressionNotConstant: {"ExpressionNotConstant", SeverityError, "expression is not constant"},

	DynamicNotProcedural:      {"DynamicNotProcedural", SeverityError, "dynamic types cannot be used outside of procedural context"},
	ClassMemberInAssertion:    {"ClassMemberInAssertion", SeverityError, "automatic class members cannot be referenced in assertions"},
	CoverOptionImmutable:      {"CoverOptionImmutable", SeverityError, "coverage option '%[1]v' cannot be changed outside its covergroup"},
	ExpressionNotAssignable:   {"ExpressionNotAssignable", SeverityError, "expression is not assignable"},
	AssignmentToConst:         {"AssignmentToConst", SeverityError, "cannot assign to constant '%[1]v'"},
	ProceduralNetAssign:       {"ProceduralNetAssign", SeverityError, "cannot assign to net '%[1]v' in a procedural context"},
	MultipleContinuousDrivers: {"MultipleContinuousDrivers", SeverityError, "'%[1]v' has multiple continuous drivers"},
	MixedVarAssigns:           {"MixedVarAssigns", SeverityError, "'%[1]v' is driven both continuously and procedurally"},

	ConstEvalArrayIndexInvalid:       {"ConstEvalArrayIndexInvalid", SeverityError, "index %[1]v is out of bounds for %[2]v"},
	ConstEvalAssociativeIndexInvalid: {"ConstEvalAssociativeIndexInvalid", SeverityError, "associative array key %[1]v has unknown bits"},
	ConstEvalPartSelectInvalid:       {"ConstEvalPartSelectInvalid", SeverityError, "part-select [%[1]v:%[2]v] is out of bounds for %[3]v"},
	ConstEvalTaggedUnion:             {"ConstEvalTaggedUnion", SeverityError, "union member '%[1]v' is not active"},
	ConstEvalQueueRange:              {"ConstEvalQueueRange", SeverityError, "reversed queue selection [%[1]v:%[2]v]"},
	ConstEvalNonConstVariable:        {"ConstEvalNonConstVariable", SeverityError, "reference to non-constant variable '%[1]v'"},
	ConstEvalNotConstant:             {"ConstEvalNotConstant", SeverityError, "expression cannot be evaluated as a constant"},
	ConstEvalNoQueueTarget:           {"ConstEvalNoQueueTarget", SeverityError, "'$' used outside of a queue selection"},

	SelectOfVectoredNet:                 {"SelectOfVectoredNet", SeverityWarning, "selecting from a vectored net"},
	UnexpectedWithClause:                {"UnexpectedWithClause", SeverityWarning, "'with' clause is not used by this expression"},
	UserDefPartialDriver:                {"UserDefPartialDriver", SeverityWarning, "partial driver of net '%[1]v' with a user-defined nettype"},
	ConstEvalDynamicArrayRange:          {"ConstEvalDynamicArrayRange", SeverityWarning, "selection [%[1]v:%[2]v] is out of bounds for %[3]v of size %[4]v"},
	ConstEvalDynamicArrayIndex:          {"ConstEvalDynamicArrayIndex", SeverityWarning, "index %[1]v is out of bounds for %[2]v of size %[3]v"},
	ConstEvalAssociativeElementNotFound: {"ConstEvalAssociativeElementNotFound", SeverityWarning, "key %[1]v not found in associative array"},
	ConstEvalStringIndexInvalid:         {"ConstEvalStringIndexInvalid", SeverityWarning, "index %[1]v is out of bounds for string of length %[2]v"},

	NoteDeclarationHere: {"NoteDeclarationHere", SeverityNote, "declared here"},
	NotePreviousDriver:  {"NotePreviousDriver", SeverityNote, "previous driver here"},
}

// String returns the code name
func (c Code) String() string {
	if c < 0 || c >= numCodes {
		return "Unknown"
	}
	return codeTable[c].name
}

// Severity returns the default severity of the code
func (c Code) Severity() Severity {
	if c < 0 || c >= numCodes {
		return SeverityError
	}
	return codeTable[c].severity
}

// CodeFromString converts a name like "IndexValueInvalid" to a Code
func CodeFromString(s string) (Code, bool) {
	for c := Code(0); c < numCodes; c++ {
		if codeTable[c].name == s {
			return c, true
		}
	}
	return Unknown, false
}
