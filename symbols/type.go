package symbols

import (
	"fmt"
	"math/bits"
	"strings"

	"hdlc/types"
)

// TypeKind is the closed set of type categories
type TypeKind int

const (
	ErrorType TypeKind = iota
	VoidType
	ScalarType
	PredefinedIntegerType
	PackedArrayType
	PackedStructType
	PackedUnionType
	EnumType
	FixedUnpackedArrayType
	DynamicArrayType
	QueueType
	AssociativeArrayType
	StringType
	UnpackedStructType
	UnpackedUnionType
	ClassType
	CovergroupType
	EventType
	SequenceType
	UnboundedType
	AliasType
)

// Type describes the shape of a value. Types are immutable once built,
// except for the member scopes of classes and covergroups which are
// populated during elaboration.
type Type struct {
	Kind TypeKind
	Name string

	width     uint32
	signed    bool
	fourState bool

	elem      *Type
	rng       types.ConstantRange
	indexType *Type // associative arrays; nil is a wildcard index
	maxSize   uint32

	fields  []*Symbol
	tagged  bool
	tagBits uint32
	scope   *Scope

	target *Type // aliases
	base   *Type // class base, enum base
	values []*Symbol
}

var (
	Error     = &Type{Kind: ErrorType, Name: "<error>"}
	Void      = &Type{Kind: VoidType, Name: "void"}
	Unbounded = &Type{Kind: UnboundedType, Name: "$"}
	String    = &Type{Kind: StringType, Name: "string"}
	Event     = &Type{Kind: EventType, Name: "event"}
	Sequence  = &Type{Kind: SequenceType, Name: "sequence"}

	Bit   = &Type{Kind: ScalarType, Name: "bit", width: 1}
	Logic = &Type{Kind: ScalarType, Name: "logic", width: 1, fourState: true}

	Byte     = &Type{Kind: PredefinedIntegerType, Name: "byte", width: 8, signed: true}
	ShortInt = &Type{Kind: PredefinedIntegerType, Name: "shortint", width: 16, signed: true}
	Int      = &Type{Kind: PredefinedIntegerType, Name: "int", width: 32, signed: true}
	LongInt  = &Type{Kind: PredefinedIntegerType, Name: "longint", width: 64, signed: true}
	Integer  = &Type{Kind: PredefinedIntegerType, Name: "integer", width: 32, signed: true, fourState: true}
)

// FieldSpec declares one member of a struct or union
type FieldSpec struct {
	Name string
	Type *Type
}

// NewPackedArray builds a packed array over an integral element type
func NewPackedArray(elem *Type, r types.ConstantRange, signed bool) *Type {
	e := elem.Canonical()
	return &Type{
		Kind:      PackedArrayType,
		width:     e.BitWidth() * r.Width(),
		signed:    signed,
		fourState: e.IsFourState(),
		elem:      elem,
		rng:       r,
	}
}

// NewFixedUnpackedArray builds an unpacked array with a declared range
func NewFixedUnpackedArray(elem *Type, r types.ConstantRange) *Type {
	return &Type{Kind: FixedUnpackedArrayType, elem: elem, rng: r}
}

// NewDynamicArray builds an unsized unpacked array
func NewDynamicArray(elem *Type) *Type {
	return &Type{Kind: DynamicArrayType, elem: elem}
}

// NewQueue builds a queue; maxBound of zero means unbounded
func NewQueue(elem *Type, maxBound uint32) *Type {
	return &Type{Kind: QueueType, elem: elem, maxSize: maxBound}
}

// NewAssociativeArray builds an associative array. A nil index type
// declares a wildcard index.
func NewAssociativeArray(elem, index *Type) *Type {
	return &Type{Kind: AssociativeArrayType, elem: elem, indexType: index}
}

func newAggregate(kind TypeKind, name string, specs []FieldSpec) *Type {
	t := &Type{Kind: kind, Name: name}
	t.scope = NewScope(ScopeStruct, name, nil)
	t.scope.Type = t
	for i, f := range specs {
		sym := &Symbol{Kind: FieldSymbol, Name: f.Name, Type: f.Type, Offset: uint32(i)}
		t.scope.Add(sym)
		t.fields = append(t.fields, sym)
	}
	return t
}

// NewPackedStruct builds a packed struct. The first declared field
// occupies the most significant bits; field offsets are bit offsets.
func NewPackedStruct(name string, specs []FieldSpec, signed bool) *Type {
	t := newAggregate(PackedStructType, name, specs)
	t.signed = signed
	var off uint32
	for i := len(t.fields) - 1; i >= 0; i-- {
		f := t.fields[i]
		ft := f.Type.Canonical()
		f.Offset = off
		off += ft.BitWidth()
		t.fourState = t.fourState || ft.IsFourState()
	}
	t.width = off
	return t
}

// NewPackedUnion builds a packed union. Members share the low bits; a
// tagged union stores the member ordinal in the top tagBits bits.
func NewPackedUnion(name string, specs []FieldSpec, tagged bool) *Type {
	t := newAggregate(PackedUnionType, name, specs)
	t.tagged = tagged
	var w uint32
	for _, f := range t.fields {
		ft := f.Type.Canonical()
		if ft.BitWidth() > w {
			w = ft.BitWidth()
		}
		t.fourState = t.fourState || ft.IsFourState()
	}
	if tagged && len(t.fields) > 1 {
		t.tagBits = uint32(bits.Len(uint(len(t.fields) - 1)))
	}
	t.width = w + t.tagBits
	return t
}

// NewUnpackedStruct builds an unpacked struct; field offsets are ordinals
func NewUnpackedStruct(name string, specs []FieldSpec) *Type {
	return newAggregate(UnpackedStructType, name, specs)
}

// NewUnpackedUnion builds an unpacked union; field offsets are ordinals
func NewUnpackedUnion(name string, specs []FieldSpec, tagged bool) *Type {
	t := newAggregate(UnpackedUnionType, name, specs)
	t.tagged = tagged
	return t
}

// EnumMember declares one enumerator
type EnumMember struct {
	Name  string
	Value int64
}

// NewEnum builds an enumeration over an integral base type. The
// enumerator symbols are returned by Values for insertion into the
// declaring scope.
func NewEnum(name string, base *Type, members []EnumMember) *Type {
	b := base.Canonical()
	t := &Type{Kind: EnumType, Name: name, base: base, width: b.BitWidth(), signed: b.IsSigned(), fourState: b.IsFourState()}
	for _, m := range members {
		var v types.Value
		if t.fourState {
			v = types.NewLogic(t.width, t.signed, m.Value)
		} else {
			v = types.NewInt(t.width, t.signed, m.Value)
		}
		t.values = append(t.values, &Symbol{Kind: EnumValueSymbol, Name: m.Name, Type: t, Value: v})
	}
	return t
}

// NewClass builds a class type with an empty member scope
func NewClass(name string, base *Type) *Type {
	t := &Type{Kind: ClassType, Name: name, base: base}
	t.scope = NewScope(ScopeClass, name, nil)
	t.scope.Type = t
	return t
}

// NewCovergroup builds a covergroup type with an empty body scope
func NewCovergroup(name string) *Type {
	t := &Type{Kind: CovergroupType, Name: name}
	t.scope = NewScope(ScopeCovergroup, name, nil)
	t.scope.Type = t
	return t
}

// NewAlias builds a typedef name for target
func NewAlias(name string, target *Type) *Type {
	return &Type{Kind: AliasType, Name: name, target: target}
}

// Canonical strips typedef aliases
func (t *Type) Canonical() *Type {
	for t != nil && t.Kind == AliasType {
		t = t.target
	}
	if t == nil {
		return Error
	}
	return t
}

func (t *Type) is(kinds ...TypeKind) bool {
	k := t.Canonical().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// IsIntegral reports whether values of the type are bit vectors
func (t *Type) IsIntegral() bool {
	return t.is(ScalarType, PredefinedIntegerType, PackedArrayType, PackedStructType, PackedUnionType, EnumType)
}

func (t *Type) IsScalar() bool { return t.is(ScalarType) }
func (t *Type) IsError() bool  { return t.is(ErrorType) }
func (t *Type) IsVoid() bool   { return t.is(VoidType) }

func (t *Type) IsFourState() bool {
	c := t.Canonical()
	return c.IsIntegral() && c.fourState
}

func (t *Type) IsSigned() bool {
	c := t.Canonical()
	return c.IsIntegral() && c.signed
}

// IsArray reports packed and unpacked arrays of every flavor
func (t *Type) IsArray() bool {
	return t.is(PackedArrayType, FixedUnpackedArrayType, DynamicArrayType, QueueType, AssociativeArrayType)
}

func (t *Type) IsPackedArray() bool { return t.is(PackedArrayType) }

// IsUnpackedArray reports fixed, dynamic, queue and associative arrays
func (t *Type) IsUnpackedArray() bool {
	return t.is(FixedUnpackedArrayType, DynamicArrayType, QueueType, AssociativeArrayType)
}

func (t *Type) IsFixedUnpackedArray() bool { return t.is(FixedUnpackedArrayType) }
func (t *Type) IsDynamicArray() bool       { return t.is(DynamicArrayType) }
func (t *Type) IsAssociativeArray() bool   { return t.is(AssociativeArrayType) }
func (t *Type) IsQueue() bool              { return t.is(QueueType) }
func (t *Type) IsString() bool             { return t.is(StringType) }
func (t *Type) IsUnbounded() bool          { return t.is(UnboundedType) }
func (t *Type) IsEnum() bool               { return t.is(EnumType) }
func (t *Type) IsEvent() bool              { return t.is(EventType) }
func (t *Type) IsSequence() bool           { return t.is(SequenceType) }
func (t *Type) IsClass() bool              { return t.is(ClassType) }
func (t *Type) IsCovergroup() bool         { return t.is(CovergroupType) }
func (t *Type) IsUnpackedStruct() bool     { return t.is(UnpackedStructType) }
func (t *Type) IsUnpackedUnion() bool      { return t.is(UnpackedUnionType) }
func (t *Type) IsPackedUnion() bool        { return t.is(PackedUnionType) }
func (t *Type) IsPackedStruct() bool       { return t.is(PackedStructType) }

// IsStruct reports packed and unpacked structs
func (t *Type) IsStruct() bool { return t.is(PackedStructType, UnpackedStructType) }

// IsUnion reports packed and unpacked unions
func (t *Type) IsUnion() bool { return t.is(PackedUnionType, UnpackedUnionType) }

// IsTaggedUnion reports a packed or unpacked union declared tagged
func (t *Type) IsTaggedUnion() bool {
	c := t.Canonical()
	return c.IsUnion() && c.tagged
}

// TagBits returns the number of tag bits of a packed union
func (t *Type) TagBits() uint32 { return t.Canonical().tagBits }

// HasFixedRange reports integral types and fixed unpacked arrays
func (t *Type) HasFixedRange() bool {
	return t.IsIntegral() || t.IsFixedUnpackedArray()
}

// FixedRange returns the declared range of an array, or [width-1:0]
// for other integral types.
func (t *Type) FixedRange() types.ConstantRange {
	c := t.Canonical()
	switch c.Kind {
	case PackedArrayType, FixedUnpackedArrayType:
		return c.rng
	}
	if c.IsIntegral() {
		return types.ConstantRange{Left: int32(c.width) - 1, Right: 0}
	}
	return types.ConstantRange{}
}

// BitWidth returns the packed width of integral types and zero otherwise
func (t *Type) BitWidth() uint32 {
	c := t.Canonical()
	if !c.IsIntegral() {
		return 0
	}
	return c.width
}

// ArrayElementType returns the element type of an array, or nil
func (t *Type) ArrayElementType() *Type {
	c := t.Canonical()
	if !c.IsArray() {
		return nil
	}
	return c.elem
}

// AssociativeIndexType returns the declared index type, nil for wildcards
func (t *Type) AssociativeIndexType() *Type {
	return t.Canonical().indexType
}

// QueueBound returns the declared maximum index of a bounded queue
func (t *Type) QueueBound() uint32 { return t.Canonical().maxSize }

// Fields returns struct and union members in declaration order
func (t *Type) Fields() []*Symbol { return t.Canonical().fields }

// Scope returns the member scope of structs, unions, classes and covergroups
func (t *Type) Scope() *Scope { return t.Canonical().scope }

// BaseClass returns the class this class extends
func (t *Type) BaseClass() *Type { return t.Canonical().base }

// EnumBase returns the declared base type of an enum
func (t *Type) EnumBase() *Type { return t.Canonical().base }

// EnumValues returns the enumerator symbols in declaration order
func (t *Type) EnumValues() []*Symbol { return t.Canonical().values }

// DefaultValue returns the value a variable of this type starts with
func (t *Type) DefaultValue() types.Value {
	c := t.Canonical()
	switch c.Kind {
	case ScalarType, PredefinedIntegerType, PackedArrayType, PackedStructType, PackedUnionType, EnumType:
		if c.fourState {
			return types.NewUnknown(c.width, c.signed)
		}
		return types.NewInt(c.width, c.signed, 0)
	case FixedUnpackedArrayType:
		elems := make([]types.Value, c.rng.Width())
		for i := range elems {
			elems[i] = c.elem.DefaultValue()
		}
		return types.NewList(elems)
	case DynamicArrayType:
		return types.NewList(nil)
	case QueueType:
		return types.NewQueue(nil)
	case AssociativeArrayType:
		return types.NewMap()
	case StringType:
		return types.NewStr("")
	case UnpackedStructType:
		elems := make([]types.Value, len(c.fields))
		for i, f := range c.fields {
			elems[i] = f.Type.DefaultValue()
		}
		return types.NewList(elems)
	case UnpackedUnionType:
		if c.tagged || len(c.fields) == 0 {
			return types.NewInactiveUnion()
		}
		return types.NewUnion(0, c.fields[0].Type.DefaultValue())
	default:
		return types.UnsetValue{}
	}
}

// IsEquivalent reports whether values of the two types are
// interchangeable without conversion.
func (t *Type) IsEquivalent(o *Type) bool {
	a, b := t.Canonical(), o.Canonical()
	if a == b {
		return true
	}
	if a.IsError() || b.IsError() {
		return false
	}
	if isSimpleVector(a) && isSimpleVector(b) {
		return a.width == b.width && a.signed == b.signed && a.fourState == b.fourState
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case FixedUnpackedArrayType:
		return a.rng.Width() == b.rng.Width() && a.elem.IsEquivalent(b.elem)
	case DynamicArrayType, QueueType:
		return a.elem.IsEquivalent(b.elem)
	case AssociativeArrayType:
		if (a.indexType == nil) != (b.indexType == nil) {
			return false
		}
		return a.elem.IsEquivalent(b.elem) && (a.indexType == nil || a.indexType.IsEquivalent(b.indexType))
	case StringType, EventType, VoidType, SequenceType, UnboundedType:
		return true
	}
	return false
}

func isSimpleVector(t *Type) bool {
	switch t.Kind {
	case ScalarType, PredefinedIntegerType:
		return true
	case PackedArrayType:
		return t.elem.IsScalar()
	}
	return false
}

// String renders the type the way diagnostics print it: logic[7:0],
// bit[7:0]$[0:3], int$[$], int$[string].
func (t *Type) String() string {
	if t == nil {
		return "<error>"
	}
	switch t.Kind {
	case AliasType, EnumType, ClassType, CovergroupType:
		return t.Name
	case PackedStructType, PackedUnionType, UnpackedStructType, UnpackedUnionType:
		if t.Name != "" {
			return t.Name
		}
		return t.aggregateString()
	case PackedArrayType:
		s := t.elem.String() + t.rng.String()
		if t.signed && !t.elem.IsSigned() {
			s = strings.Replace(s, "[", " signed[", 1)
		}
		return s
	case FixedUnpackedArrayType, DynamicArrayType, QueueType, AssociativeArrayType:
		base, dims := t.unpackedParts()
		return base + "$" + dims
	}
	return t.Name
}

func (t *Type) unpackedParts() (string, string) {
	var dims strings.Builder
	cur := t
	for {
		c := cur.Canonical()
		switch {
		case cur.Kind == AliasType:
			return cur.Name, dims.String()
		case c.Kind == FixedUnpackedArrayType:
			dims.WriteString(c.rng.String())
		case c.Kind == DynamicArrayType:
			dims.WriteString("[]")
		case c.Kind == QueueType:
			if c.maxSize > 0 {
				fmt.Fprintf(&dims, "[$:%d]", c.maxSize)
			} else {
				dims.WriteString("[$]")
			}
		case c.Kind == AssociativeArrayType:
			if c.indexType == nil {
				dims.WriteString("[*]")
			} else {
				fmt.Fprintf(&dims, "[%s]", c.indexType)
			}
		default:
			return cur.String(), dims.String()
		}
		cur = c.elem
	}
}

func (t *Type) aggregateString() string {
	var sb strings.Builder
	switch t.Kind {
	case PackedStructType, UnpackedStructType:
		sb.WriteString("struct")
	default:
		sb.WriteString("union")
	}
	if t.Kind == PackedStructType || t.Kind == PackedUnionType {
		sb.WriteString(" packed")
	}
	if t.tagged {
		sb.WriteString(" tagged")
	}
	sb.WriteString("{")
	for _, f := range t.fields {
		fmt.Fprintf(&sb, "%s %s;", f.Type, f.Name)
	}
	sb.WriteString("}")
	return sb.String()
}
