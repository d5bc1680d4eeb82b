package binding

import (
	"hdlc/symbols"
	"hdlc/types"
)

// unionLeaf is one scalar position of an unpacked value
type unionLeaf struct {
	typ *symbols.Type
	val types.Value
}

// aggregateChildren returns the field types of an unpacked struct in
// declaration order, or nil when t is a leaf. Arrays are leaves and
// compare whole.
func aggregateChildren(t *symbols.Type) []*symbols.Type {
	c := t.Canonical()
	if !c.IsUnpackedStruct() || len(c.Fields()) == 0 {
		return nil
	}
	kids := make([]*symbols.Type, len(c.Fields()))
	for i, f := range c.Fields() {
		kids[i] = f.Type
	}
	return kids
}

// flattenLeaves lists the leaves of v in declaration order
func flattenLeaves(t *symbols.Type, v types.Value) []unionLeaf {
	var leaves []unionLeaf
	stack := []unionLeaf{{typ: t, val: v}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		kids := aggregateChildren(top.typ)
		list, ok := top.val.(types.ListValue)
		if kids == nil || !ok || list.Len() != len(kids) {
			leaves = append(leaves, top)
			continue
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, unionLeaf{typ: kids[i], val: list.At(i)})
		}
	}
	return leaves
}

type buildFrame struct {
	children []*symbols.Type
	elems    []types.Value
}

// translateUnionMember reads the active member of an untagged union as
// another member. The two must share a common initial sequence of leaves
// with equivalent types; otherwise the result is nil.
func translateUnionMember(from *symbols.Type, v types.Value, to *symbols.Type) types.Value {
	leaves := flattenLeaves(from, v)
	pos := 0

	stack := []*buildFrame{{children: []*symbols.Type{to}}}
	for {
		top := stack[len(stack)-1]
		if len(top.elems) == len(top.children) {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return top.elems[0]
			}
			parent := stack[len(stack)-1]
			parent.elems = append(parent.elems, types.NewList(top.elems))
			continue
		}

		t := top.children[len(top.elems)]
		if kids := aggregateChildren(t); kids != nil {
			stack = append(stack, &buildFrame{children: kids})
			continue
		}
		if pos >= len(leaves) || !leaves[pos].typ.IsEquivalent(t) {
			return nil
		}
		top.elems = append(top.elems, leaves[pos].val)
		pos++
	}
}
