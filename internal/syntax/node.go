// Package syntax defines the read-only syntax tree consumed by the lint rules
// and the tree-sitter backed parser that builds it for JavaScript and TypeScript.
package syntax

import "strings"

// Kind classifies a syntax node.
type Kind int

const (
	KindOther Kind = iota
	KindProgram
	KindCall
	KindIdentifier
	KindPropertyName
	KindPropertyAccess
	KindElementAccess
	KindString
	KindTemplate
	KindFunction
	KindArray
	KindTaggedTemplate
)

var kindNames = map[Kind]string{
	KindOther:          "other",
	KindProgram:        "program",
	KindCall:           "call",
	KindIdentifier:     "identifier",
	KindPropertyName:   "property_name",
	KindPropertyAccess: "property_access",
	KindElementAccess:  "element_access",
	KindString:         "string",
	KindTemplate:       "template",
	KindFunction:       "function",
	KindArray:          "array",
	KindTaggedTemplate: "tagged_template",
}

func (kind Kind) String() string {
	if name, known := kindNames[kind]; known {
		return name
	}
	return kindNames[KindOther]
}

// ArgumentKind is the projection of a call argument used by shape checks.
type ArgumentKind int

const (
	ArgumentOther ArgumentKind = iota
	ArgumentIdentifier
	ArgumentPropertyPath
	ArgumentStringLiteral
	ArgumentTemplateLiteral
	ArgumentFunctionLiteral
	ArgumentArrayLiteral
)

// Position is a zero-based location in a source file.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Range spans a node from Start (inclusive) to End (exclusive).
type Range struct {
	Start Position
	End   Position
}

// Node is one element of a parsed source file.
//
// Children holds the named children in source order. For KindCall nodes Callee and
// Arguments point into Children; for KindPropertyAccess nodes Object and Property do.
// Text is only set for identifiers and property names.
type Node struct {
	Kind     Kind
	Type     string
	Range    Range
	Text     string
	Children []*Node

	Callee    *Node
	Arguments []*Node

	Object   *Node
	Property *Node
}

const propertyPathSeparator = "."

// CalleeText flattens an identifier or a property path such as describe.only.each into
// its dotted text. Any other expression yields an empty string.
func CalleeText(node *Node) string {
	if node == nil {
		return ""
	}
	switch node.Kind {
	case KindIdentifier:
		return node.Text
	case KindPropertyAccess:
		if node.Property == nil {
			return ""
		}
		left := CalleeText(node.Object)
		if left == "" {
			return ""
		}
		return left + propertyPathSeparator + node.Property.Text
	default:
		return ""
	}
}

// ArgumentKindOf reports how a call argument is classified.
func ArgumentKindOf(node *Node) ArgumentKind {
	if node == nil {
		return ArgumentOther
	}
	switch node.Kind {
	case KindIdentifier:
		return ArgumentIdentifier
	case KindPropertyAccess:
		return ArgumentPropertyPath
	case KindString:
		return ArgumentStringLiteral
	case KindTemplate:
		return ArgumentTemplateLiteral
	case KindFunction:
		return ArgumentFunctionLiteral
	case KindArray:
		return ArgumentArrayLiteral
	default:
		return ArgumentOther
	}
}

// Inspect visits root and every descendant in pre-order. Returning false from visit
// skips the children of the current node.
func Inspect(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	pending := []*Node{root}
	for len(pending) > 0 {
		last := len(pending) - 1
		current := pending[last]
		pending = pending[:last]
		if !visit(current) {
			continue
		}
		for index := len(current.Children) - 1; index >= 0; index-- {
			if current.Children[index] != nil {
				pending = append(pending, current.Children[index])
			}
		}
	}
}

// String renders a compact s-expression of the tree for diagnostics and tests.
func (node *Node) String() string {
	var builder strings.Builder
	writeNode(&builder, node)
	return builder.String()
}

func writeNode(builder *strings.Builder, node *Node) {
	if node == nil {
		builder.WriteString("nil")
		return
	}
	builder.WriteString("(")
	builder.WriteString(node.Kind.String())
	if node.Text != "" {
		builder.WriteString(" ")
		builder.WriteString(node.Text)
	}
	for _, child := range node.Children {
		builder.WriteString(" ")
		writeNode(builder, child)
	}
	builder.WriteString(")")
}
