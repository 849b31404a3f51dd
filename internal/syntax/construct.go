package syntax

import "strings"

// The constructors below build trees without a parser. Ranges are left zero.

// NewProgram returns a program node holding statements.
func NewProgram(statements ...*Node) *Node {
	return &Node{Kind: KindProgram, Type: "program", Children: statements}
}

// NewIdentifier returns an identifier node.
func NewIdentifier(name string) *Node {
	return &Node{Kind: KindIdentifier, Type: "identifier", Text: name}
}

// NewPropertyPath builds nested property accesses from dotted text such as it.only.
// A path without dots yields an identifier.
func NewPropertyPath(path string) *Node {
	segments := strings.Split(path, propertyPathSeparator)
	current := NewIdentifier(segments[0])
	for _, segment := range segments[1:] {
		property := &Node{Kind: KindPropertyName, Type: "property_identifier", Text: segment}
		current = &Node{
			Kind:     KindPropertyAccess,
			Type:     "member_expression",
			Children: []*Node{current, property},
			Object:   current,
			Property: property,
		}
	}
	return current
}

// NewCall returns a call node.
func NewCall(callee *Node, arguments ...*Node) *Node {
	children := make([]*Node, 0, len(arguments)+1)
	children = append(children, callee)
	children = append(children, arguments...)
	return &Node{
		Kind:      KindCall,
		Type:      "call_expression",
		Children:  children,
		Callee:    callee,
		Arguments: arguments,
	}
}

// NewString returns a string literal node.
func NewString() *Node {
	return &Node{Kind: KindString, Type: "string"}
}

// NewTemplate returns a template literal node.
func NewTemplate() *Node {
	return &Node{Kind: KindTemplate, Type: "template_string"}
}

// NewFunction returns an arrow function whose body holds statements.
func NewFunction(statements ...*Node) *Node {
	body := &Node{Kind: KindOther, Type: "statement_block", Children: statements}
	return &Node{Kind: KindFunction, Type: "arrow_function", Children: []*Node{body}}
}

// NewArray returns an array literal node.
func NewArray(elements ...*Node) *Node {
	return &Node{Kind: KindArray, Type: "array", Children: elements}
}

// NewOther wraps children in a node of no particular interest.
func NewOther(nodeType string, children ...*Node) *Node {
	return &Node{Kind: KindOther, Type: nodeType, Children: children}
}
