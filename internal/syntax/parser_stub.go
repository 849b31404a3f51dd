//go:build !cgo

package syntax

import "context"

// Parser is unavailable when cgo is disabled because the tree-sitter bindings
// cannot be built.
type Parser struct{}

// NewParser returns a Parser whose Parse always fails with ErrParserUnavailable.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reports ErrParserUnavailable.
func (parser *Parser) Parse(ctx context.Context, fileName string, source []byte) (*Node, error) {
	return nil, ErrParserUnavailable
}
