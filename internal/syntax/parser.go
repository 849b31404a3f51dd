//go:build cgo

package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	javascript "github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

const (
	treeSitterCallExpressionType   = "call_expression"
	treeSitterMemberExpressionType = "member_expression"
	treeSitterArgumentsType        = "arguments"
	treeSitterCommentType          = "comment"
	treeSitterFunctionField        = "function"
	treeSitterArgumentsField       = "arguments"
	treeSitterObjectField          = "object"
	treeSitterPropertyField        = "property"
	parseFailureFormat             = "parse %s: %w"
	emptyTreeFormat                = "parse %s: parser returned no tree"
)

var treeSitterKinds = map[string]Kind{
	"program":                     KindProgram,
	"identifier":                  KindIdentifier,
	"property_identifier":         KindPropertyName,
	"private_property_identifier": KindPropertyName,
	"subscript_expression":        KindElementAccess,
	"string":                      KindString,
	"template_string":             KindTemplate,
	"function":                    KindFunction,
	"function_expression":         KindFunction,
	"generator_function":          KindFunction,
	"arrow_function":              KindFunction,
	"array":                       KindArray,
}

// Parser converts JavaScript and TypeScript sources into syntax trees.
// A Parser holds no state and may be shared between goroutines.
type Parser struct{}

// NewParser constructs a Parser backed by tree-sitter.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses source using the grammar selected by the extension of fileName.
func (parser *Parser) Parse(ctx context.Context, fileName string, source []byte) (*Node, error) {
	language, known := LanguageForPath(fileName)
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, fileName)
	}
	treeSitterParser := sitter.NewParser()
	treeSitterParser.SetLanguage(grammarFor(language))
	tree, parseError := treeSitterParser.ParseCtx(ctx, nil, source)
	if parseError != nil {
		return nil, fmt.Errorf(parseFailureFormat, fileName, parseError)
	}
	if tree == nil {
		return nil, fmt.Errorf(emptyTreeFormat, fileName)
	}
	return convertNode(tree.RootNode(), source), nil
}

func grammarFor(language Language) *sitter.Language {
	switch language {
	case LanguageTypeScript:
		return typescript.GetLanguage()
	case LanguageTSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

func convertNode(node *sitter.Node, source []byte) *Node {
	converted := &Node{
		Kind:  treeSitterKinds[node.Type()],
		Type:  node.Type(),
		Range: rangeOf(node),
	}
	switch node.Type() {
	case treeSitterCallExpressionType:
		if convertCall(converted, node, source) {
			return converted
		}
	case treeSitterMemberExpressionType:
		if convertMember(converted, node, source) {
			return converted
		}
	}
	if converted.Kind == KindIdentifier || converted.Kind == KindPropertyName {
		converted.Text = string(source[node.StartByte():node.EndByte()])
	}
	converted.Children = convertNamedChildren(node, source)
	return converted
}

// convertCall fills a call node. Tagged templates keep the generic shape.
func convertCall(converted *Node, node *sitter.Node, source []byte) bool {
	functionNode := node.ChildByFieldName(treeSitterFunctionField)
	argumentsNode := node.ChildByFieldName(treeSitterArgumentsField)
	if functionNode == nil || argumentsNode == nil {
		return false
	}
	if argumentsNode.Type() != treeSitterArgumentsType {
		converted.Kind = KindTaggedTemplate
		return false
	}
	converted.Kind = KindCall
	converted.Callee = convertNode(functionNode, source)
	converted.Arguments = convertNamedChildren(argumentsNode, source)
	converted.Children = make([]*Node, 0, len(converted.Arguments)+1)
	converted.Children = append(converted.Children, converted.Callee)
	converted.Children = append(converted.Children, converted.Arguments...)
	return true
}

func convertMember(converted *Node, node *sitter.Node, source []byte) bool {
	objectNode := node.ChildByFieldName(treeSitterObjectField)
	propertyNode := node.ChildByFieldName(treeSitterPropertyField)
	if objectNode == nil || propertyNode == nil {
		return false
	}
	converted.Kind = KindPropertyAccess
	converted.Object = convertNode(objectNode, source)
	converted.Property = convertNode(propertyNode, source)
	converted.Children = []*Node{converted.Object, converted.Property}
	return true
}

func convertNamedChildren(node *sitter.Node, source []byte) []*Node {
	count := int(node.NamedChildCount())
	if count == 0 {
		return nil
	}
	children := make([]*Node, 0, count)
	for index := 0; index < count; index++ {
		child := node.NamedChild(index)
		if child == nil || child.Type() == treeSitterCommentType {
			continue
		}
		children = append(children, convertNode(child, source))
	}
	return children
}

func rangeOf(node *sitter.Node) Range {
	startPoint := node.StartPoint()
	endPoint := node.EndPoint()
	return Range{
		Start: Position{Offset: int(node.StartByte()), Line: int(startPoint.Row), Column: int(startPoint.Column)},
		End:   Position{Offset: int(node.EndByte()), Line: int(endPoint.Row), Column: int(endPoint.Column)},
	}
}
