package rule

import "github.com/temirov/nofocus/internal/syntax"

const (
	// MessageFocused is reported for every focused call without a dedicated message.
	MessageFocused = "Do not commit focused tests."
	// MessageFocusedDescribe is reported for a bare fdescribe block.
	MessageFocusedDescribe = "Favor '.only' over 'fdescribe'."
	// MessageFocusedIt is reported for a bare fit test.
	MessageFocusedIt = "Favor '.only' over 'fit'."
)

// shape is one structural form of a focused call. The set of implementations is closed.
type shape interface {
	// match inspects a call whose flattened callee text is calleeText.
	match(call *syntax.Node, calleeText string) (message string, matched bool)
	markerTexts() []string
}

// bareNameShape matches fdescribe(() => {}): an identifier callee and a single
// function literal argument.
type bareNameShape struct {
	markers []string
}

var bareNameMessages = map[string]string{
	markerFocusedDescribe: MessageFocusedDescribe,
	markerFocusedIt:       MessageFocusedIt,
}

func (candidate bareNameShape) match(call *syntax.Node, calleeText string) (string, bool) {
	if call.Callee.Kind != syntax.KindIdentifier || !containsMarker(candidate.markers, calleeText) {
		return "", false
	}
	if len(call.Arguments) != 1 || syntax.ArgumentKindOf(call.Arguments[0]) != syntax.ArgumentFunctionLiteral {
		return "", false
	}
	if message, specific := bareNameMessages[calleeText]; specific {
		return message, true
	}
	return MessageFocused, true
}

func (candidate bareNameShape) markerTexts() []string {
	return candidate.markers
}

// describedShape matches it.only("name", () => {}): a property path callee, a string or
// template description and a function literal body.
type describedShape struct {
	markers []string
}

func (candidate describedShape) match(call *syntax.Node, calleeText string) (string, bool) {
	if call.Callee.Kind != syntax.KindPropertyAccess || !containsMarker(candidate.markers, calleeText) {
		return "", false
	}
	if len(call.Arguments) != 2 {
		return "", false
	}
	description := syntax.ArgumentKindOf(call.Arguments[0])
	if description != syntax.ArgumentStringLiteral && description != syntax.ArgumentTemplateLiteral {
		return "", false
	}
	if syntax.ArgumentKindOf(call.Arguments[1]) != syntax.ArgumentFunctionLiteral {
		return "", false
	}
	return MessageFocused, true
}

func (candidate describedShape) markerTexts() []string {
	return candidate.markers
}

// tabularShape matches describe.only.each([[1, 2]]): the parameter table call of a
// data-driven focused suite.
type tabularShape struct {
	marker string
}

func (candidate tabularShape) match(call *syntax.Node, calleeText string) (string, bool) {
	if call.Callee.Kind != syntax.KindPropertyAccess || calleeText != candidate.marker {
		return "", false
	}
	if len(call.Arguments) != 1 || syntax.ArgumentKindOf(call.Arguments[0]) != syntax.ArgumentArrayLiteral {
		return "", false
	}
	return MessageFocused, true
}

func (candidate tabularShape) markerTexts() []string {
	return []string{candidate.marker}
}

func containsMarker(markers []string, calleeText string) bool {
	for _, marker := range markers {
		if marker == calleeText {
			return true
		}
	}
	return false
}

// Match applies the profile's shapes in order to a call node and returns the message of
// the first shape that accepts it. Nodes other than calls never match.
func (profile Profile) Match(node *syntax.Node) (message string, marker string, matched bool) {
	if node == nil || node.Kind != syntax.KindCall || node.Callee == nil {
		return "", "", false
	}
	calleeText := syntax.CalleeText(node.Callee)
	if calleeText == "" {
		return "", "", false
	}
	for _, candidate := range profile.shapes {
		if shapeMessage, accepted := candidate.match(node, calleeText); accepted {
			return shapeMessage, calleeText, true
		}
	}
	return "", "", false
}
