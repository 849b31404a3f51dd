package rule

import "github.com/temirov/nofocus/internal/syntax"

// Failure is one focused call found in a file.
type Failure struct {
	FileName string
	Range    syntax.Range
	Message  string
	Marker   string
	RuleName string
}

// failureCollector accumulates failures in the order they are added.
type failureCollector struct {
	fileName string
	failures []Failure
}

func (collector *failureCollector) add(node *syntax.Node, message string, marker string) {
	collector.failures = append(collector.failures, Failure{
		FileName: collector.fileName,
		Range:    node.Range,
		Message:  message,
		Marker:   marker,
		RuleName: Name,
	})
}

// Walk visits every node under root in pre-order and reports each call the profile
// matches. Matched calls are not pruned, so nested focused calls are reported after
// their enclosing call.
func Walk(root *syntax.Node, fileName string, profile Profile) []Failure {
	collector := failureCollector{fileName: fileName}
	syntax.Inspect(root, func(node *syntax.Node) bool {
		if node.Kind != syntax.KindCall {
			return true
		}
		if message, marker, matched := profile.Match(node); matched {
			collector.add(node, message, marker)
		}
		return true
	})
	return collector.failures
}
