package rule

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/nofocus/internal/syntax"
)

type stubParser struct {
	root  *syntax.Node
	err   error
	calls int
}

func (parser *stubParser) Parse(ctx context.Context, fileName string, source []byte) (*syntax.Node, error) {
	parser.calls++
	return parser.root, parser.err
}

func mustRule(t *testing.T, options Options) *Rule {
	t.Helper()
	created, creationError := New(options)
	if creationError != nil {
		t.Fatalf("New(%+v): %v", options, creationError)
	}
	return created
}

func TestNewRejectsUnknownRunner(t *testing.T) {
	t.Parallel()

	created, creationError := New(Options{Runner: Runner("tap")})
	if !errors.Is(creationError, ErrUnknownRunner) {
		t.Fatalf("expected ErrUnknownRunner, got %v", creationError)
	}
	if created != nil {
		t.Fatalf("expected nil rule on configuration error")
	}
}

func TestApplyReportsFocusedSuite(t *testing.T) {
	t.Parallel()

	focused := bareCall("fdescribe")
	focused.Range = syntax.Range{Start: syntax.Position{Line: 3, Column: 2}, End: syntax.Position{Line: 5, Column: 4}}
	root := syntax.NewProgram(focused)

	failures := mustRule(t, Options{Runner: RunnerJasmine}).Apply("suite.spec.ts", []byte("fdescribe(() => {})"), root)
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	failure := failures[0]
	if failure.Message != MessageFocusedDescribe || failure.Range != focused.Range {
		t.Fatalf("unexpected failure %+v", failure)
	}
	if failure.FileName != "suite.spec.ts" || failure.RuleName != Name || failure.Marker != "fdescribe" {
		t.Fatalf("unexpected failure metadata %+v", failure)
	}
}

func TestApplyIgnoresUnfocusedSuite(t *testing.T) {
	t.Parallel()

	root := syntax.NewProgram(syntax.NewCall(syntax.NewIdentifier("describe"), syntax.NewString(), syntax.NewFunction()))
	failures := mustRule(t, Options{Runner: RunnerJasmine}).Apply("suite.spec.ts", []byte("describe('desc', () => {}) // fit"), root)
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %+v", failures)
	}
}

func TestApplyOnlyAccessorScenarios(t *testing.T) {
	t.Parallel()

	rule := mustRule(t, Options{Runner: RunnerMocha})
	described := syntax.NewProgram(describedCall("it.only"))
	if failures := rule.Apply("a.spec.js", []byte("it.only('desc', () => {})"), described); len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	missingDescription := syntax.NewProgram(syntax.NewCall(syntax.NewPropertyPath("it.only"), syntax.NewFunction()))
	if failures := rule.Apply("a.spec.js", []byte("it.only(() => {})"), missingDescription); len(failures) != 0 {
		t.Fatalf("expected no failures, got %d", len(failures))
	}
}

func TestApplyReportsTabularCallOnly(t *testing.T) {
	t.Parallel()

	table := tabularCall("describe.only.each")
	outer := syntax.NewCall(table, syntax.NewString(), syntax.NewFunction())
	root := syntax.NewProgram(outer)

	failures := mustRule(t, Options{Runner: RunnerJest}).Apply("table.test.js", []byte("describe.only.each([[1, 2]])('x', () => {})"), root)
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Marker != "describe.only.each" {
		t.Fatalf("expected failure on the table call, got %+v", failures[0])
	}
}

func TestApplyReportsNestedCallsInPreOrder(t *testing.T) {
	t.Parallel()

	inner := describedCall("it.only")
	inner.Range.Start.Line = 2
	outer := syntax.NewCall(syntax.NewPropertyPath("describe.only"), syntax.NewString(), syntax.NewFunction(inner))
	outer.Range.Start.Line = 1
	trailing := describedCall("describe.only")
	trailing.Range.Start.Line = 9
	root := syntax.NewProgram(outer, trailing)

	failures := mustRule(t, Options{Runner: RunnerMocha}).Apply("nested.spec.js", []byte("describe.only it.only"), root)
	var lines []int
	for _, failure := range failures {
		lines = append(lines, failure.Range.Start.Line)
	}
	if !reflect.DeepEqual(lines, []int{1, 2, 9}) {
		t.Fatalf("expected failures on lines [1 2 9], got %v", lines)
	}
}

func TestApplySuffixFilter(t *testing.T) {
	t.Parallel()

	root := syntax.NewProgram(bareCall("fit"))
	source := []byte("fit(() => {})")
	rule := mustRule(t, Options{Runner: RunnerJasmine, Suffix: ".spec.ts"})

	if failures := rule.Apply("src/app.spec.ts", source, root); len(failures) != 1 {
		t.Fatalf("expected matching suffix to be analyzed, got %d failures", len(failures))
	}
	for _, fileName := range []string{"src/app.ts", "src/app.spec.tsx", "src/app.SPEC.TS"} {
		if failures := rule.Apply(fileName, source, root); len(failures) != 0 {
			t.Fatalf("%s: expected suffix filter to exclude file, got %d failures", fileName, len(failures))
		}
	}
}

func TestCheckSkipsParsingWhenNothingCanMatch(t *testing.T) {
	t.Parallel()

	rule := mustRule(t, Options{Runner: RunnerAVA, Suffix: ".test.js"})
	parser := &stubParser{root: syntax.NewProgram(describedCall("test.only"))}

	failures, checkError := rule.Check(context.Background(), "math.test.js", []byte("test('adds', t => t.pass())"), parser)
	if checkError != nil || len(failures) != 0 || parser.calls != 0 {
		t.Fatalf("expected prefilter to skip parsing, got failures=%d err=%v parses=%d", len(failures), checkError, parser.calls)
	}

	failures, checkError = rule.Check(context.Background(), "math.js", []byte("test.only('adds', t => t.pass())"), parser)
	if checkError != nil || len(failures) != 0 || parser.calls != 0 {
		t.Fatalf("expected suffix filter to skip parsing, got failures=%d err=%v parses=%d", len(failures), checkError, parser.calls)
	}

	failures, checkError = rule.Check(context.Background(), "math.test.js", []byte("test.only('adds', t => t.pass())"), parser)
	if checkError != nil || len(failures) != 1 || parser.calls != 1 {
		t.Fatalf("expected one parse and one failure, got failures=%d err=%v parses=%d", len(failures), checkError, parser.calls)
	}
}

func TestCheckWrapsParseErrors(t *testing.T) {
	t.Parallel()

	parseFailure := errors.New("broken grammar")
	parser := &stubParser{err: parseFailure}
	_, checkError := mustRule(t, Options{Runner: RunnerJasmine}).Check(context.Background(), "a.spec.js", []byte("fit"), parser)
	if !errors.Is(checkError, parseFailure) {
		t.Fatalf("expected wrapped parse error, got %v", checkError)
	}
}

// randomTree builds a program of random statements around one genuine focused call and
// renders matching source text. Property paths are sometimes split across lines.
type randomTree struct {
	random *rand.Rand
}

var fillerNames = []string{"describe", "it", "expect", "beforeEach", "helper", "only", "each", "serial", "suite", "test", "context"}

func (generator randomTree) identifierPath() (*syntax.Node, string) {
	segmentCount := 1 + generator.random.Intn(3)
	segments := make([]string, 0, segmentCount)
	for index := 0; index < segmentCount; index++ {
		segments = append(segments, fillerNames[generator.random.Intn(len(fillerNames))])
	}
	path := strings.Join(segments, ".")
	return syntax.NewPropertyPath(path), generator.renderPath(path)
}

func (generator randomTree) renderPath(path string) string {
	if generator.random.Intn(3) == 0 {
		return strings.ReplaceAll(path, ".", "\n  .")
	}
	return path
}

func (generator randomTree) expression(depth int) (*syntax.Node, string) {
	choice := generator.random.Intn(6)
	if depth <= 0 {
		choice = generator.random.Intn(3)
	}
	switch choice {
	case 0:
		return syntax.NewString(), "'text'"
	case 1:
		return syntax.NewTemplate(), "`text`"
	case 2:
		return generator.identifierPath()
	case 3:
		body, bodyText := generator.statements(depth - 1)
		return syntax.NewFunction(body...), "() => {\n" + bodyText + "}"
	case 4:
		element, elementText := generator.expression(depth - 1)
		return syntax.NewArray(element), "[" + elementText + "]"
	default:
		return generator.call(depth - 1)
	}
}

func (generator randomTree) call(depth int) (*syntax.Node, string) {
	callee, calleeText := generator.identifierPath()
	argumentCount := generator.random.Intn(3)
	arguments := make([]*syntax.Node, 0, argumentCount)
	argumentTexts := make([]string, 0, argumentCount)
	for index := 0; index < argumentCount; index++ {
		argument, argumentText := generator.expression(depth)
		arguments = append(arguments, argument)
		argumentTexts = append(argumentTexts, argumentText)
	}
	return syntax.NewCall(callee, arguments...), calleeText + "(" + strings.Join(argumentTexts, ", ") + ")"
}

func (generator randomTree) statements(depth int) ([]*syntax.Node, string) {
	count := generator.random.Intn(3)
	nodes := make([]*syntax.Node, 0, count)
	var builder strings.Builder
	for index := 0; index < count; index++ {
		statement, statementText := generator.call(depth)
		nodes = append(nodes, statement)
		builder.WriteString(statementText + ";\n")
	}
	return nodes, builder.String()
}

func (generator randomTree) focusedCall(profile Profile) (*syntax.Node, string) {
	marker := profile.Markers[generator.random.Intn(len(profile.Markers))]
	markerText := generator.renderPath(marker)
	if !strings.Contains(marker, ".") {
		return bareCall(marker), marker + "(() => {})"
	}
	if marker == markerDescribeOnlyEach {
		return tabularCall(marker), markerText + "([[1, 2]])"
	}
	return describedCall(marker), markerText + "('focused', () => {})"
}

func TestPrefilterNeverHidesFocusedCalls(t *testing.T) {
	t.Parallel()

	generator := randomTree{random: rand.New(rand.NewSource(20261016))}
	for iteration := 0; iteration < 500; iteration++ {
		runner := Runners()[generator.random.Intn(len(Runners()))]
		rule := mustRule(t, Options{Runner: runner})

		before, beforeText := generator.statements(3)
		focused, focusedText := generator.focusedCall(rule.Profile())
		after, afterText := generator.statements(3)

		statements := append(append(before, focused), after...)
		root := syntax.NewProgram(statements...)
		source := []byte(beforeText + focusedText + ";\n" + afterText)

		withPrefilter := rule.Apply("random.spec.js", source, root)
		withoutPrefilter := Walk(root, "random.spec.js", rule.Profile())
		if len(withoutPrefilter) == 0 {
			t.Fatalf("iteration %d: walk missed the embedded focused call in %s", iteration, root)
		}
		if !reflect.DeepEqual(withPrefilter, withoutPrefilter) {
			t.Fatalf("iteration %d (%s): prefilter changed the result\nsource:\n%s", iteration, runner, source)
		}
	}
}
