package output_test

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/temirov/nofocus/internal/output"
	"github.com/temirov/nofocus/internal/types"
)

func sampleReport() types.LintReport {
	return types.LintReport{
		Runner: "mocha",
		Files: []types.FileReport{
			{
				Path: "test/api.spec.js",
				Failures: []types.FailureOutput{
					{Rule: "no-focused-tests", Marker: "describe.only", Message: "Do not commit focused tests.", Start: types.Position{Line: 3, Column: 1}, End: types.Position{Line: 9, Column: 3}},
					{Rule: "no-focused-tests", Marker: "it.only", Message: "Do not commit focused tests.", Start: types.Position{Line: 4, Column: 3}, End: types.Position{Line: 6, Column: 5}},
				},
			},
		},
		Skipped: []types.SkippedFile{{Path: "test/broken.spec.js", Reason: "unexpected token"}},
		Summary: types.LintSummary{FilesScanned: 4, FilesSkipped: 1, FilesWithFailures: 1, FailureCount: 2},
	}
}

func TestRenderRaw(t *testing.T) {
	t.Parallel()

	rendered := output.RenderRaw(sampleReport())
	expected := "test/api.spec.js:3:1: Do not commit focused tests. (no-focused-tests)\n" +
		"test/api.spec.js:4:3: Do not commit focused tests. (no-focused-tests)\n" +
		"test/broken.spec.js: skipped: unexpected token\n" +
		"Summary: 4 files scanned, 2 focused tests in 1 file, 1 skipped\n"
	if rendered != expected {
		t.Fatalf("unexpected raw output\n got: %q\nwant: %q", rendered, expected)
	}
}

func TestFormatSummaryLine(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		summary  types.LintSummary
		expected string
	}{
		{name: "clean", summary: types.LintSummary{FilesScanned: 1}, expected: "Summary: 1 file scanned, 0 focused tests"},
		{name: "single_failure", summary: types.LintSummary{FilesScanned: 2, FilesWithFailures: 1, FailureCount: 1}, expected: "Summary: 2 files scanned, 1 focused test in 1 file"},
		{name: "skipped_only", summary: types.LintSummary{FilesSkipped: 3}, expected: "Summary: 0 files scanned, 0 focused tests, 3 skipped"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if actual := output.FormatSummaryLine(testCase.summary); actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	rendered, renderError := output.RenderJSON(sampleReport())
	if renderError != nil {
		t.Fatalf("RenderJSON: %v", renderError)
	}
	var decoded map[string]any
	if decodeError := json.Unmarshal([]byte(rendered), &decoded); decodeError != nil {
		t.Fatalf("invalid JSON: %v\n%s", decodeError, rendered)
	}
	for _, fragment := range []string{`"runner": "mocha"`, `"marker": "it.only"`, `"line": 4`, `"failureCount": 2`, `"reason": "unexpected token"`} {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("expected %s in output\n%s", fragment, rendered)
		}
	}

	empty, emptyError := output.RenderJSON(types.LintReport{Runner: "ava"})
	if emptyError != nil {
		t.Fatalf("RenderJSON empty: %v", emptyError)
	}
	if !strings.Contains(empty, `"files": []`) || strings.Contains(empty, `"skipped"`) {
		t.Fatalf("expected empty files array and no skipped key\n%s", empty)
	}
}

func TestRenderXML(t *testing.T) {
	t.Parallel()

	rendered, renderError := output.RenderXML(sampleReport())
	if renderError != nil {
		t.Fatalf("RenderXML: %v", renderError)
	}
	if !strings.HasPrefix(rendered, xml.Header) {
		t.Fatalf("expected XML header\n%s", rendered)
	}
	var decoded types.LintReport
	if decodeError := xml.Unmarshal([]byte(strings.TrimPrefix(rendered, xml.Header)), &decoded); decodeError != nil {
		t.Fatalf("invalid XML: %v\n%s", decodeError, rendered)
	}
	if len(decoded.Files) != 1 || len(decoded.Files[0].Failures) != 2 || decoded.Files[0].Failures[1].Start.Column != 3 {
		t.Fatalf("unexpected decoded report %+v", decoded)
	}
	for _, fragment := range []string{`<report runner="mocha">`, `<file path="test/api.spec.js">`, `<start line="3" column="1"></start>`} {
		if !strings.Contains(rendered, fragment) {
			t.Fatalf("expected %s in output\n%s", fragment, rendered)
		}
	}
}

func TestRenderDispatch(t *testing.T) {
	t.Parallel()

	for _, format := range []string{types.FormatRaw, types.FormatJSON, types.FormatXML} {
		if !output.IsSupportedFormat(format) {
			t.Fatalf("expected %s to be supported", format)
		}
		if rendered, renderError := output.Render(format, sampleReport()); renderError != nil || rendered == "" {
			t.Fatalf("%s: unexpected result %q %v", format, rendered, renderError)
		}
	}
	if _, renderError := output.Render("toon", sampleReport()); renderError == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
