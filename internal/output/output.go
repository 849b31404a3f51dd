// Package output renders lint reports as raw text, JSON or XML.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/temirov/nofocus/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	rawFailureFormat = "%s:%d:%d: %s (%s)\n"
	rawSkippedFormat = "%s: skipped: %s\n"

	// InvalidFormatMessage reports an unknown output format.
	InvalidFormatMessage = "Invalid format value '%s'"
)

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// Render renders report in the requested format.
func Render(format string, report types.LintReport) (string, error) {
	switch format {
	case types.FormatRaw:
		return RenderRaw(report), nil
	case types.FormatJSON:
		return RenderJSON(report)
	case types.FormatXML:
		return RenderXML(report)
	default:
		return "", fmt.Errorf(InvalidFormatMessage, format)
	}
}

// RenderRaw returns one `path:line:column: message (rule)` line per failure followed by
// the skipped files and a summary line.
func RenderRaw(report types.LintReport) string {
	var buffer bytes.Buffer
	for _, fileReport := range report.Files {
		for _, failure := range fileReport.Failures {
			fmt.Fprintf(&buffer, rawFailureFormat, fileReport.Path, failure.Start.Line, failure.Start.Column, failure.Message, failure.Rule)
		}
	}
	for _, skipped := range report.Skipped {
		fmt.Fprintf(&buffer, rawSkippedFormat, skipped.Path, skipped.Reason)
	}
	buffer.WriteString(FormatSummaryLine(report.Summary))
	buffer.WriteString("\n")
	return buffer.String()
}

// RenderJSON marshals the report as an indented JSON document.
func RenderJSON(report types.LintReport) (string, error) {
	if report.Files == nil {
		report.Files = []types.FileReport{}
	}
	encoded, jsonEncodeError := json.MarshalIndent(report, indentPrefix, indentSpacer)
	return string(encoded), jsonEncodeError
}

// RenderXML marshals the report as an XML document.
func RenderXML(report types.LintReport) (string, error) {
	encoded, xmlMarshalError := xml.MarshalIndent(report, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", xmlMarshalError
	}
	return xmlHeader + string(encoded), nil
}

// FormatSummaryLine describes the totals of a lint run.
func FormatSummaryLine(summary types.LintSummary) string {
	scanned := pluralize(summary.FilesScanned, "file", "files")
	failures := pluralize(summary.FailureCount, "focused test", "focused tests")
	line := fmt.Sprintf("Summary: %s scanned, %s", scanned, failures)
	if summary.FailureCount > 0 {
		line += fmt.Sprintf(" in %s", pluralize(summary.FilesWithFailures, "file", "files"))
	}
	if summary.FilesSkipped > 0 {
		line += fmt.Sprintf(", %d skipped", summary.FilesSkipped)
	}
	return line
}

func pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
