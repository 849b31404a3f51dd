// Package types defines every cross-package data structure used by the nofocus CLI.
package types

import "encoding/xml"

const (
	CommandLint    = "lint"
	CommandRunners = "runners"
	CommandInit    = "init"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// Position is a one-based line and column in a source file.
type Position struct {
	Line   int `json:"line" xml:"line,attr"`
	Column int `json:"column" xml:"column,attr"`
}

// FailureOutput is one focused test reported for a file.
type FailureOutput struct {
	Rule    string   `json:"rule" xml:"rule,attr"`
	Marker  string   `json:"marker" xml:"marker,attr"`
	Message string   `json:"message" xml:"message"`
	Start   Position `json:"start" xml:"start"`
	End     Position `json:"end" xml:"end"`
}

// FileReport lists the failures found in one file.
type FileReport struct {
	Path     string          `json:"path" xml:"path,attr"`
	Failures []FailureOutput `json:"failures" xml:"failure"`
}

// SkippedFile is a file that could not be analyzed.
type SkippedFile struct {
	Path   string `json:"path" xml:"path,attr"`
	Reason string `json:"reason" xml:",chardata"`
}

// LintSummary captures aggregate information about a lint run.
type LintSummary struct {
	FilesScanned      int `json:"filesScanned" xml:"filesScanned"`
	FilesSkipped      int `json:"filesSkipped" xml:"filesSkipped"`
	FilesWithFailures int `json:"filesWithFailures" xml:"filesWithFailures"`
	FailureCount      int `json:"failureCount" xml:"failureCount"`
}

// LintReport is the result of the lint command. Only files with failures appear in Files.
type LintReport struct {
	XMLName xml.Name      `json:"-" xml:"report"`
	Runner  string        `json:"runner" xml:"runner,attr"`
	Files   []FileReport  `json:"files" xml:"files>file"`
	Skipped []SkippedFile `json:"skipped,omitempty" xml:"skipped>file,omitempty"`
	Summary LintSummary   `json:"summary" xml:"summary"`
}

// HasFailures reports whether any focused test was found.
func (report LintReport) HasFailures() bool {
	return report.Summary.FailureCount > 0
}
