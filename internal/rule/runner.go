package rule

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Runner names a supported test framework.
type Runner string

const (
	RunnerAVA     Runner = "ava"
	RunnerJasmine Runner = "jasmine"
	RunnerJest    Runner = "jest"
	RunnerMocha   Runner = "mocha"
)

// ErrUnknownRunner reports a runner name outside the supported set.
var ErrUnknownRunner = errors.New("unknown test runner")

const (
	markerFocusedDescribe    = "fdescribe"
	markerFocusedIt          = "fit"
	markerTestOnly           = "test.only"
	markerTestSerialOnly     = "test.serial.only"
	markerDescribeOnly       = "describe.only"
	markerItOnly             = "it.only"
	markerSpecifyOnly        = "specify.only"
	markerContextOnly        = "context.only"
	markerDescribeOnlyEach   = "describe.only.each"
	unknownRunnerErrorFormat = "%w %q (expected one of %s)"
	runnerListSeparator      = ", "
)

// Runners lists the supported runners in display order.
func Runners() []Runner {
	return []Runner{RunnerAVA, RunnerJasmine, RunnerJest, RunnerMocha}
}

// ParseRunner resolves a runner name case-insensitively.
func ParseRunner(name string) (Runner, error) {
	candidate := Runner(strings.ToLower(strings.TrimSpace(name)))
	for _, runner := range Runners() {
		if runner == candidate {
			return runner, nil
		}
	}
	return "", fmt.Errorf(unknownRunnerErrorFormat, ErrUnknownRunner, name, runnerNames())
}

func runnerNames() string {
	names := make([]string, 0, len(Runners()))
	for _, runner := range Runners() {
		names = append(names, string(runner))
	}
	return strings.Join(names, runnerListSeparator)
}

// Profile is the marker vocabulary and shape set of one runner.
type Profile struct {
	Runner  Runner
	Markers []string
	shapes  []shape

	// markerSegments holds the dot-separated identifiers of each marker.
	markerSegments [][][]byte
}

// ProfileFor returns the profile of runner. A runner outside the supported set is an
// ErrUnknownRunner configuration error rather than an empty profile.
func ProfileFor(runner Runner) (Profile, error) {
	switch runner {
	case RunnerAVA:
		return newProfile(runner,
			describedShape{markers: []string{markerTestOnly, markerTestSerialOnly}},
		), nil
	case RunnerJasmine:
		return newProfile(runner,
			bareNameShape{markers: []string{markerFocusedDescribe, markerFocusedIt}},
		), nil
	case RunnerMocha:
		return newProfile(runner,
			describedShape{markers: []string{markerDescribeOnly, markerItOnly, markerSpecifyOnly, markerContextOnly}},
		), nil
	case RunnerJest:
		return newProfile(runner,
			bareNameShape{markers: []string{markerFocusedDescribe, markerFocusedIt}},
			describedShape{markers: []string{markerDescribeOnly, markerDescribeOnlyEach, markerItOnly}},
			tabularShape{marker: markerDescribeOnlyEach},
		), nil
	default:
		return Profile{}, fmt.Errorf(unknownRunnerErrorFormat, ErrUnknownRunner, string(runner), runnerNames())
	}
}

func newProfile(runner Runner, shapes ...shape) Profile {
	var markers []string
	listed := make(map[string]struct{})
	for _, candidate := range shapes {
		for _, marker := range candidate.markerTexts() {
			if _, duplicate := listed[marker]; duplicate {
				continue
			}
			listed[marker] = struct{}{}
			markers = append(markers, marker)
		}
	}
	markerSegments := make([][][]byte, 0, len(markers))
	for _, marker := range markers {
		var segments [][]byte
		for _, segment := range strings.Split(marker, ".") {
			segments = append(segments, []byte(segment))
		}
		markerSegments = append(markerSegments, segments)
	}
	return Profile{Runner: runner, Markers: markers, shapes: shapes, markerSegments: markerSegments}
}

// PossibleMatches reports whether text may hold a focused call: for some marker, every
// identifier of its property path occurs in text. Paths split across lines or written
// with optional chaining still pass. Markers inside comments or strings pass too; the
// tree walk rejects them later.
func (profile Profile) PossibleMatches(text []byte) bool {
	for _, segments := range profile.markerSegments {
		if containsAll(text, segments) {
			return true
		}
	}
	return false
}

func containsAll(text []byte, segments [][]byte) bool {
	for _, segment := range segments {
		if !bytes.Contains(text, segment) {
			return false
		}
	}
	return true
}
