package rule

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseRunner(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    Runner
		expectError bool
	}{
		{name: "ava", input: "ava", expected: RunnerAVA},
		{name: "jasmine_mixed_case", input: "Jasmine", expected: RunnerJasmine},
		{name: "jest_padded", input: "  jest ", expected: RunnerJest},
		{name: "mocha", input: "mocha", expected: RunnerMocha},
		{name: "unknown", input: "vitest", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			runner, parseError := ParseRunner(testCase.input)
			if testCase.expectError {
				if !errors.Is(parseError, ErrUnknownRunner) {
					t.Fatalf("expected ErrUnknownRunner, got %v", parseError)
				}
				return
			}
			if parseError != nil {
				t.Fatalf("unexpected error: %v", parseError)
			}
			if runner != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, runner)
			}
		})
	}
}

func TestProfileForListsMarkers(t *testing.T) {
	t.Parallel()

	expected := map[Runner][]string{
		RunnerAVA:     {"test.only", "test.serial.only"},
		RunnerJasmine: {"fdescribe", "fit"},
		RunnerMocha:   {"describe.only", "it.only", "specify.only", "context.only"},
		RunnerJest:    {"fdescribe", "fit", "describe.only", "describe.only.each", "it.only"},
	}
	for _, runner := range Runners() {
		profile, profileError := ProfileFor(runner)
		if profileError != nil {
			t.Fatalf("%s: unexpected error: %v", runner, profileError)
		}
		if profile.Runner != runner {
			t.Fatalf("%s: profile carries runner %s", runner, profile.Runner)
		}
		if !reflect.DeepEqual(profile.Markers, expected[runner]) {
			t.Fatalf("%s: expected markers %v, got %v", runner, expected[runner], profile.Markers)
		}
	}
}

func TestProfileForRejectsUnknownRunner(t *testing.T) {
	t.Parallel()

	profile, profileError := ProfileFor(Runner("karma"))
	if !errors.Is(profileError, ErrUnknownRunner) {
		t.Fatalf("expected ErrUnknownRunner, got %v", profileError)
	}
	if len(profile.Markers) != 0 {
		t.Fatalf("expected empty profile, got %v", profile.Markers)
	}
}

func TestAVAAndJasmineMarkersAreDisjoint(t *testing.T) {
	t.Parallel()

	ava, _ := ProfileFor(RunnerAVA)
	jasmine, _ := ProfileFor(RunnerJasmine)
	for _, avaMarker := range ava.Markers {
		for _, jasmineMarker := range jasmine.Markers {
			if avaMarker == jasmineMarker {
				t.Fatalf("marker %s shared between ava and jasmine", avaMarker)
			}
		}
	}
}

func TestPossibleMatches(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		runner   Runner
		text     string
		expected bool
	}{
		{name: "exact_marker", runner: RunnerMocha, text: "it.only('x', () => {})", expected: true},
		{name: "split_across_lines", runner: RunnerMocha, text: "it\n  .only('x', () => {})", expected: true},
		{name: "optional_chaining", runner: RunnerAVA, text: "test?.serial?.only('x', () => {})", expected: true},
		{name: "marker_in_comment", runner: RunnerJasmine, text: "// remember to remove fit before merging", expected: true},
		{name: "no_marker", runner: RunnerJasmine, text: "describe('x', () => { it('y', () => {}) })", expected: false},
		{name: "other_runner_marker", runner: RunnerAVA, text: "fdescribe(() => {})", expected: false},
		{name: "empty_text", runner: RunnerJest, text: "", expected: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			profile, _ := ProfileFor(testCase.runner)
			if actual := profile.PossibleMatches([]byte(testCase.text)); actual != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, actual)
			}
		})
	}
}
