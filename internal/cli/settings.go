package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/nofocus/internal/config"
	"github.com/temirov/nofocus/internal/output"
	"github.com/temirov/nofocus/internal/rule"
	"github.com/temirov/nofocus/internal/types"
	"github.com/temirov/nofocus/internal/utils"
)

// lintSettings is the effective lint configuration after flags, environment and
// configuration files were merged.
type lintSettings struct {
	runner            rule.Runner
	suffix            string
	format            string
	jobs              int
	copyEnabled       bool
	exclusionPatterns []string
	useGitignore      bool
	useIgnoreFile     bool
}

// resolveLintSettings applies defaults, then configuration, then flags the user set
// explicitly.
func resolveLintSettings(command *cobra.Command, options lintOptions, configuration config.LintConfiguration) (lintSettings, error) {
	flags := command.Flags()
	settings := lintSettings{
		format:        types.FormatRaw,
		useGitignore:  true,
		useIgnoreFile: true,
	}

	runnerName := string(defaultRunner)
	if configuration.Runner != "" {
		runnerName = configuration.Runner
	}
	if flags.Changed(runnerFlagName) {
		runnerName = options.runner
	}
	runner, runnerError := rule.ParseRunner(runnerName)
	if runnerError != nil {
		return lintSettings{}, runnerError
	}
	settings.runner = runner

	settings.suffix = configuration.Suffix
	if flags.Changed(suffixFlagName) {
		settings.suffix = options.suffix
	}

	if configuration.Format != "" {
		settings.format = configuration.Format
	}
	if flags.Changed(formatFlagName) {
		settings.format = options.format
	}
	settings.format = strings.ToLower(strings.TrimSpace(settings.format))
	if !output.IsSupportedFormat(settings.format) {
		return lintSettings{}, fmt.Errorf(output.InvalidFormatMessage, settings.format)
	}

	if configuration.Jobs != nil {
		settings.jobs = *configuration.Jobs
	}
	if flags.Changed(jobsFlagName) {
		settings.jobs = options.jobs
	}
	if settings.jobs < 0 {
		return lintSettings{}, fmt.Errorf(errorNegativeJobsFormat, settings.jobs)
	}

	if configuration.Copy != nil {
		settings.copyEnabled = *configuration.Copy
	}
	if flags.Changed(copyFlagName) {
		settings.copyEnabled = options.copyEnabled
	}

	if configuration.Paths.UseGitignore != nil {
		settings.useGitignore = *configuration.Paths.UseGitignore
	}
	if flags.Changed(noGitignoreFlagName) {
		settings.useGitignore = !options.paths.disableGitignore
	}
	if configuration.Paths.UseIgnoreFile != nil {
		settings.useIgnoreFile = *configuration.Paths.UseIgnoreFile
	}
	if flags.Changed(noIgnoreFlagName) {
		settings.useIgnoreFile = !options.paths.disableIgnoreFile
	}

	settings.exclusionPatterns = utils.DeduplicatePatterns(append(append([]string{}, configuration.Paths.Exclude...), options.paths.exclusionPatterns...))
	return settings, nil
}
