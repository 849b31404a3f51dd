// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/nofocus/internal/config"
	"github.com/temirov/nofocus/internal/lint"
	"github.com/temirov/nofocus/internal/output"
	"github.com/temirov/nofocus/internal/rule"
	"github.com/temirov/nofocus/internal/services/clipboard"
	"github.com/temirov/nofocus/internal/syntax"
	"github.com/temirov/nofocus/internal/types"
	"github.com/temirov/nofocus/internal/utils"
)

const (
	exclusionFlagName    = "e"
	noGitignoreFlagName  = "no-gitignore"
	noIgnoreFlagName     = "no-ignore"
	runnerFlagName       = "runner"
	suffixFlagName       = "suffix"
	formatFlagName       = "format"
	jobsFlagName         = "jobs"
	copyFlagName         = "copy"
	configFlagName       = "config"
	verboseFlagName      = "verbose"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "nofocus version: {{.Version}}\n"
	defaultPath          = "."
	defaultRunner        = rule.RunnerJest
	rootUse              = "nofocus"
	rootShortDescription = "nofocus command line interface"
	rootLongDescription  = `nofocus finds focused tests that must not be committed.
It understands the focus markers of ava, jasmine, jest and mocha in JavaScript and TypeScript files.
Use --format to select raw, json, or xml output, and --version to print the application version.`
	lintUse                 = "lint [paths...]"
	lintAlias               = "l"
	lintShortDescription    = "report focused tests (" + lintAlias + ")"
	runnersUse              = "runners"
	runnersShortDescription = "list supported runners and their focus markers"
	initUse                 = "init"
	initShortDescription    = "write a default configuration file"

	// lintLongDescription provides detailed help for the lint command.
	lintLongDescription = `Scan files and directories for focused test calls such as describe.only, fit or test.serial.only.
Directories are walked recursively honoring .gitignore and .ignore files; node_modules and .git are never scanned.
The command exits with a non-zero status when a focused test is found.`
	// lintUsageExample demonstrates lint command usage.
	lintUsageExample = `  # Lint the current directory for jest focus markers
  nofocus lint

  # Lint mocha specs only, reporting JSON
  nofocus lint --runner mocha --suffix .spec.ts --format json ./test

  # Exclude fixtures and copy the report to the clipboard
  nofocus lint -e fixtures/ --copy .`

	runnerFlagDescription           = "test runner whose focus markers are reported (ava, jasmine, jest, mocha)"
	suffixFlagDescription           = "only lint files whose name ends with this suffix"
	formatFlagDescription           = "output format"
	jobsFlagDescription             = "number of files analyzed concurrently (0 uses every CPU)"
	exclusionFlagDescription        = "exclude path pattern"
	disableGitignoreFlagDescription = "do not use .gitignore"
	disableIgnoreFlagDescription    = "do not use .ignore"
	copyFlagDescription             = "copy the rendered report to the clipboard"
	configFlagDescription           = "path to a configuration file replacing ./" + utils.LocalConfigFileName
	verboseFlagDescription          = "log debug messages"
	globalFlagDescription           = "write the global configuration instead of the local one"
	forceFlagDescription            = "overwrite an existing configuration file"

	runnerListingFormat         = "%s: %s\n"
	initializedMessageFormat    = "configuration written to %s\n"
	clipboardFailureMessage     = "failed to copy report to clipboard"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid paths"
	// errorNegativeJobsFormat rejects a negative worker count.
	errorNegativeJobsFormat = "jobs must not be negative, got %d"
)

// ErrFocusedTestsFound is returned by the lint command after the report was written
// when at least one focused test was found.
var ErrFocusedTestsFound = errors.New("focused tests found")

// dependencies are the collaborators the commands write to and call into.
type dependencies struct {
	stdout io.Writer
	stderr io.Writer
	copier clipboard.Copier
	parser rule.Parser
	// logger, when nil, is built per command from the --verbose flag.
	logger *zap.Logger
}

// Execute runs the nofocus application.
func Execute() error {
	rootCommand := createRootCommand(dependencies{
		stdout: os.Stdout,
		stderr: os.Stderr,
		copier: clipboard.NewService(),
		parser: syntax.NewParser(),
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(context.Background())
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       utils.DescribeVersion(utils.GetApplicationVersion()),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.SetOut(deps.stdout)
	rootCommand.SetErr(deps.stderr)
	rootCommand.AddCommand(
		createLintCommand(deps),
		createRunnersCommand(deps),
		createInitCommand(deps),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
}

// lintOptions stores the raw flag values of the lint command.
type lintOptions struct {
	paths          pathOptions
	runner         string
	suffix         string
	format         string
	jobs           int
	copyEnabled    bool
	configFilePath string
	verbose        bool
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerBooleanFlag(command.Flags(), &options.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	registerBooleanFlag(command.Flags(), &options.disableIgnoreFile, noIgnoreFlagName, false, disableIgnoreFlagDescription)
}

// createLintCommand returns the lint subcommand.
func createLintCommand(deps dependencies) *cobra.Command {
	var options lintOptions

	lintCommand := &cobra.Command{
		Use:     lintUse,
		Aliases: []string{lintAlias},
		Short:   lintShortDescription,
		Long:    lintLongDescription,
		Example: lintUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			return runLint(command, deps, options, arguments)
		},
	}

	addPathFlags(lintCommand, &options.paths)
	lintCommand.Flags().StringVar(&options.runner, runnerFlagName, string(defaultRunner), runnerFlagDescription)
	lintCommand.Flags().StringVar(&options.suffix, suffixFlagName, "", suffixFlagDescription)
	lintCommand.Flags().StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	lintCommand.Flags().IntVar(&options.jobs, jobsFlagName, 0, jobsFlagDescription)
	lintCommand.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(lintCommand.Flags(), &options.copyEnabled, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(lintCommand.Flags(), &options.verbose, verboseFlagName, false, verboseFlagDescription)
	return lintCommand
}

// runLint resolves settings, lints the requested paths and writes the report.
func runLint(command *cobra.Command, deps dependencies, options lintOptions, arguments []string) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}
	settings, settingsError := resolveLintSettings(command, options, applicationConfiguration.Lint)
	if settingsError != nil {
		return settingsError
	}

	logger := deps.logger
	if logger == nil {
		createdLogger, loggerError := utils.NewApplicationLogger(options.verbose)
		if loggerError != nil {
			return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
		}
		defer createdLogger.Sync()
		logger = createdLogger
	}

	validatedPaths, pathValidationError := resolveAndValidatePaths(arguments)
	if pathValidationError != nil {
		return pathValidationError
	}

	focusRule, ruleError := rule.New(rule.Options{Runner: settings.runner, Suffix: settings.suffix})
	if ruleError != nil {
		return ruleError
	}
	report, lintError := lint.Run(command.Context(), lint.Options{
		Paths:             validatedPaths,
		Rule:              focusRule,
		Parser:            deps.parser,
		ExclusionPatterns: settings.exclusionPatterns,
		UseGitignore:      settings.useGitignore,
		UseIgnoreFile:     settings.useIgnoreFile,
		Jobs:              settings.jobs,
		WorkingDirectory:  workingDirectory,
		Logger:            logger,
	})
	if lintError != nil {
		return lintError
	}

	rendered, renderError := output.Render(settings.format, report)
	if renderError != nil {
		return renderError
	}
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	if _, writeError := io.WriteString(deps.stdout, rendered); writeError != nil {
		return writeError
	}
	if settings.copyEnabled && deps.copier != nil {
		if copyError := deps.copier.Copy(rendered); copyError != nil {
			logger.Warn(clipboardFailureMessage, zap.Error(copyError))
		}
	}
	if report.HasFailures() {
		return ErrFocusedTestsFound
	}
	return nil
}

// createRunnersCommand returns the runners subcommand.
func createRunnersCommand(deps dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   runnersUse,
		Short: runnersShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			for _, runner := range rule.Runners() {
				profile, profileError := rule.ProfileFor(runner)
				if profileError != nil {
					return profileError
				}
				if _, writeError := fmt.Fprintf(deps.stdout, runnerListingFormat, runner, strings.Join(profile.Markers, ", ")); writeError != nil {
					return writeError
				}
			}
			return nil
		},
	}
}

// createInitCommand returns the init subcommand.
func createInitCommand(deps dependencies) *cobra.Command {
	var globalTarget bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(deps.stdout, initializedMessageFormat, destinationPath)
			return writeError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &globalTarget, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveAndValidatePaths converts input paths to absolute form and validates their existence.
func resolveAndValidatePaths(inputs []string) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{AbsolutePath: cleanPath, IsDir: info.IsDir()})
	}
	if len(result) == 0 {
		return nil, errors.New(errorNoValidPaths)
	}
	return result, nil
}
