// Package lint finds focused tests across a set of files. Files are discovered, filtered
// and analyzed concurrently; the report lists them in discovery order.
package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/nofocus/internal/config"
	"github.com/temirov/nofocus/internal/rule"
	"github.com/temirov/nofocus/internal/syntax"
	"github.com/temirov/nofocus/internal/types"
	"github.com/temirov/nofocus/internal/utils"
)

const (
	logFieldPath     = "path"
	logFieldFailures = "failures"
	logFieldFiles    = "files"
	logFieldJobs     = "jobs"
	logFieldReason   = "reason"

	skippedFileMessage   = "skipping file"
	filteredFileMessage  = "file rejected by suffix filter"
	analyzedFileMessage  = "analyzed file"
	startingRunMessage   = "linting files"
	ignorePatternsFormat = "load ignore patterns for %s: %w"
	discoverFormat       = "discover files under %s: %w"
)

// Options configures a lint run.
type Options struct {
	Paths             []types.ValidatedPath
	Rule              *rule.Rule
	Parser            rule.Parser
	ExclusionPatterns []string
	UseGitignore      bool
	UseIgnoreFile     bool
	// Jobs bounds the number of files analyzed at once. Zero or less uses one job per CPU.
	Jobs int
	// WorkingDirectory anchors the paths shown in the report.
	WorkingDirectory string
	Logger           *zap.Logger
}

type fileResult struct {
	displayPath string
	failures    []rule.Failure
	skipReason  string
}

// Run lints every discovered file. Unreadable or unparsable files are logged and counted
// as skipped. Run fails only on configuration problems, walk errors, a missing parser
// backend or cancellation.
func Run(ctx context.Context, options Options) (types.LintReport, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	report := types.LintReport{Runner: string(options.Rule.Profile().Runner), Files: []types.FileReport{}}

	files, collectError := collectFiles(options, logger)
	if collectError != nil {
		return types.LintReport{}, collectError
	}

	jobs := options.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	logger.Debug(startingRunMessage, zap.Int(logFieldFiles, len(files)), zap.Int(logFieldJobs, jobs))

	results := make([]fileResult, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for index, filePath := range files {
		index, filePath := index, filePath
		group.Go(func() error {
			if contextError := groupCtx.Err(); contextError != nil {
				return contextError
			}
			result, analyzeError := analyzeFile(groupCtx, options, filePath)
			if analyzeError != nil {
				return analyzeError
			}
			results[index] = result
			return nil
		})
	}
	if waitError := group.Wait(); waitError != nil {
		return types.LintReport{}, waitError
	}

	for _, result := range results {
		if result.skipReason != "" {
			logger.Warn(skippedFileMessage, zap.String(logFieldPath, result.displayPath), zap.String(logFieldReason, result.skipReason))
			report.Skipped = append(report.Skipped, types.SkippedFile{Path: result.displayPath, Reason: result.skipReason})
			report.Summary.FilesSkipped++
			continue
		}
		report.Summary.FilesScanned++
		logger.Debug(analyzedFileMessage, zap.String(logFieldPath, result.displayPath), zap.Int(logFieldFailures, len(result.failures)))
		if len(result.failures) == 0 {
			continue
		}
		fileReport := types.FileReport{Path: result.displayPath}
		for _, failure := range result.failures {
			fileReport.Failures = append(fileReport.Failures, toFailureOutput(failure))
		}
		report.Files = append(report.Files, fileReport)
		report.Summary.FilesWithFailures++
		report.Summary.FailureCount += len(fileReport.Failures)
	}
	return report, nil
}

// collectFiles discovers the files of every root, drops duplicates and applies the
// suffix filter so that only files the rule accepts are analyzed.
func collectFiles(options Options, logger *zap.Logger) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, root := range options.Paths {
		var ignorePatterns []string
		if root.IsDir {
			patterns, loadError := config.LoadRecursiveIgnorePatterns(root.AbsolutePath, options.ExclusionPatterns, options.UseGitignore, options.UseIgnoreFile)
			if loadError != nil {
				return nil, fmt.Errorf(ignorePatternsFormat, root.AbsolutePath, loadError)
			}
			ignorePatterns = patterns
		}
		discovered, discoverError := Discover(root, ignorePatterns)
		if discoverError != nil {
			return nil, fmt.Errorf(discoverFormat, root.AbsolutePath, discoverError)
		}
		for _, filePath := range discovered {
			if _, duplicate := seen[filePath]; duplicate {
				continue
			}
			seen[filePath] = struct{}{}
			if !options.Rule.Accepts(filePath) {
				logger.Debug(filteredFileMessage, zap.String(logFieldPath, filePath))
				continue
			}
			files = append(files, filePath)
		}
	}
	return files, nil
}

// analyzeFile reads and checks one file. Read and parse problems become a skip reason.
func analyzeFile(ctx context.Context, options Options, filePath string) (fileResult, error) {
	result := fileResult{displayPath: displayPath(filePath, options.WorkingDirectory)}
	// #nosec G304
	source, readError := os.ReadFile(filePath)
	if readError != nil {
		result.skipReason = readError.Error()
		return result, nil
	}
	failures, checkError := options.Rule.Check(ctx, filePath, source, options.Parser)
	if checkError != nil {
		if errors.Is(checkError, syntax.ErrParserUnavailable) {
			return fileResult{}, checkError
		}
		if contextError := ctx.Err(); contextError != nil {
			return fileResult{}, contextError
		}
		result.skipReason = checkError.Error()
		return result, nil
	}
	result.failures = failures
	return result, nil
}

// displayPath renders filePath relative to the working directory when it lies beneath it.
func displayPath(filePath string, workingDirectory string) string {
	if workingDirectory == "" {
		return filePath
	}
	relativePath := utils.RelativePathOrSelf(filePath, workingDirectory)
	if relativePath == ".." || strings.HasPrefix(relativePath, "../") {
		return filePath
	}
	return relativePath
}

func toFailureOutput(failure rule.Failure) types.FailureOutput {
	return types.FailureOutput{
		Rule:    failure.RuleName,
		Marker:  failure.Marker,
		Message: failure.Message,
		Start:   types.Position{Line: failure.Range.Start.Line + 1, Column: failure.Range.Start.Column + 1},
		End:     types.Position{Line: failure.Range.End.Line + 1, Column: failure.Range.End.Column + 1},
	}
}
