// Package config loads nofocus configuration files and the ignore patterns that
// decide which source files are linted.
package config

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/nofocus/internal/utils"
)

// LoadIgnoreFilePatterns reads one ignore file. A missing file yields no patterns.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer fileHandle.Close()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") || strings.HasPrefix(trimmedLine, "!") {
			continue
		}
		ignorePatterns = append(ignorePatterns, strings.TrimPrefix(trimmedLine, "/"))
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// LoadRecursiveIgnorePatterns walks rootDirectoryPath and aggregates the patterns of every
// .ignore and .gitignore file, prefixing each with its directory relative to the root.
// Dependency and version control directories are always excluded and never descended
// into. exclusionPatterns are appended last.
func LoadRecursiveIgnorePatterns(rootDirectoryPath string, exclusionPatterns []string, useGitignore bool, useIgnoreFile bool) ([]string, error) {
	var aggregatedPatterns []string

	walkFunction := func(currentDirectoryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if currentDirectoryPath != rootDirectoryPath && utils.IsAlwaysExcludedDirectory(directoryEntry.Name()) {
			return filepath.SkipDir
		}

		relativeDirectory := utils.RelativePathOrSelf(currentDirectoryPath, rootDirectoryPath)
		prefix := ""
		if relativeDirectory != "." {
			prefix = relativeDirectory + "/"
		}

		var ignoreFileNames []string
		if useIgnoreFile {
			ignoreFileNames = append(ignoreFileNames, utils.IgnoreFileName)
		}
		if useGitignore {
			ignoreFileNames = append(ignoreFileNames, utils.GitIgnoreFileName)
		}
		for _, ignoreFileName := range ignoreFileNames {
			patterns, loadError := LoadIgnoreFilePatterns(filepath.Join(currentDirectoryPath, ignoreFileName))
			if loadError != nil {
				return fmt.Errorf("loading %s from %s: %w", ignoreFileName, currentDirectoryPath, loadError)
			}
			for _, pattern := range patterns {
				aggregatedPatterns = append(aggregatedPatterns, prefix+pattern)
			}
		}
		return nil
	}

	if walkError := filepath.WalkDir(rootDirectoryPath, walkFunction); walkError != nil {
		return nil, walkError
	}

	aggregatedPatterns = append(aggregatedPatterns, utils.AlwaysExcludedPatterns()...)
	for _, pattern := range exclusionPatterns {
		if trimmedPattern := strings.TrimSpace(pattern); trimmedPattern != "" {
			aggregatedPatterns = append(aggregatedPatterns, trimmedPattern)
		}
	}
	return utils.DeduplicatePatterns(aggregatedPatterns), nil
}
