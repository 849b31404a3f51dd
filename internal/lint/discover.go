package lint

import (
	"io/fs"
	"path/filepath"

	"github.com/temirov/nofocus/internal/syntax"
	"github.com/temirov/nofocus/internal/types"
	"github.com/temirov/nofocus/internal/utils"
)

// Discover returns the lintable files of one validated path in lexical walk order.
// A file argument is kept whenever its extension is supported. Directories are walked
// recursively, skipping always excluded directories and paths matching ignorePatterns.
func Discover(root types.ValidatedPath, ignorePatterns []string) ([]string, error) {
	if !root.IsDir {
		if _, supported := syntax.LanguageForPath(root.AbsolutePath); supported {
			return []string{root.AbsolutePath}, nil
		}
		return nil, nil
	}

	var discovered []string
	walkFunction := func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if currentPath == root.AbsolutePath {
			return nil
		}
		relativePath := utils.RelativePathOrSelf(currentPath, root.AbsolutePath)
		if directoryEntry.IsDir() {
			if utils.IsAlwaysExcludedDirectory(directoryEntry.Name()) || utils.ShouldIgnoreByPath(relativePath, ignorePatterns) {
				return filepath.SkipDir
			}
			return nil
		}
		if !directoryEntry.Type().IsRegular() {
			return nil
		}
		if _, supported := syntax.LanguageForPath(currentPath); !supported {
			return nil
		}
		if utils.ShouldIgnoreByPath(relativePath, ignorePatterns) {
			return nil
		}
		discovered = append(discovered, currentPath)
		return nil
	}

	if walkError := filepath.WalkDir(root.AbsolutePath, walkFunction); walkError != nil {
		return nil, walkError
	}
	return discovered, nil
}
