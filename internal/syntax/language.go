package syntax

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
)

// Language identifies the grammar used to parse a file.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
)

var (
	// ErrUnsupportedLanguage indicates a file extension with no grammar.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrParserUnavailable indicates a build without the tree-sitter bindings.
	ErrParserUnavailable = errors.New("syntax parser unavailable: built without cgo")
)

var extensionLanguages = map[string]Language{
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
	".ts":  LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
	".tsx": LanguageTSX,
}

// LanguageForPath resolves the grammar for a file by its extension.
func LanguageForPath(filePath string) (Language, bool) {
	language, known := extensionLanguages[strings.ToLower(filepath.Ext(filePath))]
	return language, known
}

// SupportedExtensions lists every extension the parser accepts, sorted.
func SupportedExtensions() []string {
	extensions := make([]string, 0, len(extensionLanguages))
	for extension := range extensionLanguages {
		extensions = append(extensions, extension)
	}
	sort.Strings(extensions)
	return extensions
}
