package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/temirov/nofocus/internal/utils"
)

const (
	environmentPrefix  = "NOFOCUS"
	keyLintRunner      = "lint.runner"
	keyLintSuffix      = "lint.suffix"
	keyLintFormat      = "lint.format"
	keyLintJobs        = "lint.jobs"
	keyLintCopy        = "lint.copy"
	environmentKeyPath = "."
	environmentKeyWord = "_"

	environmentValueFormat = "invalid value in %s: %w"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// SkipEnvironment disables NOFOCUS_* environment overrides.
	SkipEnvironment bool
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Lint LintConfiguration `mapstructure:"lint"`
}

// LintConfiguration defines defaults for the lint command.
type LintConfiguration struct {
	Runner string            `mapstructure:"runner"`
	Suffix string            `mapstructure:"suffix"`
	Format string            `mapstructure:"format"`
	Jobs   *int              `mapstructure:"jobs"`
	Copy   *bool             `mapstructure:"copy"`
	Paths  PathConfiguration `mapstructure:"paths"`
}

// PathConfiguration configures inclusion and exclusion rules for path traversal.
type PathConfiguration struct {
	Exclude       []string `mapstructure:"exclude"`
	UseGitignore  *bool    `mapstructure:"use_gitignore"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore"`
}

// LoadApplicationConfiguration loads configuration from the global file, the local file
// and the environment, later sources overriding earlier ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if options.ExplicitFilePath != "" {
		if _, statErr := os.Stat(localPath); statErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("configuration file %s: %w", localPath, statErr)
		}
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	if !options.SkipEnvironment {
		environmentConfig, environmentErr := loadEnvironmentConfiguration()
		if environmentErr != nil {
			return ApplicationConfiguration{}, environmentErr
		}
		merged = merged.Merge(environmentConfig)
	}

	merged.Lint.Paths.Exclude = utils.DeduplicatePatterns(merged.Lint.Paths.Exclude)
	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.LocalConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// loadEnvironmentConfiguration reads NOFOCUS_LINT_* variables such as NOFOCUS_LINT_RUNNER.
// Values that do not convert to the key's type are rejected.
func loadEnvironmentConfiguration() (ApplicationConfiguration, error) {
	reader := viper.New()
	reader.SetEnvPrefix(environmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer(environmentKeyPath, environmentKeyWord))
	for _, key := range []string{keyLintRunner, keyLintSuffix, keyLintFormat, keyLintJobs, keyLintCopy} {
		_ = reader.BindEnv(key)
	}

	var config ApplicationConfiguration
	config.Lint.Runner = reader.GetString(keyLintRunner)
	config.Lint.Suffix = reader.GetString(keyLintSuffix)
	config.Lint.Format = reader.GetString(keyLintFormat)
	if reader.IsSet(keyLintJobs) {
		jobs, convertErr := cast.ToIntE(reader.Get(keyLintJobs))
		if convertErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf(environmentValueFormat, environmentVariableName(keyLintJobs), convertErr)
		}
		config.Lint.Jobs = &jobs
	}
	if reader.IsSet(keyLintCopy) {
		copyEnabled, convertErr := cast.ToBoolE(reader.Get(keyLintCopy))
		if convertErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf(environmentValueFormat, environmentVariableName(keyLintCopy), convertErr)
		}
		config.Lint.Copy = &copyEnabled
	}
	return config, nil
}

func environmentVariableName(key string) string {
	return environmentPrefix + environmentKeyWord + strings.ToUpper(strings.ReplaceAll(key, environmentKeyPath, environmentKeyWord))
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Lint = result.Lint.merge(override.Lint)
	return result
}

func (config LintConfiguration) merge(override LintConfiguration) LintConfiguration {
	result := config
	if override.Runner != "" {
		result.Runner = override.Runner
	}
	if override.Suffix != "" {
		result.Suffix = override.Suffix
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != nil {
		result.Jobs = cloneInt(override.Jobs)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
