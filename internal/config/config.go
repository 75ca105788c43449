package config

import "github.com/spf13/viper"

// GetGitPath returns the git executable to invoke
func GetGitPath() string {
	return viper.GetString("git.path")
}

// GetOutputPath returns the default header destination
func GetOutputPath() string {
	return viper.GetString("output.path")
}

// GetClangFormat reports whether generated headers should be formatted
func GetClangFormat() bool {
	return viper.GetBool("format.clang_format")
}

// GetClangFormatPath returns the clang-format executable to invoke
func GetClangFormatPath() string {
	return viper.GetString("format.clang_format_path")
}
