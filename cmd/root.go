package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/logrusorgru/aurora"
	"github.com/pders01/git-header/internal/config"
	"github.com/pders01/git-header/internal/git"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "git-header",
	Short: "Generate a C version header from git working tree state",
	Long: `git-header inspects the current git working tree (branch, commit,
nearest tag, dirty files) and derives a deterministic version string:

  1.0.0                          HEAD is tagged v1.0.0, tree clean
  1.0.0-next-394f973-20220605    three commits past the tag
  394f973-20220605-dirty         no tag reachable, uncommitted changes

The generate command embeds that state in a C header so native builds
get reproducible provenance strings without a scripting runtime.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/git-header/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "git-header")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("git.path", "git")
	viper.SetDefault("output.path", "version.h")
	viper.SetDefault("format.clang_format", false)
	viper.SetDefault("format.clang_format_path", "clang-format")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newGitClient builds an inspector from per-command flags, falling back
// to configured defaults.
func newGitClient(gitPath, repoPath string) *git.Client {
	if gitPath == "" {
		gitPath = config.GetGitPath()
	}
	return git.NewClient(gitPath, repoPath)
}
