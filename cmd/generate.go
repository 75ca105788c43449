package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pders01/git-header/internal/config"
	"github.com/pders01/git-header/internal/format"
	"github.com/pders01/git-header/internal/header"
	"github.com/pders01/git-header/internal/version"
	"github.com/spf13/cobra"
)

var (
	generateOutput      string
	generateRepo        string
	generateGit         string
	generateClangFormat bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a version header for the current repository",
	Long: `Inspect the repository, compose the version string and write the
C header. The header defines GIT_BRANCH, GIT_COMMIT, GIT_REPOSITORY,
GIT_TAG (when a tag is reachable), GIT_DIRTY (when the tree has
uncommitted changes), a guarded VERSION_STRING default, and a
git_status_t struct with a git_status() accessor.

The header is written atomically: either the full artifact lands at the
destination or nothing does.

Examples:
  git-header generate
  git-header generate -o build/version.h
  git-header generate -C ../firmware --clang-format`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Target header file (default version.h)")
	generateCmd.Flags().StringVarP(&generateRepo, "repo", "C", "", "Path to git repository (default current directory)")
	generateCmd.Flags().StringVar(&generateGit, "git", "", "Path to git executable")
	generateCmd.Flags().BoolVar(&generateClangFormat, "clang-format", false, "Run clang-format on the generated header")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	client := newGitClient(generateGit, generateRepo)

	snapshot, err := client.Inspect()
	if err != nil {
		return err
	}

	v := version.Compose(snapshot)

	text, err := header.Render(snapshot, v)
	if err != nil {
		return err
	}

	output := generateOutput
	if output == "" {
		output = config.GetOutputPath()
	}

	if err := writeAtomic(output, []byte(text)); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	if generateClangFormat || config.GetClangFormat() {
		if err := format.Clang(config.GetClangFormatPath(), output); err != nil {
			return err
		}
	}

	fmt.Printf("✓ Wrote %s (%s)\n", output, v)

	return nil
}

// writeAtomic stages the header in a temp file next to the destination
// and renames it into place, so a failed run never leaves a partial or
// corrupt artifact behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
