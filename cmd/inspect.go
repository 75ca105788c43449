package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/git-header/internal/models"
	"github.com/pders01/git-header/internal/version"
	"github.com/spf13/cobra"
)

var (
	inspectRepo string
	inspectGit  string
	inspectJSON bool
	inspectToon bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the repository snapshot and derived version",
	Long: `Inspect the repository and print the snapshot the generator would
embed: branch, commit, repository root, nearest tag, dirty files and
the composed version string.

Examples:
  git-header inspect
  git-header inspect --json
  git-header inspect --toon`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectRepo, "repo", "C", "", "Path to git repository (default current directory)")
	inspectCmd.Flags().StringVar(&inspectGit, "git", "", "Path to git executable")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as JSON")
	inspectCmd.Flags().BoolVar(&inspectToon, "toon", false, "Output in LLM-friendly toon format")
}

type inspectReport struct {
	*models.Snapshot
	Version string `json:"version"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	client := newGitClient(inspectGit, inspectRepo)

	snapshot, err := client.Inspect()
	if err != nil {
		return err
	}

	report := inspectReport{
		Snapshot: snapshot,
		Version:  version.Compose(snapshot),
	}

	if inspectJSON {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if inspectToon {
		output, err := gotoon.Encode(report)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	// Human-readable output
	fmt.Printf("branch: %s\n", snapshot.Branch)
	fmt.Printf("commit: %s\n", snapshot.Commit)
	fmt.Printf("repository: %s\n", snapshot.Repository)
	if snapshot.Tagged() {
		fmt.Printf("tag: %s (+%d)\n", snapshot.Tag, snapshot.CommitsSinceTag)
	}
	fmt.Printf("version: %s\n", report.Version)
	if snapshot.IsDirty() {
		fmt.Println("dirty:")
		for _, e := range snapshot.Dirty {
			fmt.Printf("  %s %s\n", e.Code, e.Path)
		}
	}

	return nil
}
