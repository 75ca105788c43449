package cmd

import (
	"fmt"

	"github.com/pders01/git-header/internal/version"
	"github.com/spf13/cobra"
)

var (
	versionRepo string
	versionGit  string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print only the composed version string",
	Long: `Print the version string derived from the current repository state,
with no other output. Useful from shell scripts and build systems:

  CFLAGS += -DVERSION_STRING=\"$(shell git-header version)\"`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionRepo, "repo", "C", "", "Path to git repository (default current directory)")
	versionCmd.Flags().StringVar(&versionGit, "git", "", "Path to git executable")
}

func runVersion(cmd *cobra.Command, args []string) error {
	client := newGitClient(versionGit, versionRepo)

	snapshot, err := client.Inspect()
	if err != nil {
		return err
	}

	fmt.Println(version.Compose(snapshot))

	return nil
}
