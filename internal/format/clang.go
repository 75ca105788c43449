package format

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

// Clang runs clang-format in place on the given file. The command runs
// from the file's directory so the nearest .clang-format config applies.
func Clang(clangFormat, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	cmd := exec.Command(clangFormat, "-i", filepath.Base(abs))
	cmd.Dir = filepath.Dir(abs)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("clang-format failed: %s: %w", string(output), err)
	}
	return nil
}
