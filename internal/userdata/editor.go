package userdata

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Editor returns the user's editor command split into fields. $VISUAL wins
// over $EDITOR; the fallback is notepad on Windows and vi elsewhere.
func Editor() []string {
	for _, v := range []string{"VISUAL", "EDITOR"} {
		if f := strings.Fields(os.Getenv(v)); len(f) > 0 {
			return f
		}
	}
	if runtime.GOOS == "windows" {
		return []string{"notepad"}
	}
	return []string{"vi"}
}

// OpenEditor opens filePath in the user's editor and waits for it to exit.
func OpenEditor(filePath string) error {
	editor := Editor()
	cmd := exec.Command(editor[0], append(editor[1:], filePath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor %s: %w", editor[0], err)
	}
	return nil
}
