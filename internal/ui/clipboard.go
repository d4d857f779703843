package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"golang.design/x/clipboard"
)

// ClipboardWriter provides cross-platform clipboard access with graceful
// degradation. The native binding is preferred; when it cannot
// initialize (headless sessions, missing X11 libs) it falls back to the
// platform's copy tool.
type ClipboardWriter struct {
	native    bool
	available bool
	errMsg    string
}

// NewClipboardWriter creates a new ClipboardWriter and checks availability.
func NewClipboardWriter() *ClipboardWriter {
	cw := &ClipboardWriter{}
	if err := clipboard.Init(); err == nil {
		cw.native = true
		cw.available = true
		return cw
	}
	cw.checkFallback()
	return cw
}

// checkFallback determines if an external clipboard tool is accessible.
func (cw *ClipboardWriter) checkFallback() {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err != nil {
			cw.errMsg = "pbcopy not found"
			return
		}
		cw.available = true

	case "linux":
		for _, tool := range []string{"xclip", "xsel", "wl-copy"} {
			if _, err := exec.LookPath(tool); err == nil {
				cw.available = true
				return
			}
		}
		cw.errMsg = "clipboard tool not found (install xclip, xsel, or wl-copy)"

	case "windows":
		if _, err := exec.LookPath("clip"); err != nil {
			cw.errMsg = "clip.exe not found"
			return
		}
		cw.available = true

	default:
		cw.errMsg = fmt.Sprintf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsAvailable returns whether clipboard operations are supported.
func (cw *ClipboardWriter) IsAvailable() bool {
	return cw.available
}

// Error returns the reason clipboard is unavailable.
func (cw *ClipboardWriter) Error() string {
	return cw.errMsg
}

// Write copies text to the system clipboard.
func (cw *ClipboardWriter) Write(text string) error {
	if !cw.available {
		return fmt.Errorf("clipboard unavailable: %s", cw.errMsg)
	}

	if cw.native {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")

	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.Command("xsel", "--clipboard", "--input")
		} else {
			cmd = exec.Command("wl-copy")
		}

	case "windows":
		cmd = exec.Command("clip")

	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
