package cmd

import (
	"os/exec"
	"runtime"
)

// openViewer hands path to the platform's default image viewer and
// returns without waiting for it.
func openViewer(path string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", path)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		c = exec.Command("xdg-open", path)
	}
	if err := c.Start(); err != nil {
		return err
	}
	return c.Process.Release()
}
