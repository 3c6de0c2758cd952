// Package browser opens URLs with the platform's default handler.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// command returns the argv that opens url on goos.
func command(goos, url string) ([]string, error) {
	switch goos {
	case "darwin":
		return []string{"open", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open", url}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// Open starts the default browser on url without waiting for it to exit.
func Open(url string) error {
	argv, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := exec.Command(argv[0], argv[1:]...).Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
