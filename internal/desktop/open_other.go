//go:build !darwin && !windows

package desktop

func openCommand(url string) (string, []string) {
	return "xdg-open", []string{url}
}
