//go:build darwin

package desktop

func openCommand(url string) (string, []string) {
	return "open", []string{url}
}
