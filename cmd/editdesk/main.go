package main

import (
	"os"
	"strings"

	"editdesk-cli/internal/cli"
)

func isQuickAdd(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "+") && len(s) > 1
}

func rewriteQuickAddArgs(argv []string) []string {
	// Convenience: `editdesk +call the printer` works like `editdesk tasks add call the printer`.
	//
	// Persistent flags may come first (`editdesk --dir ... +text`), so look for the first
	// positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--server":    true,
		"--storage":   true,
		"--format":    true,
		"--log-level": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isQuickAdd(argv[i+1]) {
				return quickAdd(argv, i+1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isQuickAdd(a) {
			return quickAdd(argv, i)
		}
		return argv
	}
	return argv
}

func quickAdd(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:at]...)
	out = append(out, "tasks", "add", strings.TrimPrefix(strings.TrimSpace(argv[at]), "+"))
	out = append(out, argv[at+1:]...)
	return out
}

func main() {
	os.Args = rewriteQuickAddArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
