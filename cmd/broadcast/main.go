package main

import (
	"os"
	"strings"

	"broadcast-mode/internal/cli"
)

func isRoute(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "?")
}

func rewriteRouteArgs(argv []string) []string {
	// Convenience: `broadcast /projects?p=x` works like `broadcast open /projects?p=x`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (`broadcast --dir ... /projects`), so find the first
	// positional token rather than looking at argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":     true,
		"--format":  true,
		"--catalog": true,
	}

	insertOpen := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "open")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isRoute(argv[i+1]) {
				return insertOpen(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if isRoute(a) {
			return insertOpen(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteRouteArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
