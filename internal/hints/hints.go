// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-typograf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForServiceCall returns hints for failed service calls.
// Suggests proxy settings in CI/containers and checking a custom endpoint.
func ForServiceCall(endpoint, defaultEndpoint string) string {
	var hints []string

	host := endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		host = u.Host
	}
	hints = append(hints, "check network access to "+host)

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""
	if (inCI || IsInContainer()) && os.Getenv("HTTPS_PROXY") == "" && os.Getenv("https_proxy") == "" {
		hints = append(hints, "set HTTPS_PROXY if outbound traffic goes through a proxy")
	}

	if endpoint != defaultEndpoint {
		hints = append(hints, "verify --endpoint (default "+defaultEndpoint+")")
	}

	return formatHints(hints)
}

// ForInvalidResponse returns a hint for replies without a result element.
func ForInvalidResponse() string {
	return format("the service may be down, or --endpoint does not point to a Typograf SOAP service")
}

// ForTimeout returns a hint about increasing timeout for slow requests.
func ForTimeout() string {
	return format("for long texts or slow networks, use --timeout or --retries")
}

// ForTruncation returns a hint for inputs cut to the length limit.
func ForTruncation(limit int) string {
	return format(fmt.Sprintf("split the text into files under %d characters and process the directory", limit))
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-typograf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-typograf") || strings.Contains(p, `go-typograf\`) {
			hint += " or create " + p
			break
		}
	}
	hint += " (typograf config prints a template)"

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForClipboard returns hints when the system clipboard is unavailable.
func ForClipboard() string {
	if IsInContainer() {
		return format("no clipboard inside containers; use -o FILE instead of --copy")
	}
	if runtime.GOOS == "linux" {
		return format("install xclip, xsel or wl-clipboard")
	}
	return ""
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
