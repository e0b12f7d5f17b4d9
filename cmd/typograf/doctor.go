package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	typograf "github.com/alnah/go-typograf"
	"github.com/alnah/go-typograf/internal/config"
	"github.com/alnah/go-typograf/internal/hints"
)

// Doctor defaults.
const (
	doctorTimeout = 10 * time.Second
	doctorProbe   = `"Hello" - world`
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string      `json:"status"` // "ready", "warnings", "errors"
	Config    configInfo  `json:"config"`
	Service   serviceInfo `json:"service"`
	Env       envInfo     `json:"environment"`
	Clipboard bool        `json:"clipboard"`
	Warnings  []string    `json:"warnings,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
}

// configInfo describes the configuration in effect.
type configInfo struct {
	Source string `json:"source"` // config name/path, or "defaults"
	Valid  bool   `json:"valid"`
}

// serviceInfo holds the endpoint probe results.
type serviceInfo struct {
	Endpoint  string `json:"endpoint"`
	Reachable bool   `json:"reachable"`
	Latency   string `json:"latency,omitempty"`
	Sample    string `json:"sample,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Proxy         bool   `json:"proxy"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json     bool
	config   string
	endpoint string
	timeout  time.Duration
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &doctorFlags{}
	fs.BoolVar(&f.json, "json", false, "output JSON")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.endpoint, "endpoint", "", "typography service URL")
	fs.DurationVarP(&f.timeout, "timeout", "t", doctorTimeout, "probe timeout")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor(ctx, f, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, f *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg := checkConfig(result, f.config)
	if f.endpoint != "" {
		cfg.Service.Endpoint = f.endpoint
	}
	checkService(ctx, result, cfg, f.timeout)
	checkEnvironment(result)
	checkClipboard(result, env)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig resolves the config the process command would use.
// Falls back to defaults on error so the service can still be probed.
func checkConfig(result *doctorResult, name string) *config.Config {
	if name == "" {
		name = os.Getenv("TYPOGRAF_CONFIG")
	}
	result.Config.Source = "defaults"
	if name == "" {
		result.Config.Valid = true
		return config.DefaultConfig()
	}

	result.Config.Source = name
	cfg, err := resolveConfig(name)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return config.DefaultConfig()
	}
	result.Config.Valid = true
	return cfg
}

// checkService sends a tiny text to the endpoint.
func checkService(ctx context.Context, result *doctorResult, cfg *config.Config, timeout time.Duration) {
	result.Service.Endpoint = cfg.Service.Endpoint
	if timeout <= 0 {
		timeout = doctorTimeout
	}

	conv, err := typograf.NewConverter(
		typograf.WithEndpoint(cfg.Service.Endpoint),
		typograf.WithTimeout(timeout),
	)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	defer conv.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	res, err := conv.Convert(ctx, typograf.Input{
		Text:    doctorProbe,
		Options: &typograf.Options{Format: typograf.FormatUnicode},
	})
	if err != nil {
		result.Errors = append(result.Errors, "Service probe failed: "+withServiceHint(err, cfg.Service.Endpoint).Error())
		return
	}

	result.Service.Reachable = true
	result.Service.Latency = time.Since(start).Round(time.Millisecond).String()
	result.Service.Sample = res.Text
}

// checkEnvironment detects container, CI and proxy settings.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	for _, v := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"} {
		if os.Getenv(v) != "" {
			result.Env.Proxy = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkClipboard reports whether --copy can work.
func checkClipboard(result *doctorResult, env *Environment) {
	result.Clipboard = env.ClipboardAvailable()
	if !result.Clipboard {
		result.Warnings = append(result.Warnings, "Clipboard unavailable, --copy will not work"+hints.ForClipboard())
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "typograf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Source: %s\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Service")
	fmt.Fprintf(w, "  Endpoint: %s\n", r.Service.Endpoint)
	if r.Service.Reachable {
		fmt.Fprintf(w, "  [OK] Reachable (%s)\n", r.Service.Latency)
		fmt.Fprintf(w, "  [OK] Sample: %s\n", r.Service.Sample)
	} else {
		fmt.Fprintln(w, "  [ERROR] Not reachable")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.Env.Proxy {
		fmt.Fprintln(w, "  [OK] Proxy: configured")
	}
	if r.Clipboard {
		fmt.Fprintln(w, "  [OK] Clipboard: available")
	} else {
		fmt.Fprintln(w, "  [WARN] Clipboard: unavailable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
