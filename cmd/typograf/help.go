package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: typograf [process] [flags] [file|dir|-]")
	fmt.Fprintln(w, "       typograf <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  process    Apply typography rules to text (default)")
	fmt.Fprintln(w, "  doctor     Check configuration and service reachability")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'typograf help <command>' for details on a specific command.")
}

// printProcessUsage prints usage for the process command.
func printProcessUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: typograf [process] [flags] [file|dir|-]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Apply typography rules to text through the Typograf service.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file     Text, HTML or Markdown file; result goes to stdout")
	fmt.Fprintln(w, "  dir      Directory processed recursively (.txt, .html, .htm, .md);")
	fmt.Fprintln(w, "           each result is written as NAME.typograf.EXT")
	fmt.Fprintln(w, "  -        Read stdin (also used when input is piped)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "      --text <s>            Text to process")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, or directory for batches")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w, "      --preview             Also print the result as plain text")
	fmt.Fprintln(w, "      --copy                Copy the result to the clipboard")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Typography:")
	fmt.Fprintln(w, "      --quotes1 <style>     First-level quotes (default french)")
	fmt.Fprintln(w, "      --quotes2 <style>     Nested quotes (default german)")
	fmt.Fprintln(w, "                            Styles: french, german, english-double,")
	fmt.Fprintln(w, "                            programmer, english-single")
	fmt.Fprintln(w, "  -f, --format <s>          Entities: named, numeric, unicode")
	fmt.Fprintln(w, "      --max-nobr <n>        Keep words up to n letters unbroken")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markup:")
	fmt.Fprintln(w, "      --br                  Mark line breaks")
	fmt.Fprintln(w, "      --br-tag <s>          Line break delimiter (default \"<br />\")")
	fmt.Fprintln(w, "      --p                   Wrap paragraphs")
	fmt.Fprintln(w, "      --p-open <s>          Paragraph opening (default \"<p>\")")
	fmt.Fprintln(w, "      --p-close <s>         Paragraph closing (default \"</p>\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Service:")
	fmt.Fprintln(w, "      --endpoint <url>      Typograf SOAP endpoint")
	fmt.Fprintln(w, "  -t, --timeout <d>         Request timeout (e.g., 10s, 1m)")
	fmt.Fprintln(w, "      --retries <n>         Retries for failed requests (0-10)")
	fmt.Fprintln(w, "      --rate-limit <f>      Max requests per second (0 = unlimited)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TYPOGRAF_CONFIG, TYPOGRAF_ENDPOINT, TYPOGRAF_TIMEOUT, TYPOGRAF_RETRIES,")
	fmt.Fprintln(w, "  TYPOGRAF_RATE_LIMIT, TYPOGRAF_WORKERS, TYPOGRAF_QUOTES1, TYPOGRAF_QUOTES2,")
	fmt.Fprintln(w, "  TYPOGRAF_FORMAT, TYPOGRAF_OUTPUT_DIR")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: typograf doctor [--json] [-c NAME] [--endpoint URL] [-t DURATION]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check configuration, probe the service and report clipboard support.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: typograf config [-c NAME]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML. Without --config this is")
	fmt.Fprintln(w, "the default configuration, ready to be saved and edited.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "process":
		printProcessUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: typograf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: typograf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
