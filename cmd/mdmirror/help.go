package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmirror <command> [flags] [args]")
	fmt.Fprintln(w, "       mdmirror -d <docs> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Mirror a directory of markdown documents as PDFs (default)")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check the browser and system setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdmirror help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmirror convert [<docs>] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every .md file under <docs> to PDF, keeping the directory layout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -d, --docs <dir>          Input directory (or first argument)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default <docs>-pdf)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine-config <dir> Engine config directory (default $TMPDIR/.mdmirror)")
	fmt.Fprintln(w, "      --theme <s>           Preview theme: github-light, github-dark, plain")
	fmt.Fprintln(w, "      --code-theme <s>      Code block theme (chroma style, default github)")
	fmt.Fprintln(w, "      --no-background       Do not print background colors")
	fmt.Fprintln(w, "      --no-scripts          Strip raw HTML and disable page scripts")
	fmt.Fprintln(w, "      --settle-delay <d>    Extra wait after the page is ready")
	fmt.Fprintln(w, "      --diagram-server <u>  PlantUML server URL for plantuml code fences")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium executable")
	fmt.Fprintln(w, "      --sandbox             Keep the Chrome sandbox enabled")
	fmt.Fprintln(w, "      --browser-arg <flag>  Extra Chrome flag, repeatable")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show diagnostics and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDMIRROR_CONFIG, MDMIRROR_INPUT_DIR, MDMIRROR_OUTPUT_DIR, MDMIRROR_TIMEOUT,")
	fmt.Fprintln(w, "  MDMIRROR_ENGINE_CONFIG, MDMIRROR_THEME, MDMIRROR_CODE_THEME,")
	fmt.Fprintln(w, "  MDMIRROR_SETTLE_DELAY, MDMIRROR_DIAGRAM_SERVER, MDMIRROR_PAGE_SIZE,")
	fmt.Fprintln(w, "  MDMIRROR_BROWSER_BIN, MDMIRROR_SANDBOX, MDMIRROR_NO_SCRIPTS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmirror config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a run would use, after the config file and")
	fmt.Fprintln(w, "MDMIRROR_* variables are applied. The output is a valid config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --toml                Print TOML instead of YAML")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdmirror doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, the sandbox setting and writable directories.")
	fmt.Fprintln(w, "Exits 1 when a conversion could not run.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdmirror version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdmirror help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
