package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elemtrack <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate    Fetch sample data and write the HTML report")
	fmt.Fprintln(w, "  publish     Pull, generate, commit, and push the report")
	fmt.Fprintln(w, "  doctor      Check the local setup")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'elemtrack help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elemtrack generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fetch sample data from the configured endpoint and write the")
	fmt.Fprintln(w, "periodic table HTML report.")
	fmt.Fprintln(w)
	printGenerateFlagGroups(w)
}

// printGenerateFlagGroups prints the flag groups shared by generate and publish.
func printGenerateFlagGroups(w io.Writer) {
	fmt.Fprintln(w, "Endpoint:")
	fmt.Fprintln(w, "      --api-url <url>       Apps Script web app URL (.../exec)")
	fmt.Fprintln(w, "      --id <s>              Spreadsheet ID (passed as ?id=)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Endpoint timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML path")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w, "      --notes <path>        Markdown file for the notes panel")
	fmt.Fprintln(w, "      --style <name>        CSS style name")
	fmt.Fprintln(w, "      --date <s>            Footer date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --dump-json <path>    Also write the raw payload JSON")
	fmt.Fprintln(w, "      --preview <path>      Also capture a PNG preview (needs Chrome)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
	fmt.Fprintln(w, "      --plain               Plain progress output (no bars)")
}

// printPublishUsage prints usage for the publish command.
func printPublishUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elemtrack publish [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the full pipeline: git pull, generate the report, commit it,")
	fmt.Fprintln(w, "and push. Stops at the first failing stage. When the regenerated")
	fmt.Fprintln(w, "report matches the committed one, commit and push are skipped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Git:")
	fmt.Fprintln(w, "      --repo <dir>          Repository directory (default: current)")
	fmt.Fprintln(w, "      --remote <name>       Git remote")
	fmt.Fprintln(w, "      --branch <name>       Git branch")
	fmt.Fprintln(w, "  -m, --message <s>         Commit message")
	fmt.Fprintln(w, "      --no-pull             Skip git pull")
	fmt.Fprintln(w, "      --no-push             Skip git push")
	fmt.Fprintln(w)
	printGenerateFlagGroups(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elemtrack doctor [--json] [-c <config>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check git, configuration, the external generator, and Chrome.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "publish":
		printPublishUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: elemtrack version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: elemtrack help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
