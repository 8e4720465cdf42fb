package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []string // long flag names with leading --
}

// flagNames extracts long flag names from a FlagSet.
func flagNames(fs *flag.FlagSet) []string {
	var names []string
	fs.VisitAll(func(f *flag.Flag) {
		names = append(names, "--"+f.Name)
	})
	sort.Strings(names)
	return names
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
func getCommands() []commandDef {
	genFS := flag.NewFlagSet("generate", flag.ContinueOnError)
	gen := &generateFlags{}
	addCommonFlags(genFS, &gen.common)
	addEndpointFlags(genFS, &gen.endpoint)
	addReportFlags(genFS, &gen.report)
	addAssetFlags(genFS, &gen.assets)

	pubFS := flag.NewFlagSet("publish", flag.ContinueOnError)
	pub := &publishFlags{}
	addCommonFlags(pubFS, &pub.common)
	addEndpointFlags(pubFS, &pub.endpoint)
	addReportFlags(pubFS, &pub.report)
	addAssetFlags(pubFS, &pub.assets)
	addGitFlags(pubFS, &pub.git)

	return []commandDef{
		{Name: "generate", Desc: "Fetch sample data and write the HTML report", Flags: flagNames(genFS)},
		{Name: "publish", Desc: "Pull, generate, commit, and push the report", Flags: flagNames(pubFS)},
		{Name: "doctor", Desc: "Check the local setup", Flags: []string{"--json", "--config"}},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes a shell completion script to w.
// Returns an error if the shell is unsupported or the write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	fmt.Fprintln(w, "# bash completion for elemtrack")
	fmt.Fprintln(w, "_elemtrack() {")
	fmt.Fprintln(w, "    local cur prev words cword")
	fmt.Fprintln(w, "    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	fmt.Fprintln(w, "    if [[ $COMP_CWORD -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(names, " "))
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w, "    case \"${COMP_WORDS[1]}\" in")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(c.Flags, " "))
		fmt.Fprintln(w, "        ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	_, err := fmt.Fprintln(w, "complete -F _elemtrack elemtrack")
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "#compdef elemtrack")
	fmt.Fprintln(w, "_elemtrack() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w, "    case $words[2] in")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintf(w, "        compadd -- %s\n", strings.Join(c.Flags, " "))
		fmt.Fprintln(w, "        ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	_, err := fmt.Fprintln(w, "_elemtrack \"$@\"")
	return err
}

func generateFish(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# fish completion for elemtrack")
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c elemtrack -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, c.Desc)
		for _, f := range c.Flags {
			fmt.Fprintf(w, "complete -c elemtrack -n '__fish_seen_subcommand_from %s' -l %s\n",
				c.Name, strings.TrimPrefix(f, "--"))
		}
	}
	return nil
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: elemtrack completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash    Bash completion script")
	fmt.Fprintln(w, "  zsh     Zsh completion script")
	fmt.Fprintln(w, "  fish    Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(elemtrack completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(elemtrack completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    elemtrack completion fish > ~/.config/fish/completions/elemtrack.fish")
}
