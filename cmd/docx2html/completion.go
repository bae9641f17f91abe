package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docx2html/internal/assets"
	"github.com/alnah/go-docx2html/internal/locale"
	"github.com/alnah/go-docx2html/internal/postprocess"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var supportedShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.docx")
	TakesDir    bool     // accepts a directory argument
	Args        []string // fixed values for the first argument
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		// Enum flags
		"style":  {Values: assets.StyleNames()},
		"lang":   {Values: locale.Supported()},
		"nav":    {Values: []string{postprocess.NavGrouped, postprocess.NavFlat}},
		"passes": {Values: postprocess.DefaultPassNames()},

		// File flags with glob patterns
		"config":   {FileGlob: "*.yaml,*.yml"},
		"template": {FileGlob: "*.html"},

		// Directory flags
		"output":     {IsDir: true},
		"asset-path": {IsDir: true},
		"sources":    {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// flagsOf runs a flag registration against a throwaway FlagSet.
func flagsOf[T any](name string, register func(*flag.FlagSet, *T)) []flagDef {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	register(fs, new(T))
	return extractFlagsFromFlagSet(fs)
}

// getCommands returns the command registry for completion.
// Flags are extracted from the same registrations the parsers use.
func getCommands() []commandDef {
	names := []string{"convert", "watch", "restyle", "review", "doctor", "version", "help", "completion"}

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Generate session guides from Word documents",
			Flags:       flagsOf("convert", registerConvertFlags),
			TakesFiles:  true,
			FilePattern: "*.docx,*.md",
		},
		{
			Name:     "watch",
			Desc:     "Rebuild guides when documents change",
			Flags:    flagsOf("watch", registerWatchFlags),
			TakesDir: true,
		},
		{
			Name:     "restyle",
			Desc:     "Re-apply styling passes to existing guides",
			Flags:    flagsOf("restyle", registerRestyleFlags),
			TakesDir: true,
		},
		{
			Name:     "review",
			Desc:     "Check generated guides and report a quality score",
			Flags:    flagsOf("review", registerReviewFlags),
			TakesDir: true,
		},
		{
			Name:  "doctor",
			Desc:  "Check the system for PDF export",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print the report as JSON"}},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: names,
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: supportedShells,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(cmds)
	case ShellZsh:
		script = zshScript(cmds)
	case ShellFish:
		script = fishScript(cmds)
	case ShellPowerShell:
		script = powerShellScript(cmds)
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(supportedShells, ", "))
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2html completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(docx2html completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(docx2html completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    docx2html completion fish > ~/.config/fish/completions/docx2html.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    docx2html completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Script generators
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagWords lists "--long" and "-s" spellings.
func flagWords(flags []flagDef) []string {
	var out []string
	for _, f := range flags {
		out = append(out, "--"+f.Long)
		if f.Short != "" {
			out = append(out, "-"+f.Short)
		}
	}
	return out
}

func globs(pattern string) []string {
	return splitList(pattern)
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for docx2html\n\n")
	b.WriteString("_docx2html_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Args) > 0 {
			b.WriteString("            if [[ ${COMP_CWORD} -eq 2 ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Args, " "))
			b.WriteString("            fi\n")
			b.WriteString("            ;;\n")
			continue
		}

		b.WriteString("            case \"$prev\" in\n")
		for _, f := range c.Flags {
			reply := ""
			switch f.Type {
			case flagEnum:
				reply = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(f.Values, " "))
			case flagDir:
				reply = "COMPREPLY=($(compgen -d -- \"$cur\"))"
			case flagFile:
				var parts []string
				for _, g := range globs(f.FileGlob) {
					parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"$cur\")", g))
				}
				reply = "COMPREPLY=(" + strings.Join(parts, " ") + " $(compgen -d -- \"$cur\"))"
			case flagString, flagInt:
				// free-form value: offer nothing
			default:
				continue
			}
			words := "--" + f.Long
			if f.Short != "" {
				words += "|-" + f.Short
			}
			if reply != "" {
				reply += "; "
			}
			fmt.Fprintf(&b, "                %s) %sreturn ;;\n", words, reply)
		}
		b.WriteString("            esac\n")

		b.WriteString("            if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		switch {
		case c.TakesFiles:
			var parts []string
			for _, g := range globs(c.FilePattern) {
				parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"$cur\")", g))
			}
			b.WriteString("            else\n")
			fmt.Fprintf(&b, "                COMPREPLY=(%s $(compgen -d -- \"$cur\"))\n", strings.Join(parts, " "))
		case c.TakesDir:
			b.WriteString("            else\n")
			b.WriteString("                COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		}
		b.WriteString("            fi\n")
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _docx2html_completions docx2html\n")
	return b.String()
}

// zshQuote escapes text placed inside a single-quoted _arguments spec.
var zshQuote = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef docx2html\n\n")
	b.WriteString("_docx2html() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshQuote.Replace(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Args) == 0 && len(c.Flags) == 0 && !c.TakesFiles && !c.TakesDir {
			b.WriteString("            ;;\n")
			continue
		}
		b.WriteString("            _arguments -s")
		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagEnum:
				action = ":value:(" + strings.Join(f.Values, " ") + ")"
			case flagDir:
				action = ":directory:_files -/"
			case flagFile:
				action = ":file:_files -g \"" + strings.Join(globs(f.FileGlob), " ") + "\""
			case flagString, flagInt:
				action = ":value: "
			}
			desc := "[" + zshQuote.Replace(f.Desc) + "]"
			if f.Short != "" {
				fmt.Fprintf(&b, " \\\n                '(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
			} else {
				fmt.Fprintf(&b, " \\\n                '--%s%s%s'", f.Long, desc, action)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n                '1:argument:(%s)'", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, " \\\n                '*:file:_files -g \"%s\"'", strings.Join(globs(c.FilePattern), " "))
		case c.TakesDir:
			b.WriteString(" \\\n                '1:directory:_files -/'")
		}
		b.WriteString("\n            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _docx2html docx2html\n")
	return b.String()
}

// fishQuote escapes text placed inside fish single quotes.
var fishQuote = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for docx2html\n\n")
	b.WriteString("function __fish_docx2html_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_docx2html_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c docx2html -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c docx2html -n __fish_docx2html_needs_command -a %s -d '%s'\n", c.Name, fishQuote.Replace(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_docx2html_using_command %s'", c.Name)
		b.WriteString("\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c docx2html %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -l %s", f.Long)
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -r -f -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				b.WriteString(" -r -f -a '(__fish_complete_directories)'")
			case flagFile:
				b.WriteString(" -r -F")
			case flagString, flagInt:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishQuote.Replace(f.Desc))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c docx2html %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c docx2html %s -F\n", cond)
		case c.TakesDir:
			fmt.Fprintf(&b, "complete -c docx2html %s -a '(__fish_complete_directories)'\n", cond)
		}
	}
	return b.String()
}

// psQuote escapes text placed inside PowerShell single quotes.
var psQuote = strings.NewReplacer("'", "''")

func psList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + psQuote.Replace(v) + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# powershell completion for docx2html\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName docx2html -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psQuote.Replace(c.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) > 0 {
			fmt.Fprintf(&b, "        '%s' = %s\n", c.Name, psList(flagWords(c.Flags)))
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $arguments = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        '%s' = %s\n", c.Name, psList(c.Args))
		}
	}
	b.WriteString("    }\n")

	seen := map[string]bool{}
	b.WriteString("    $values = @{\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			fmt.Fprintf(&b, "        '--%s' = %s\n", f.Long, psList(f.Values))
			if f.Short != "" {
				fmt.Fprintf(&b, "        '-%s' = %s\n", f.Short, psList(f.Values))
			}
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString(`    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })
    if ($wordToComplete -and $words.Count -gt 1) {
        $words = $words[0..($words.Count - 2)]
    }

    if ($words.Count -le 1) {
        $commands.Keys | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $commands[$_])
        }
        return
    }

    $cmd = $words[1]
    $prev = $words[-1]

    if ($values.ContainsKey($prev)) {
        $values[$prev] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($words.Count -eq 2 -and $arguments.ContainsKey($cmd)) {
        $arguments[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    if ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {
        $flags[$cmd] | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)
        }
    }
}
`)
	return b.String()
}
