package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Generate session guides from Word documents")
	fmt.Fprintln(w, "  watch      Rebuild guides when documents change")
	fmt.Fprintln(w, "  restyle    Re-apply styling passes to existing guides")
	fmt.Fprintln(w, "  review     Check generated guides and report a quality score")
	fmt.Fprintln(w, "  doctor     Check the system for PDF export")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docx2html help <command>' for details on a specific command.")
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate an HTML guide for every session document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .docx/.md file or directory of module folders")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	printConvertFlagHelp(w)
}

func printConvertFlagHelp(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: next to the sources)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --pattern <s>           Guide file name, default session{N}-guide.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --site-name <s>         Site name shown in page titles")
	fmt.Fprintln(w, "  -l, --lang <s>              Interface language: pt, en")
	fmt.Fprintln(w, "      --footer <s>            Footer text; {year}, {date}, {date:FORMAT}")
	fmt.Fprintln(w, "                              Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "      --hub-href <url>        Back link target (default ../../index.html)")
	fmt.Fprintln(w, "      --presentation-href <s> Presentation link; {M} module, {N} session")
	fmt.Fprintln(w, "      --no-download           Omit the link to the source document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <name|path>     CSS style: premium, minimal, or a file")
	fmt.Fprintln(w, "      --template <name|path>  Page template: guide, or a file")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory with styles/ and templates/")
	fmt.Fprintln(w, "      --passes <list>         Post-processing passes, comma-separated")
	fmt.Fprintln(w, "      --nav <s>               Sidebar navigation: grouped, flat")
	fmt.Fprintln(w, "      --group                 Regroup the guide body by category")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exports:")
	fmt.Fprintln(w, "      --markdown              Also write <guide>.md")
	fmt.Fprintln(w, "      --pdf                   Also write <guide>.pdf (headless Chrome)")
	fmt.Fprintln(w, "  -t, --timeout <d>           PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
}

func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2html watch <input-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build every guide, then rebuild guides of changed documents until")
	fmt.Fprintln(w, "interrupted. Accepts all convert flags, plus:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --debounce <d>          Delay before rebuilding (default 500ms)")
	fmt.Fprintln(w)
	printConvertFlagHelp(w)
}

func printRestyleUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2html restyle <guide-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Re-apply post-processing passes to guides already generated.")
	fmt.Fprintln(w, "Guides that are already up to date are left untouched.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -n, --dry-run               Report changes without writing")
	fmt.Fprintln(w, "      --pattern <s>           Guide file name pattern")
	fmt.Fprintln(w, "  -s, --style <name|path>     CSS style to inject")
	fmt.Fprintln(w, "      --passes <list>         Passes to run, comma-separated")
	fmt.Fprintln(w, "      --nav <s>               Sidebar navigation: grouped, flat")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Also list unchanged guides")
}

func printReviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2html review <guide-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check generated guides and print issues, warnings and a score.")
	fmt.Fprintln(w, "Exits with status 1 when issues are found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --sources <dir>         Session documents; reports missing guides")
	fmt.Fprintln(w, "      --min-size <n>          Minimum guide size in bytes (default 1000)")
	fmt.Fprintln(w, "      --min-sections <n>      Minimum h2 sections (default 2)")
	fmt.Fprintln(w, "      --pattern <s>           Guide file name pattern")
	fmt.Fprintln(w, "  -a, --all                   Also list passed checks")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show issues")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "restyle":
		printRestyleUsage(env.Stdout)
	case "review":
		printReviewUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: docx2html doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, container settings, temp directory and assets.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docx2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docx2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
