package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: exam2qti <exam.txt>... [flags]")
	fmt.Fprintln(w, "       exam2qti <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert exam files to QTI packages (default)")
	fmt.Fprintln(w, "  report     Render a printable report from a QTI package")
	fmt.Fprintln(w, "  inspect    Show how exam files are parsed, without writing")
	fmt.Fprintln(w, "  doctor     Check the environment for PDF reports")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'exam2qti help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by every command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug diagnostics")
}

// printParseUsage prints the exam parsing flags.
func printParseUsage(w io.Writer) {
	fmt.Fprintln(w, "Parsing:")
	fmt.Fprintln(w, "      --points <n>          Default points per question (default 2)")
	fmt.Fprintln(w, "      --topic <s>           Default topic per question (default \"??\")")
	fmt.Fprintln(w, "      --images <a,b>        Image folders next to the exam (default images,pics)")
	fmt.Fprintln(w)
}

// printReportFlagsUsage prints the report flags.
func printReportFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "      --style <name>        Report style: default, compact")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --pdf                 Print the report to PDF (needs Chrome)")
	fmt.Fprintln(w, "      --no-answer-key       Do not mark correct answers")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: exam2qti [convert] <exam.txt>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert exam files to normalized quiz text and QTI zip packages.")
	fmt.Fprintln(w, "Writes <name>_t2q.txt and <name>_t2q.zip next to each exam.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to the exam)")
	fmt.Fprintln(w, "      --suffix <s>          Output name suffix (default \"_t2q\")")
	fmt.Fprintln(w, "      --no-package          Write the normalized text only")
	fmt.Fprintln(w, "      --report              Also write a printable HTML report")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printParseUsage(w)
	printReportFlagsUsage(w)
	printCommonUsage(w)
}

// printReportUsage prints usage for the report command.
func printReportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: exam2qti report <quiz.zip>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render QTI packages as printable HTML (or PDF with --pdf).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to the package)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printReportFlagsUsage(w)
	printCommonUsage(w)
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: exam2qti inspect <exam.txt>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse exam files and print their questions without writing files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --yaml                Print parsed questions as YAML")
	fmt.Fprintln(w)
	printParseUsage(w)
	printCommonUsage(w)
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
	case "report":
		printReportUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: exam2qti doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome and the environment for PDF reports.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: exam2qti version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: exam2qti help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
