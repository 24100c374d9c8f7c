package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// parseFlags holds the exam parsing overrides shared by convert and inspect.
type parseFlags struct {
	points    int
	pointsSet bool
	topic     string
	images    []string
}

// reportFlags holds report output flags shared by convert and report.
type reportFlags struct {
	style       string
	assetPath   string
	pdf         bool
	noAnswerKey bool
	timeout     string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	parse     parseFlags
	report    reportFlags
	output    string
	suffix    string
	noPackage bool
	html      bool
	workers   int
}

// reportCmdFlags holds all flags for the report command.
type reportCmdFlags struct {
	common  commonFlags
	report  reportFlags
	output  string
	workers int
}

// inspectFlags holds all flags for the inspect command.
type inspectFlags struct {
	common commonFlags
	parse  parseFlags
	yaml   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug diagnostics")
}

// addParseFlags adds exam parsing flags to a FlagSet.
func addParseFlags(fs *flag.FlagSet, f *parseFlags) {
	fs.IntVar(&f.points, "points", 0, "default points per question")
	fs.StringVar(&f.topic, "topic", "", "default topic per question")
	fs.StringSliceVar(&f.images, "images", nil, "image folder names next to the exam, in lookup order")
}

// addReportFlags adds report flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVar(&f.style, "style", "", "report style name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.pdf, "pdf", false, "print the report to PDF")
	fs.BoolVar(&f.noAnswerKey, "no-answer-key", false, "do not mark correct answers")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting and
// prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseArgs parses args and wraps flag errors as usage errors.
// Help requests (usage already printed by the FlagSet) return flag.ErrHelp.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", w, printConvertUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.suffix, "suffix", "", "suffix appended to output file names")
	fs.BoolVar(&f.noPackage, "no-package", false, "write the normalized text only")
	fs.BoolVar(&f.html, "report", false, "write a printable HTML report")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addParseFlags(fs, &f.parse)
	addReportFlags(fs, &f.report)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	f.parse.pointsSet = fs.Changed("points")

	return f, fs.Args(), nil
}

// parseReportFlags parses report command flags and returns positional args.
func parseReportFlags(args []string, w io.Writer) (*reportCmdFlags, []string, error) {
	f := &reportCmdFlags{}
	fs := newFlagSet("report", w, printReportUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addReportFlags(fs, &f.report)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInspectFlags parses inspect command flags and returns positional args.
func parseInspectFlags(args []string, w io.Writer) (*inspectFlags, []string, error) {
	f := &inspectFlags{}
	fs := newFlagSet("inspect", w, printInspectUsage)

	fs.BoolVar(&f.yaml, "yaml", false, "print parsed questions as YAML")

	addCommonFlags(fs, &f.common)
	addParseFlags(fs, &f.parse)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	f.parse.pointsSet = fs.Changed("points")

	return f, fs.Args(), nil
}
