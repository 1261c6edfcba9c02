// Command syllabus_extract prints the course events found in one syllabus
// document without starting an MCP server.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/a3tai/mcp-syllabus-reader/internal/config"
	"github.com/a3tai/mcp-syllabus-reader/internal/documents"
	"github.com/a3tai/mcp-syllabus-reader/internal/syllabus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("syllabus_extract", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	format := flags.StringP("format", "f", "text", "Output format: "+strings.Join(documents.OutputFormats(), ", "))
	termStart := flags.String("termstart", "", "Term start date (YYYY-MM-DD) anchoring dates without a year")
	timezone := flags.String("timezone", syllabus.DefaultTimezone, "IANA timezone for the events")
	output := flags.StringP("output", "o", "", "Write to this file instead of stdout")
	maxFileSize := flags.Int64("maxfilesize", config.DefaultMaxFileSize, "Maximum document size in bytes")
	flags.Usage = func() { printUsage(stderr, flags) }

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if flags.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: exactly one syllabus file is required\n\n")
		printUsage(stderr, flags)
		return 2
	}

	path, err := filepath.Abs(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	service, err := documents.NewService(*maxFileSize, filepath.Dir(path), *timezone, *termStart)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	result, err := service.ExtractEvents(documents.ExtractEventsRequest{Path: path, Format: *format})
	if err != nil {
		fmt.Fprintf(stderr, "Error extracting events: %v\n", err)
		return 1
	}

	rendered := result.Rendered
	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}

	if *output == "" {
		fmt.Fprint(stdout, rendered)
		return 0
	}
	if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
		fmt.Fprintf(stderr, "Error writing %s: %v\n", *output, err)
		return 1
	}
	fmt.Fprintf(stderr, "Wrote %d event(s) to %s\n", result.EventCount, *output)
	return 0
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "Syllabus Extract - list the exams, assignments and class events in a syllabus")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  syllabus_extract [OPTIONS] <syllabus file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  syllabus_extract cs2110.pdf")
	fmt.Fprintln(w, "  syllabus_extract --termstart 2025-08-25 -f ics -o cs2110.ics cs2110.pdf")
	fmt.Fprintln(w, "  syllabus_extract --timezone America/New_York -f json stats101.docx")
}
