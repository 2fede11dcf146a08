/*
Elops analyzes a context-free grammar for predictive parsing. It computes
the FIRST, FOLLOW, and PREDICT sets of every production, decides whether the
grammar is LL(1), and emits a report with a production table and the LL(1)
parsing table.

Usage:

	elops [flags] [GRAMMAR_FILE]

The grammar is read from GRAMMAR_FILE, or from standard input if no file is
given. Each line of the grammar is one production of the form
"LHS -> SYM1 SYM2 ..."; the literal "epsilon" on the right denotes the empty
string, and the first production is the start production.

The report is written as HTML to standard output unless redirected or
reformatted with flags.

The flags are:

	-o, --out FILE
		Write the report to FILE instead of standard output. When writing
		HTML, the ".html" suffix is appended if missing.

	-t, --text
		Render plain-text tables instead of HTML.

	-c, --config FILE
		Load render options (title, which tables to emit) from the given
		TOML file.

	-i, --interactive
		Read the grammar from an interactive readline prompt instead of a
		file or standard input. End the grammar with Ctrl-D.

	-v, --version
		Give the current version of Elops and then exit.

	-h, --help
		Show a usage summary and then exit.

A grammar that is not LL(1) is still analyzed and rendered; the verdict and
the first conflicting production are reported on standard error, and table
cells holding more than one production id show the conflict. The exit code
is 0 on success and 1 on any failure.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dekarrin/elops"
	"github.com/dekarrin/elops/internal/input"
	"github.com/dekarrin/elops/internal/render"
	"github.com/dekarrin/elops/internal/version"
)

var (
	flagOut         = pflag.StringP("out", "o", "", "Write the report to the given file instead of standard output.")
	flagText        = pflag.BoolP("text", "t", false, "Render plain-text tables instead of HTML.")
	flagConfig      = pflag.StringP("config", "c", "", "Load render options from the given TOML file.")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Read the grammar from an interactive prompt.")
	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of Elops and then exit.")
	flagHelp        = pflag.BoolP("help", "h", false, "Show a usage summary and then exit.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *flagHelp {
		fmt.Printf("Usage: elops [flags] [GRAMMAR_FILE]\n\nFlags:\n")
		pflag.PrintDefaults()
		return
	}

	args := pflag.Args()
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	opts := render.DefaultOptions()
	if *flagConfig != "" {
		var err error
		opts, err = render.LoadOptionsFile(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			os.Exit(1)
		}
	}

	res, err := analyzeInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}

	if !res.Analysis.IsLL1() {
		pid, _ := res.Analysis.Conflict()
		fmt.Fprintf(os.Stderr, "WARN: not an LL(1) grammar; production %d has a conflicting predict set\n", pid)
	}

	var report string
	if *flagText {
		report = res.RenderText(opts)
	} else {
		report = res.RenderHTML(opts)
	}

	if *flagOut != "" {
		if err := writeReport(report, *flagOut, !*flagText); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			os.Exit(1)
		}
	} else {
		fmt.Print(report)
	}
}

func analyzeInput(args []string) (*elops.Result, error) {
	if *flagInteractive {
		rd, err := input.NewInteractiveReader()
		if err != nil {
			return nil, err
		}
		defer rd.Close()

		text, err := input.ReadAll(rd)
		if err != nil {
			return nil, err
		}
		return elops.AnalyzeString(text)
	}

	if len(args) == 1 {
		return elops.AnalyzeFile(args[0])
	}

	return elops.Analyze(os.Stdin)
}

// writeReport writes the report to the named file, appending the ".html"
// suffix for HTML output when missing.
func writeReport(report string, filename string, html bool) error {
	if html && !strings.HasSuffix(filename, ".html") {
		filename += ".html"
	}

	return os.WriteFile(filename, []byte(report), 0644)
}
