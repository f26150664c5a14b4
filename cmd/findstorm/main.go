// Package main is the entry point for the findstorm search tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/findstorm/internal/config"
	"github.com/dshills/findstorm/internal/engine/buffer"
	"github.com/dshills/findstorm/internal/search"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath    string
	Regex         bool
	CaseSensitive bool
	WholeWord     bool
	Multiline     bool
	DotAll        bool
	CountOnly     bool
	Replacement   string
	Replace       bool
	Query         string
	File          string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	buf, err := loadBuffer(opts.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	engine := search.New(buf, search.WithMaxMatches(cfg.MaxMatches))
	searchOpts := mergeOptions(cfg.Defaults.Options(), opts)

	if opts.CountOnly {
		n, err := engine.CountMatches(opts.Query, searchOpts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(n)
		return 0
	}

	set, err := engine.Search(opts.Query, searchOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Replace {
		succeeded, failed := engine.ReplaceAll(opts.Replacement, nil)
		fmt.Fprintf(os.Stderr, "replaced %d occurrence(s), %d failed\n", succeeded, failed)
		fmt.Print(buf.Text())
		if failed > 0 {
			return 1
		}
		return 0
	}

	for _, m := range set.Matches {
		fmt.Printf("%d:%d: %s\n", m.Line, m.Column, m.Text)
	}
	if set.Truncated {
		fmt.Fprintf(os.Stderr, "warning: match list truncated at %d\n", set.Len())
	}
	if set.IsEmpty() {
		return 1
	}
	return 0
}

// loadBuffer reads the named file, or stdin when path is empty or "-".
func loadBuffer(path string) (*buffer.Buffer, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return buffer.NewBufferFromReader(r)
}

// mergeOptions starts from the configured defaults and applies any flags
// the user set explicitly.
func mergeOptions(defaults search.Options, opts options) search.Options {
	merged := defaults

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "e", "regex":
			merged.Regex = opts.Regex
		case "S", "case-sensitive":
			merged.CaseSensitive = opts.CaseSensitive
		case "w", "word":
			merged.WholeWord = opts.WholeWord
		case "m", "multiline":
			merged.Multiline = opts.Multiline
		case "s", "dotall":
			merged.DotAll = opts.DotAll
		}
	})

	return merged
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Regex, "regex", false, "Interpret the query as a regular expression")
	flag.BoolVar(&opts.Regex, "e", false, "Interpret the query as a regular expression (shorthand)")
	flag.BoolVar(&opts.CaseSensitive, "case-sensitive", false, "Match case exactly")
	flag.BoolVar(&opts.CaseSensitive, "S", false, "Match case exactly (shorthand)")
	flag.BoolVar(&opts.WholeWord, "word", false, "Match whole words only")
	flag.BoolVar(&opts.WholeWord, "w", false, "Match whole words only (shorthand)")
	flag.BoolVar(&opts.Multiline, "multiline", false, "^ and $ match at line boundaries (regex mode)")
	flag.BoolVar(&opts.Multiline, "m", false, "^ and $ match at line boundaries (shorthand)")
	flag.BoolVar(&opts.DotAll, "dotall", false, ". matches line separators (regex mode)")
	flag.BoolVar(&opts.DotAll, "s", false, ". matches line separators (shorthand)")
	flag.BoolVar(&opts.CountOnly, "count", false, "Print only the match count")
	flag.StringVar(&opts.Replacement, "replace", "", "Replace matches with the template and print the result")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Findstorm - text search and replace\n\n")
		fmt.Fprintf(os.Stderr, "Usage: findstorm [options] <query> [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  findstorm foo file.txt              List matches as line:column\n")
		fmt.Fprintf(os.Stderr, "  findstorm -e '(\\d+)-(\\d+)' f.txt    Regex search\n")
		fmt.Fprintf(os.Stderr, "  findstorm -e -replace '$2-$1' ...   Replace with backreferences\n")
		fmt.Fprintf(os.Stderr, "  findstorm -count foo file.txt       Count matches\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Findstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	opts.Query = args[0]
	if len(args) > 1 {
		opts.File = args[1]
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "replace" {
			opts.Replace = true
		}
	})

	return opts
}
