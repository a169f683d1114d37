package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	confluence "github.com/goliatone/go-confluence-content"
	"github.com/goliatone/go-confluence-content/cmd/confluence-text/internal/output"
)

var moduleBuilder = confluence.New

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("confluence-text: %v", err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("confluence-text", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", output.FormatText, "Output format: text, json, yaml or diagnostics")
	expression := fs.String("query", "", "Filter nodes with an expression, e.g. kind == \"status\"")
	markdownInput := fs.Bool("markdown", false, "Treat the input as Markdown with optional front matter")
	strict := fs.Bool("strict", false, "Exit with an error when the parse reports diagnostics")
	showDiagnostics := fs.Bool("diagnostics", false, "Print diagnostics to stderr after the output")
	verbose := fs.Bool("verbose", false, "Log parse activity to stderr")
	logProvider := fs.String("log-provider", "console", "Logger used with -verbose: console or gologger")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	input, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	cfg := confluence.DefaultConfig()
	cfg.RaiseOnFinish = *strict
	if *markdownInput {
		cfg.Features.Markdown = true
		cfg.Markdown.Enabled = true
	}
	if *verbose {
		cfg.Features.Logger = true
		cfg.Logging.Provider = strings.TrimSpace(*logProvider)
		cfg.Logging.Level = "debug"
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("configure parser: %w", err)
	}

	ctx := context.Background()
	var doc *confluence.Document
	if *markdownInput {
		doc, err = module.ParseMarkdown(ctx, input)
	} else {
		doc, err = module.Parse(ctx, string(input))
	}
	if doc == nil {
		return fmt.Errorf("parse: %w", err)
	}
	parseErr := err

	var selected []confluence.Node
	if q := strings.TrimSpace(*expression); q != "" {
		selected, err = confluence.Select(doc, q)
		if err != nil {
			return err
		}
		if selected == nil {
			selected = []confluence.Node{}
		}
	}

	if err := output.Write(stdout, *format, doc, selected); err != nil {
		return err
	}
	if *showDiagnostics && *format != output.FormatDiagnostics {
		if err := output.WriteDiagnostics(stderr, doc.Metadata.Diagnostics); err != nil {
			return err
		}
	}
	if parseErr != nil {
		return fmt.Errorf("parse: %w", parseErr)
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
