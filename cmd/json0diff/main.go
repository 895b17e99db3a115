package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/go-json0diff"
)

// Version information (can be overridden at build time with -ldflags)
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "diff":
		err = diffCommand(args, stdin, stdout)
	case "apply":
		err = applyCommand(args, stdin, stdout)
	case "version", "--version", "-v":
		printVersion(stdout)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func diffCommand(args []string, stdin io.Reader, stdout io.Writer) error {
	raw := false
	var files []string
	for _, arg := range args {
		if arg == "--raw" {
			raw = true
			continue
		}
		files = append(files, arg)
	}
	if len(files) != 2 {
		return fmt.Errorf("diff requires exactly two documents, got %d", len(files))
	}
	if err := checkStdin(files); err != nil {
		return err
	}

	from, err := readDocument(files[0], stdin)
	if err != nil {
		return err
	}
	to, err := readDocument(files[1], stdin)
	if err != nil {
		return err
	}

	var ops json0diff.Operations
	if raw {
		ops, err = json0diff.RawDiff(from, to)
	} else {
		ops, err = json0diff.Diff(from, to)
	}
	if err != nil {
		return err
	}
	return writeJSON(stdout, ops)
}

func applyCommand(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("apply requires a document and an operations file")
	}
	if err := checkStdin(args); err != nil {
		return err
	}

	doc, err := readDocument(args[0], stdin)
	if err != nil {
		return err
	}
	data, err := readInput(args[1], stdin)
	if err != nil {
		return err
	}
	var ops json0diff.Operations
	if err := json.Unmarshal(data, &ops); err != nil {
		return fmt.Errorf("failed to parse operations %s: %w", args[1], err)
	}

	result, err := json0diff.Apply(doc, ops)
	if err != nil {
		return err
	}
	return writeJSON(stdout, result)
}

// readDocument loads JSON, or YAML for .yaml and .yml files.
func readDocument(name string, stdin io.Reader) (any, error) {
	data, err := readInput(name, stdin)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML %s: %w", name, err)
		}
		return doc, nil
	}
	v, err := json0diff.ValueOf(json.RawMessage(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON %s: %w", name, err)
	}
	return v, nil
}

// checkStdin rejects argument lists that name standard input more than once.
func checkStdin(names []string) error {
	seen := false
	for _, name := range names {
		if name != "-" {
			continue
		}
		if seen {
			return fmt.Errorf("standard input (-) can only be used for one argument")
		}
		seen = true
	}
	return nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "json0diff version %s\n", version)
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintf(w, "go: %s\n", info.GoVersion)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "json0diff computes json0 operations between two documents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  json0diff diff [--raw] <from> <to>   Print the operations turning <from> into <to>")
	fmt.Fprintln(w, "  json0diff apply <doc> <ops>          Apply an operation list to a document")
	fmt.Fprintln(w, "  json0diff version                    Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Documents are JSON, or YAML when the file ends in .yaml or .yml.")
	fmt.Fprintln(w, "Use - to read one of the inputs from stdin.")
}
