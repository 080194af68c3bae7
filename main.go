package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zerosign/envit/internal/assembler"
	"github.com/zerosign/envit/internal/config"
	"github.com/zerosign/envit/internal/decode"
	"github.com/zerosign/envit/internal/errors"
	"github.com/zerosign/envit/internal/models"
	"github.com/zerosign/envit/internal/query"
	"github.com/zerosign/envit/internal/reader"
	"github.com/zerosign/envit/internal/writer"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string `help:"Path to input env file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format  string `help:"Output format." short:"f" enum:"json,env" default:"json"`
	Query   string `help:"Dotted path of a subtree to extract, e.g. database.retries[0]." short:"q"`
	Config  string `help:"Path to an options YAML file." short:"c" type:"path"`
	Version bool   `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("envit"),
		kong.Description("A tool to convert env-style key/value configuration into a typed tree"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage was already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("envit version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: envit --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}

	// 1. Read the pair stream
	pairs, err := readInput(opts)
	if err != nil {
		return err
	}

	// 2. Assemble the tree
	root, err := assembler.Assemble(pairs)
	if err != nil {
		return err
	}

	// 3. Optionally extract a subtree
	var value models.Value = root
	if CLI.Query != "" {
		value, err = query.Lookup(value, CLI.Query)
		if err != nil {
			return err
		}
	}

	// 4. Render the result
	rendered, err := render(value, opts)
	if err != nil {
		return err
	}

	// 5. Output the result
	return writeOutput(rendered)
}

// loadOptions resolves separator and formatting options, from a YAML file
// when one is given.
func loadOptions() (config.Options, error) {
	if CLI.Config != "" {
		return config.LoadFile(CLI.Config)
	}
	return config.DefaultOptions(), nil
}

// readInput reads pairs from file or stdin
func readInput(opts config.Options) ([]models.Pair, error) {
	if CLI.Input != "" {
		return reader.ReadFile(CLI.Input, opts)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewReadError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive, nothing was piped in
		return nil, errors.NewReadError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewReadError("failed to read from stdin", err)
	}
	return reader.ReadString(string(data), opts)
}

// render turns the selected value into output text in the requested format.
func render(value models.Value, opts config.Options) (string, error) {
	switch CLI.Format {
	case "env":
		root, ok := value.(*models.Object)
		if !ok {
			return "", errors.NewWriteError(
				fmt.Sprintf("env format needs an object, the query selected a %s", value.Kind()),
				errors.ErrKindMismatch,
			)
		}
		return writer.NewWriter(opts).Render(root)
	default:
		data, err := json.MarshalIndent(decode.ToInterface(value), "", "  ")
		if err != nil {
			return "", errors.NewOutputError("failed to render JSON", err)
		}
		return string(data) + "\n", nil
	}
}

// writeOutput writes the rendered text to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Print(strings.TrimSuffix(text, "\n") + "\n"); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
