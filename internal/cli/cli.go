package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/scrapec/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("scrapec", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
scrapec - Compile .sb3 files for Scrape to consume.

Usage:
  scrapec [options] FILE

Arguments:
  FILE
    Path to the .sb3 archive, or to a project.json file with --json.

Options:
`)
		flagSet.PrintDefaults()
	}

	spriteFlag := flagSet.String("sprite", envOr(EnvSprite, app.DefaultSprite), "Name of the sprite containing code to be executed. Env: "+EnvSprite+".")
	jsonFlag := flagSet.Bool("json", false, "The input file is a project.json file, not a .sb3 file.")
	indentFlag := flagSet.String("indent", "", "String used to indent the JSON output.")
	outputFlag := flagSet.String("output", "", "Name for the file being written. Defaults to FILE with a .scrape extension.")
	oFlag := flagSet.String("o", "", "Name for the file being written (shorthand).")
	canonicalFlag := flagSet.Bool("canonical", false, "Write RFC 8785 canonical JSON.")
	rulesFlag := flagSet.String("rules", envOr(EnvRules, ""), "Rules file or directory (.hcl, .yaml, .yml). Built-in rules when empty. Env: "+EnvRules+".")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envOr(EnvLogLevel, "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. Env: "+EnvLogLevel+".")

	// Flags may follow the input file, so parsing resumes after each
	// positional argument until only positionals remain.
	var positional []string
	rest := args
	for {
		if err := flagSet.Parse(rest); err != nil {
			if err == flag.ErrHelp {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if flagSet.NArg() == 0 {
			break
		}
		consumed := len(rest) - flagSet.NArg()
		if consumed > 0 && rest[consumed-1] == "--" {
			positional = append(positional, flagSet.Args()...)
			break
		}
		positional = append(positional, flagSet.Arg(0))
		rest = flagSet.Args()[1:]
	}
	slog.Debug("Arguments parsed successfully.")

	if len(positional) == 0 {
		slog.Debug("No input file provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if len(positional) > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected one input file, got %d", len(positional))}
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	if _, ok := app.ParseLevel(logLevel); !ok {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be one of " + strings.Join(app.LogLevels, ", ")}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		InputPath:  positional[0],
		RawJSON:    *jsonFlag,
		Sprite:     *spriteFlag,
		OutputPath: outputPath,
		Indent:     *indentFlag,
		Canonical:  *canonicalFlag,
		RulesPath:  *rulesFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
