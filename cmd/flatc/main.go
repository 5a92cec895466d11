// Command flatc compiles the toy field-arithmetic surface language down to
// flat, R1CS-ready code: parse, check, flatten (with inlining, condition
// gadgets and loop unrolling), eliminate synonyms, and write the result out
// for a downstream constraint extractor to consume.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flatzk/flatc/internal/ast"
	"github.com/flatzk/flatc/internal/diagnostics"
	"github.com/flatzk/flatc/internal/flatten"
	"github.com/flatzk/flatc/internal/optimizer"
	"github.com/flatzk/flatc/internal/parser"
	"github.com/flatzk/flatc/internal/semantic"
	"github.com/flatzk/flatc/internal/serialize"
)

var log = logrus.New()

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "flatc",
		Short: "Flatten a field-arithmetic program into R1CS-ready form",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newCompileCmd())

	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and semantically check a source file without flattening it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := loadAndCheck(args[0])
			if err != nil {
				return err
			}
			color.Green("%s: OK", args[0])
			return nil
		},
	}
}

func newCompileCmd() *cobra.Command {
	var bits int
	var outPath string
	var skipOptimize bool

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Flatten a source file and write the flat program to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			prog, err := loadAndCheck(path)
			if err != nil {
				return err
			}

			log.WithField("bits", bits).Debug("flattening program")
			flat, err := flatten.New(bits).FlattenProgram(prog)
			if err != nil {
				return reportFlattenError(err)
			}

			if !skipOptimize {
				log.Debug("eliminating synonyms")
				flat, err = optimizer.OptimizeProgram(flat)
				if err != nil {
					return fmt.Errorf("optimize: %w", err)
				}
			}

			if outPath == "" {
				outPath = path + ".flat"
			}
			if err := serialize.WriteProgram(outPath, flat); err != nil {
				return err
			}

			color.Green("wrote %s", outPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&bits, "bits", 254, "bit width for condition gadgets")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default: <file>.flat)")
	cmd.Flags().BoolVar(&skipOptimize, "no-optimize", false, "skip the synonym-elimination pass")

	return cmd
}

// loadAndCheck runs the parser and semantic checker, the two stages the
// flattener itself treats as external collaborators it can assume already
// succeeded.
func loadAndCheck(path string) (*ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	prog, err := parser.Parse(path, string(source))
	if err != nil {
		return nil, reportParseError(path, string(source), err)
	}

	if errs := semantic.Check(prog); len(errs) > 0 {
		for _, e := range errs {
			color.Red("error: %s", e.Error())
		}
		return nil, fmt.Errorf("%s: %d semantic error(s)", path, len(errs))
	}

	return prog, nil
}

// reportParseError renders a participle syntax error with a caret pointing
// at the offending column, matched against the source file the error came
// from.
func reportParseError(path, source string, err error) error {
	perr, ok := err.(participle.Error)
	if !ok {
		color.Red("%s: %v", path, err)
		return err
	}

	pos := perr.Position()
	reporter := diagnostics.NewErrorReporter(path, source)
	fmt.Fprint(os.Stderr, reporter.FormatError(diagnostics.CompilerError{
		Level:   diagnostics.Error,
		Code:    "P0001",
		Message: perr.Message(),
		Position: ast.Position{
			Line:   pos.Line,
			Column: pos.Column,
		},
		Length: 1,
	}))
	return err
}

// reportFlattenError renders a flatten-stage failure. The flattener carries
// no source position, so this is a plain diagnostic line rather than a
// source snippet.
func reportFlattenError(err error) error {
	ferr, ok := err.(*flatten.Error)
	if !ok {
		color.Red("error: %v", err)
		return err
	}
	ce := diagnostics.FromFlattenError(ferr)
	color.Red("%s[%s]: %s", ce.Level, ce.Code, ce.Message)
	return err
}
