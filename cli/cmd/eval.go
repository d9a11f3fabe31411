package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/pupil/cli/cmd/repl"
	"github.com/ardnew/pupil/lang"
	"github.com/ardnew/pupil/log"
)

// baseHistory is the base name of the interactive history file.
const baseHistory = "history"

// Eval evaluates arithmetic expressions given as arguments, piped over
// stdin, or typed interactively.
type Eval struct {
	Expr []string `arg:"" help:"Expression to evaluate" name:"expr" optional:""`

	Define     map[string]float64 `help:"Define variables (name=value pairs)"     placeholder:"name=value"  short:"D"`
	EnvFile    string             `help:"Load variables from a YAML mapping file" placeholder:"file"        short:"e" type:"existingfile"`
	NoDefaults bool               `help:"Start with an empty environment"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := e.environment()
	if err != nil {
		return err
	}

	if len(e.Expr) > 0 {
		return evalOnce(ctx, env, strings.Join(e.Expr, " "))
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		history := filepath.Join(kongVar(ctx, CacheIdentifier), baseHistory)

		return repl.Run(ctx, env, history, log.Default())
	}

	return evalLines(ctx, env, os.Stdin)
}

// environment constructs the evaluation environment from the command flags.
// Variables from --env-file are applied before --define, so explicit
// definitions override file entries.
func (e *Eval) environment() (*lang.Env, error) {
	env := lang.BasicEnv()
	if e.NoDefaults {
		env = lang.NewEnv()
	}

	if e.EnvFile != "" {
		data, err := os.ReadFile(e.EnvFile)
		if err != nil {
			return nil, ErrLoadEnv.
				With(slog.String("file", e.EnvFile)).
				Wrap(err)
		}

		var vars map[string]float64

		err = yaml.Unmarshal(data, &vars)
		if err != nil {
			return nil, ErrLoadEnv.
				With(slog.String("file", e.EnvFile)).
				Wrap(err)
		}

		for name, val := range vars {
			if !validIdent(name) {
				return nil, ErrBadDefine.
					With(slog.String("file", e.EnvFile)).
					With(slog.String("name", name))
			}

			env.Define(name, val)
		}
	}

	for name, val := range e.Define {
		if !validIdent(name) {
			return nil, ErrBadDefine.
				With(slog.String("name", name))
		}

		env.Define(name, val)
	}

	return env, nil
}

// evalOnce evaluates a single expression and prints its result to stdout.
// On error, a caret diagnostic is printed to stderr.
func evalOnce(ctx context.Context, env *lang.Env, src string) error {
	val, err := lang.Eval(env, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		if diag := lang.Diagnostic(src, err); diag != "" {
			fmt.Fprintln(os.Stderr, diag)
		}

		log.DebugContext(ctx, "eval failed",
			slog.String("expr", src),
			slog.Any("error", err),
		)

		return ErrEvalExpr.Wrap(err)
	}

	fmt.Println(lang.FormatResult(val))

	return nil
}

// evalLines evaluates each non-empty line read from r as an independent
// expression against a shared environment. Results are printed to stdout and
// errors to stderr. Successful results update the last-answer variable, and
// evaluation continues past errors.
func evalLines(ctx context.Context, env *lang.Env, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		val, err := lang.Eval(env, line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)

			if diag := lang.Diagnostic(line, err); diag != "" {
				fmt.Fprintln(os.Stderr, diag)
			}

			log.DebugContext(ctx, "eval failed",
				slog.String("expr", line),
				slog.Any("error", err),
			)

			continue
		}

		env.SetAns(val)
		fmt.Println(lang.FormatResult(val))
	}

	err := scanner.Err()
	if err != nil {
		return ErrReadInput.Wrap(err)
	}

	return nil
}

// validIdent reports whether name is usable as a variable identifier:
// a letter followed by letters and digits.
func validIdent(name string) bool {
	for i, r := range name {
		if unicode.IsLetter(r) {
			continue
		}

		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return name != ""
}
