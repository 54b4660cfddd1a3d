package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/sergev/golox/lang"
	"github.com/sergev/golox/parser"
	"github.com/sergev/golox/runtime"
)

// Exit statuses follow the BSD sysexits convention.
const (
	exitUsage   = 64
	exitData    = 65
	exitNoInput = 66
	exitRuntime = 70
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging level: debug, info, warn, error",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable coloured diagnostics",
	}

	tokensCommand = cli.Command{
		Action:    tokensAction,
		Name:      "tokens",
		Usage:     "Print the token stream of a script",
		ArgsUsage: "<script>",
	}
	astCommand = cli.Command{
		Action:    astAction,
		Name:      "ast",
		Usage:     "Print the syntax tree of a script",
		ArgsUsage: "<script>",
	}
	dumpConfigCommand = cli.Command{
		Action:      dumpConfigAction,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		Description: `The dumpconfig command shows the effective configuration as TOML.`,
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "golox"
	app.Usage = "run Lox scripts or an interactive session"
	app.ArgsUsage = "[script | -]"
	app.Version = "0.1.0"
	app.HideVersion = true
	app.Flags = []cli.Flag{configFileFlag, verbosityFlag, noColorFlag}
	app.Commands = []cli.Command{tokensCommand, astCommand, dumpConfigCommand}
	app.Action = runAction
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "golox: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig assembles the effective configuration from defaults, the
// optional config file and command-line overrides.
func loadConfig(ctx *cli.Context) (runtime.Config, error) {
	cfg := runtime.DefaultConfig
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := runtime.LoadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if level := ctx.GlobalString(verbosityFlag.Name); level != "" {
		cfg.Log.Level = level
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.REPL.Color = false
	}
	return cfg, nil
}

func newInterpreter(cfg runtime.Config) (*lang.Interpreter, error) {
	logger, err := runtime.NewLogger(os.Stderr, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	in := runtime.NewInterpreter(
		lang.WithStdout(os.Stdout),
		lang.WithStderr(os.Stderr),
		lang.WithLogger(logger),
		lang.WithMaxCallDepth(cfg.Runtime.MaxCallDepth),
	)
	if err := runtime.LoadPrelude(in, cfg.Runtime.Prelude); err != nil {
		return nil, err
	}
	return in, nil
}

func runAction(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return cli.NewExitError("Usage: golox [script]", exitUsage)
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), exitUsage)
	}
	in, err := newInterpreter(cfg)
	if err != nil {
		return cli.NewExitError(err.Error(), exitUsage)
	}
	rep := newReporter(os.Stderr, cfg.REPL.Color)

	if ctx.NArg() == 1 {
		script := ctx.Args().First()
		if script == "-" {
			err = runtime.EvaluateReader(in, os.Stdin)
		} else {
			err = runtime.EvaluateFile(in, script)
		}
		if err != nil {
			rep.report(err)
			return cli.NewExitError("", exitCode(err))
		}
		return nil
	}

	s := &session{in: in, rep: rep, cfg: cfg.REPL}
	if isInteractive() {
		s.runInteractive()
	} else {
		s.runBuffered(bufio.NewReader(os.Stdin))
	}
	return nil
}

// exitCode maps an evaluation error to a process exit status.
func exitCode(err error) int {
	var (
		plist parser.ErrorList
		perr  *parser.Error
		rerr  *lang.RuntimeError
		serr  *lang.SystemError
	)
	switch {
	case errors.As(err, &plist), errors.As(err, &perr):
		return exitData
	case errors.As(err, &rerr), errors.As(err, &serr):
		return exitRuntime
	default:
		return exitNoInput
	}
}

func readScript(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", cli.NewExitError(fmt.Sprintf("Usage: golox %s <script>", ctx.Command.Name), exitUsage)
	}
	path := ctx.Args().First()
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", cli.NewExitError(err.Error(), exitNoInput)
	}
	return string(data), nil
}

func tokensAction(ctx *cli.Context) error {
	src, err := readScript(ctx)
	if err != nil {
		return err
	}
	tokens, scanErr := parser.Scan(src)
	for _, tok := range tokens {
		fmt.Printf("%s\t%s\t%q\n", tok.Pos, tok.Type, tok.Lexeme)
	}
	if scanErr != nil {
		newReporter(os.Stderr, !ctx.GlobalBool(noColorFlag.Name)).report(scanErr)
		return cli.NewExitError("", exitData)
	}
	return nil
}

func astAction(ctx *cli.Context) error {
	src, err := readScript(ctx)
	if err != nil {
		return err
	}
	stmts, err := parser.ParseString(src)
	if err != nil {
		newReporter(os.Stderr, !ctx.GlobalBool(noColorFlag.Name)).report(err)
		return cli.NewExitError("", exitData)
	}
	fmt.Print(parser.PrintProgram(stmts))
	return nil
}

func dumpConfigAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), exitUsage)
	}
	return runtime.DumpConfig(os.Stdout, &cfg)
}

// reporter writes diagnostics, in red when the stream is a terminal.
type reporter struct {
	w     io.Writer
	color *color.Color
}

func newReporter(f *os.File, useColor bool) *reporter {
	c := color.New(color.FgRed)
	if useColor && isTerminal(f) {
		c.EnableColor()
		return &reporter{w: colorable.NewColorable(f), color: c}
	}
	c.DisableColor()
	return &reporter{w: f, color: c}
}

func (r *reporter) report(err error) {
	r.color.Fprintln(r.w, err.Error())
}

type session struct {
	in  *lang.Interpreter
	rep *reporter
	cfg runtime.REPLConfig
}

// eval parses and runs one chunk of input. It reports false when the chunk
// is incomplete and more input should be appended to it.
func (s *session) eval(src string) bool {
	stmts, err := parser.ParseString(src)
	if err != nil {
		if parser.IsIncomplete(err) {
			return false
		}
		s.rep.report(err)
		return true
	}
	if err := s.in.Execute(stmts); err != nil {
		s.rep.report(err)
	}
	return true
}

func (s *session) runBuffered(reader *bufio.Reader) {
	var buffer strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			return
		}
		buffer.WriteString(line)
		atEOF := errors.Is(err, io.EOF)
		if strings.TrimSpace(buffer.String()) != "" {
			if s.eval(buffer.String()) {
				buffer.Reset()
			} else if atEOF {
				// Report what is left rather than waiting for more input.
				if _, perr := parser.ParseString(buffer.String()); perr != nil {
					s.rep.report(perr)
				}
			}
		}
		if atEOF {
			return
		}
	}
}

func (s *session) runInteractive() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := s.cfg.HistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := s.cfg.Prompt
		if buffer.Len() > 0 {
			prompt = s.cfg.ContinuePrompt
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}
		if !s.eval(src) {
			continue
		}
		buffer.Reset()
		state.AppendHistory(strings.TrimSpace(src))
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func isInteractive() bool {
	return isTerminal(os.Stdin)
}
