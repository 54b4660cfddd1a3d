package runtime

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"github.com/sergev/golox/lang"
)

// Config holds the settings read from a TOML configuration file.
type Config struct {
	REPL    REPLConfig
	Log     LogConfig
	Runtime RuntimeConfig
}

// REPLConfig controls the interactive prompt.
type REPLConfig struct {
	Prompt         string
	ContinuePrompt string
	HistoryFile    string `toml:",omitempty"`
	Color          bool
}

// LogConfig selects the verbosity of diagnostic logging.
type LogConfig struct {
	Level string
}

// RuntimeConfig tunes the interpreter.
type RuntimeConfig struct {
	Prelude      []string `toml:",omitempty"`
	MaxCallDepth int
}

// DefaultConfig contains the settings used when no file is given.
var DefaultConfig = Config{
	REPL: REPLConfig{
		Prompt:         "> ",
		ContinuePrompt: ".. ",
		Color:          true,
	},
	Log: LogConfig{
		Level: "warn",
	},
	Runtime: RuntimeConfig{
		MaxCallDepth: lang.DefaultMaxCallDepth,
	},
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadConfig decodes the TOML file over cfg, keeping values the file omits.
func LoadConfig(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err == nil && cfg.Runtime.MaxCallDepth < 0 {
		err = fmt.Errorf("%s: Runtime.MaxCallDepth must not be negative", file)
	}
	return err
}

// DumpConfig writes cfg as TOML.
func DumpConfig(w io.Writer, cfg *Config) error {
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// HistoryPath resolves the REPL history file, defaulting to ~/.golox_history.
// An empty result disables history.
func (c *REPLConfig) HistoryPath() string {
	if c.HistoryFile != "" {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".golox_history")
}

// ParseLevel converts a level name such as "debug" or "warn" to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// NewLogger returns a text logger writing records at or above level to w.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
