// Package config loads chessrules.json. Missing files yield defaults and
// out-of-range values are corrected back to defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chessrules/src/errs"
	"chessrules/src/logx"
)

const DefaultFile = "chessrules.json"

type Config struct {
	LogLevel   string `json:"log_level"`   // debug/info/warn/error
	LogFile    string `json:"log_file"`    // path, "" for console
	Database   string `json:"database"`    // badger dir, "" for the platform data dir
	Theme      string `json:"theme"`       // light/dark, diagram palette
	SquareSize int    `json:"square_size"` // diagram pixels per square
	PerftDepth int    `json:"perft_depth"` // default perft depth
	Unicode    bool   `json:"unicode"`     // terminal board glyphs
}

const (
	minSquareSize = 16
	maxSquareSize = 256
	MaxPerftDepth = 8
)

// CheckPerftDepth rejects depths outside [1, MaxPerftDepth]. The flag
// overriding the configured depth goes through it too.
func CheckPerftDepth(depth int) error {
	if depth < 1 || depth > MaxPerftDepth {
		return fmt.Errorf("%w: perft depth %d not in [1, %d]", errs.ErrInvalidConfig, depth, MaxPerftDepth)
	}
	return nil
}

func Default() Config {
	return Config{
		LogLevel:   "info",
		LogFile:    "chessrules.log",
		Database:   "",
		Theme:      "light",
		SquareSize: 64,
		PerftDepth: 3,
		Unicode:    true,
	}
}

// Load reads file; a missing file is not an error.
func Load(file string) (*Config, error) {
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		def := Default()
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := Default()
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", errs.ErrInvalidConfig, file, err)
	}
	correctableConfig(&c)
	return &c, nil
}

func (c *Config) Save(file string) error {
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, jsonData, 0644)
}

// Validate reports the first value Load would have corrected.
func (c *Config) Validate() error {
	switch {
	case !logx.ValidLevel(c.LogLevel):
		return fmt.Errorf("%w: log level %q", errs.ErrInvalidConfig, c.LogLevel)
	case c.Theme != "light" && c.Theme != "dark":
		return fmt.Errorf("%w: theme %q", errs.ErrInvalidConfig, c.Theme)
	case c.SquareSize < minSquareSize || c.SquareSize > maxSquareSize:
		return fmt.Errorf("%w: square size %d not in [%d, %d]", errs.ErrInvalidConfig, c.SquareSize, minSquareSize, maxSquareSize)
	}
	return CheckPerftDepth(c.PerftDepth)
}

func correctableConfig(c *Config) {
	def := Default()
	if !logx.ValidLevel(c.LogLevel) {
		c.LogLevel = def.LogLevel
	}
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.SquareSize < minSquareSize || c.SquareSize > maxSquareSize {
		c.SquareSize = def.SquareSize
	}
	if CheckPerftDepth(c.PerftDepth) != nil {
		c.PerftDepth = def.PerftDepth
	}
}
