package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chessrules/src/errs"
	"chessrules/src/testutil"
)

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *c, Default())
	testutil.AssertNoError(t, c.Validate())
}

func TestLoadCorrectsValues(t *testing.T) {
	file := filepath.Join(t.TempDir(), DefaultFile)
	data := `{"log_level": "loud", "theme": "neon", "square_size": 3, "perft_depth": 42, "database": "/tmp/db", "unicode": false}`
	testutil.AssertNoError(t, os.WriteFile(file, []byte(data), 0644))

	c, err := Load(file)
	testutil.AssertNoError(t, err)
	want := Default()
	want.Database = "/tmp/db"
	want.Unicode = false
	testutil.AssertEqual(t, *c, want)
}

func TestLoadBrokenJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), DefaultFile)
	testutil.AssertNoError(t, os.WriteFile(file, []byte("{"), 0644))
	_, err := Load(file)
	testutil.AssertTrue(t, errors.Is(err, errs.ErrInvalidConfig), "got %v", err)
}

func TestSaveRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), DefaultFile)
	c := Default()
	c.Theme = "dark"
	c.PerftDepth = 5
	testutil.AssertNoError(t, c.Save(file))

	got, err := Load(file)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *got, c)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"level", func(c *Config) { c.LogLevel = "verbose" }},
		{"theme", func(c *Config) { c.Theme = "blue" }},
		{"square size", func(c *Config) { c.SquareSize = 1000 }},
		{"perft depth", func(c *Config) { c.PerftDepth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			testutil.AssertTrue(t, errors.Is(c.Validate(), errs.ErrInvalidConfig))
		})
	}
}

func TestCheckPerftDepth(t *testing.T) {
	testutil.AssertNoError(t, CheckPerftDepth(1))
	testutil.AssertNoError(t, CheckPerftDepth(MaxPerftDepth))
	for _, d := range []int{-1, 0, MaxPerftDepth + 1, 12} {
		testutil.AssertTrue(t, errors.Is(CheckPerftDepth(d), errs.ErrInvalidConfig), "depth %d", d)
	}
}
