package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterkuimelis/lifecards/internal/game"
	"gopkg.in/yaml.v3"
)

// LoadTuning reads a YAML tuning file. An empty path returns the defaults.
func LoadTuning(path string) (game.Tuning, error) {
	if path == "" {
		return game.DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Tuning{}, err
	}
	return ParseTuning(data)
}

// ParseTuning overlays YAML onto the default tuning. Keys that are not set
// keep their default value; unknown keys and unknown card ids are errors.
func ParseTuning(data []byte) (game.Tuning, error) {
	t := game.DefaultTuning()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return game.Tuning{}, fmt.Errorf("parse tuning YAML: %w", err)
	}

	for id := range t.Rates {
		if _, ok := game.CardRegistry[id]; !ok {
			return game.Tuning{}, fmt.Errorf("tuning rates: unknown card %q", id)
		}
	}
	if err := t.Validate(); err != nil {
		return game.Tuning{}, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}
