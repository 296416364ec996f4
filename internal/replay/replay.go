// Package replay records runs as seeds plus input traces and re-simulates
// them. A replay never stores a score: the outcome is recomputed and checked
// against a state checksum.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/shroom-run/internal/config"
)

// Version is the document format written by Encode.
const Version = 1

var (
	// ErrChecksumMismatch is returned when a replay does not reproduce its
	// recorded final state.
	ErrChecksumMismatch = errors.New("replay: checksum mismatch")

	// ErrUnsupportedVersion is returned for documents from another format.
	ErrUnsupportedVersion = errors.New("replay: unsupported version")
)

// Replay is everything needed to reproduce a run.
type Replay struct {
	Version  int                 `yaml:"version"`
	Name     string              `yaml:"name,omitempty"`
	Seed     int64               `yaml:"seed"`
	TickRate int                 `yaml:"tick_rate"`
	Preset   string              `yaml:"preset,omitempty"`
	Config   config.RunnerConfig `yaml:"config"`
	Ticks    int                 `yaml:"ticks"`
	Jumps    []int               `yaml:"jumps,flow,omitempty"`
	Restarts []int               `yaml:"restarts,flow,omitempty"`
	Checksum string              `yaml:"checksum"`
}

// Validate checks the document before it is re-simulated.
func (r *Replay) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, r.Version)
	}

	var errs []error
	if r.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", r.TickRate))
	}
	if r.Ticks < 0 {
		errs = append(errs, fmt.Errorf("ticks must be non-negative, got %d", r.Ticks))
	}
	if err := checkTicks("jumps", r.Jumps, r.Ticks); err != nil {
		errs = append(errs, err)
	}
	if err := checkTicks("restarts", r.Restarts, r.Ticks); err != nil {
		errs = append(errs, err)
	}
	if err := r.Config.Validate(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("replay: invalid document: %w", err)
	}
	return nil
}

func checkTicks(field string, ticks []int, total int) error {
	if !sort.IntsAreSorted(ticks) {
		return fmt.Errorf("%s must be sorted", field)
	}
	for _, t := range ticks {
		if t < 0 || t >= total {
			return fmt.Errorf("%s tick %d outside [0, %d)", field, t, total)
		}
	}
	return nil
}

// Script returns the per-tick inputs of the replay.
func (r *Replay) Script() Script {
	return NewScript(r.Jumps, r.Restarts)
}

// Encode writes the replay as YAML.
func Encode(w io.Writer, r *Replay) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("replay: cannot encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("replay: cannot encode: %w", err)
	}
	return nil
}

// Decode reads a YAML replay. Missing tuning keys fall back to the defaults.
func Decode(rd io.Reader) (*Replay, error) {
	r := &Replay{Config: config.Default()}
	if err := yaml.NewDecoder(rd).Decode(r); err != nil {
		return nil, fmt.Errorf("replay: cannot decode: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Marshal encodes the replay into a byte slice.
func Marshal(r *Replay) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a replay from a byte slice.
func Unmarshal(data []byte) (*Replay, error) {
	return Decode(bytes.NewReader(data))
}
