// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package puzzle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a puzzle file.
type Format uint8

// TOML is the default puzzle format.
const TOML Format = 0

// YAML is an alternative puzzle format, with the same keys as TOML.
const YAML Format = 1

// FormatOf determines the format of a puzzle file from its extension.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return TOML, fmt.Errorf("unknown puzzle format \"%s\"", filepath.Ext(filename))
	}
}

// Load reads and compiles a puzzle from a given file, whose format is
// determined by its extension.
func Load(filename string) (*Puzzle, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	//
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filename, err)
	}
	//
	puzzle, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	// Default name
	if puzzle.Name == "" {
		puzzle.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	//
	return puzzle, nil
}

// Parse compiles a puzzle from its textual form in a given format.  Unknown
// keys are reported as errors, since they usually indicate a typo.
func Parse(data []byte, format Format) (*Puzzle, error) {
	var (
		file puzzleFile
		err  error
	)
	//
	switch format {
	case TOML:
		err = decodeToml(data, &file)
	case YAML:
		err = decodeYaml(data, &file)
	default:
		err = fmt.Errorf("unknown puzzle format %d", format)
	}
	//
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	//
	return file.compile()
}

func decodeToml(data []byte, file *puzzleFile) error {
	meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(file)
	if err != nil {
		return err
	}
	//
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key \"%s\"", undecoded[0])
	}
	//
	return nil
}

func decodeYaml(data []byte, file *puzzleFile) error {
	var decoder = yaml.NewDecoder(bytes.NewReader(data))
	//
	decoder.KnownFields(true)
	// An empty document is an empty puzzle
	if err := decoder.Decode(file); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	//
	return nil
}

// puzzleFile mirrors the on-disk layout of a puzzle.
type puzzleFile struct {
	Name     string       `toml:"name" yaml:"name"`
	Bits     uint         `toml:"bits" yaml:"bits"`
	Mode     string       `toml:"mode" yaml:"mode"`
	External []string     `toml:"external" yaml:"external"`
	Workers  uint         `toml:"workers" yaml:"workers"`
	Balls    []uint8      `toml:"balls" yaml:"balls"`
	Start    string       `toml:"start" yaml:"start"`
	Memory   string       `toml:"memory" yaml:"memory"`
	Program  *programFile `toml:"program" yaml:"program"`
	Cases    []caseFile   `toml:"case" yaml:"case"`
}

type programFile struct {
	Entry        []string `toml:"entry" yaml:"entry"`
	Memory       string   `toml:"memory" yaml:"memory"`
	Instructions []string `toml:"instructions" yaml:"instructions"`
}

type caseFile struct {
	Name     string        `toml:"name" yaml:"name"`
	Balls    []uint8       `toml:"balls" yaml:"balls"`
	Start    string        `toml:"start" yaml:"start"`
	Memory   string        `toml:"memory" yaml:"memory"`
	Register *registerFile `toml:"register" yaml:"register"`
	Expect   expectFile    `toml:"expect" yaml:"expect"`
}

type expectFile struct {
	Output    *string       `toml:"output" yaml:"output"`
	Memory    string        `toml:"memory" yaml:"memory"`
	Intercept string        `toml:"intercept" yaml:"intercept"`
	Register  *registerFile `toml:"register" yaml:"register"`
}

type registerFile struct {
	From  uint   `toml:"from" yaml:"from"`
	To    uint   `toml:"to" yaml:"to"`
	Value uint64 `toml:"value" yaml:"value"`
}
