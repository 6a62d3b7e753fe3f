// Copyright 2024 The Nyx Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package nyxconfig loads the on-disk configuration for the nyxctl demo
// kernel: how many priority levels the ready queue exposes, which log sinks
// to wire up, and the serial port's I/O base address.
package nyxconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LogSink names a nyxlog sink that Config can request be wired up.
type LogSink string

const (
	SinkSerial      LogSink = "serial"
	SinkFramebuffer LogSink = "framebuffer"
)

// Config is the root of the TOML configuration file nyxctl boot reads.
type Config struct {
	Scheduler SchedulerConfig `toml:"scheduler"`
	Log       LogConfig       `toml:"log"`
	Serial    SerialConfig    `toml:"serial"`
}

// SchedulerConfig configures the scheduler's static parameters.
type SchedulerConfig struct {
	// NumPriorities overrides nyxsched.NumPriorities for validation
	// purposes only; the ready queue's level count is compiled in, so a
	// mismatch here is reported rather than silently ignored.
	NumPriorities int `toml:"num_priorities"`
}

// LogConfig lists which sinks nyxlog should fan out to, beyond stdout.
type LogConfig struct {
	Sinks []LogSink `toml:"sinks"`
	Level string    `toml:"level"`
}

// SerialConfig configures the nyxserial.Port log sink.
type SerialConfig struct {
	BasePort uint16 `toml:"base_port"`
}

// Default returns the configuration nyxctl uses when no config file is
// given: one priority band count matching nyxsched.NumPriorities, logging
// to serial only, at the conventional COM1 base.
func Default() *Config {
	return &Config{
		Scheduler: SchedulerConfig{NumPriorities: 8},
		Log:       LogConfig{Sinks: []LogSink{SinkSerial}, Level: "info"},
		Serial:    SerialConfig{BasePort: 0x3F8},
	}
}

// Load reads and parses a TOML configuration file at path. A missing file
// is not an error: Load returns Default() instead, since a bare boot with
// no config file is a legitimate way to run the demo kernel.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("nyxconfig: reading %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("nyxconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}
