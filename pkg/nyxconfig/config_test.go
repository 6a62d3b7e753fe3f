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

package nyxconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serial.BasePort != Default().Serial.BasePort {
		t.Fatalf("BasePort = %#x, want default %#x", cfg.Serial.BasePort, Default().Serial.BasePort)
	}
}

func TestLoadParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nyx.toml")
	const body = `
[scheduler]
num_priorities = 4

[log]
sinks = ["serial", "framebuffer"]
level = "debug"

[serial]
base_port = 0x2F8
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scheduler.NumPriorities != 4 {
		t.Fatalf("NumPriorities = %d, want 4", cfg.Scheduler.NumPriorities)
	}
	if len(cfg.Log.Sinks) != 2 || cfg.Log.Sinks[0] != SinkSerial || cfg.Log.Sinks[1] != SinkFramebuffer {
		t.Fatalf("Sinks = %v, want [serial framebuffer]", cfg.Log.Sinks)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Serial.BasePort != 0x2F8 {
		t.Fatalf("BasePort = %#x, want 0x2F8", cfg.Serial.BasePort)
	}
}

func TestBootLockRejectsSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boot.log")
	first, err := LockBootLog(path)
	if err != nil {
		t.Fatalf("first LockBootLog: %v", err)
	}
	defer first.Unlock()

	if _, err := LockBootLog(path); err == nil {
		t.Fatalf("expected second LockBootLog to fail while first holds the lock")
	}
}
