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

// Package nyxlog is the process-global logging sink. It accepts
// level-tagged records and fans them out, via io.MultiWriter, to whichever
// of a framebuffer terminal and a serial port writer are registered; either
// can be swapped out for a plain os.Stdout in hosted tests and the CLI
// demo.
package nyxlog

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the package-global logger, analogous to the teacher's use of
// "gvisor.dev/gvisor/pkg/log" as a package-level sink rather than a
// dependency-injected *Logger everywhere.
var Log = logrus.New()

var (
	mu      sync.Mutex
	writers []io.Writer
)

func init() {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetOutput(os.Stdout)
}

// AddSink registers an additional writer that every subsequent log record
// is fanned out to, in addition to whatever sinks are already registered.
func AddSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writers = append(writers, w)
	rebuild()
}

// ResetSinks clears every registered sink and returns logging to stdout
// only.
func ResetSinks() {
	mu.Lock()
	defer mu.Unlock()
	writers = nil
	Log.SetOutput(os.Stdout)
}

// ForceUnlock is the panic-path escape hatch named in spec.md section 6: it
// drops nyxlog's own bookkeeping mutex unconditionally so that a panic
// handler which is itself trying to log does not deadlock against a sink
// mutation that was in flight when the panic occurred.
func ForceUnlock() {
	mu = sync.Mutex{}
}

func rebuild() {
	if len(writers) == 0 {
		Log.SetOutput(os.Stdout)
		return
	}
	all := append([]io.Writer{os.Stdout}, writers...)
	Log.SetOutput(io.MultiWriter(all...))
}
