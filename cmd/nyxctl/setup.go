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

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"nyx.dev/nyx/pkg/nyxconfig"
	"nyx.dev/nyx/pkg/nyxlog"
	"nyx.dev/nyx/pkg/nyxsched"
	"nyx.dev/nyx/pkg/nyxserial"
	"nyx.dev/nyx/pkg/nyxterm"
)

// demoFramebufferGeometry backs the in-memory framebuffer nyxctl wires up
// when a config asks for the framebuffer sink; nothing maps real video
// memory in a hosted process, so this is a plain byte slice standing in for
// one.
const (
	demoFBWidth  = 640
	demoFBHeight = 480
	demoFBBpp    = 4
)

// wireLogSinks registers nyxlog sinks according to cfg, returning a cleanup
// func that resets them.
func wireLogSinks(cfg *nyxconfig.Config) func() {
	for _, sink := range cfg.Log.Sinks {
		switch sink {
		case nyxconfig.SinkSerial:
			nyxlog.AddSink(nyxserial.New(cfg.Serial.BasePort))
		case nyxconfig.SinkFramebuffer:
			buf := make([]byte, demoFBWidth*demoFBHeight*demoFBBpp)
			info := nyxterm.Info{
				Width:         demoFBWidth,
				Height:        demoFBHeight,
				Stride:        demoFBWidth,
				BytesPerPixel: demoFBBpp,
				Format:        nyxterm.PixelFormatRGB,
			}
			nyxlog.AddSink(nyxterm.New(buf, info))
		default:
			nyxlog.Log.Warnf("nyxctl: ignoring unknown log sink %q", sink)
		}
	}
	return nyxlog.ResetSinks
}

// newDemoScheduler constructs a Scheduler backed by demoSwitcher, the only
// switcher safe to drive from a hosted CLI process.
func newDemoScheduler() *nyxsched.Scheduler {
	return nyxsched.New(nyxsched.WithSwitcher(demoSwitcher{}))
}

// renderPS writes a table of every live task to standard output, in the style of a
// process-listing tool: one row per task, ascending TaskID order (the same
// order nyxsched.Scheduler.Tasks walks the underlying B-tree in).
func renderPS(sch *nyxsched.Scheduler) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY")
	sch.Tasks(func(t *nyxsched.Task) bool {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", t.ID(), t.Status(), t.Priority())
		return true
	})
	tw.Flush()
}
