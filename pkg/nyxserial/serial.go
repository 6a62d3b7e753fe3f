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

// Package nyxserial implements a writer over the 16550 UART at I/O port
// 0x3F8, for use as a nyxlog sink.
package nyxserial

import (
	"sync"

	"github.com/cenkalti/backoff"
)

// DefaultPort is the conventional COM1 I/O base address.
const DefaultPort = 0x3F8

// portIO abstracts the actual byte-at-a-time transmit so Port can run both
// on real hardware (io_hw.go, build tag nyxserial_hw) and hosted (io_sim.go,
// the default): a loopback ring buffer any test can inspect.
type portIO interface {
	transmitReady() bool
	transmit(b byte)
}

// Port is a serial port writer. Construction selects the production or
// loopback portIO backend depending on build tags; everything above that
// line is shared.
type Port struct {
	mu   sync.Mutex
	io   portIO
	base uint16
}

// New constructs a Port at the given I/O base address.
func New(base uint16) *Port {
	return &Port{io: newPortIO(base), base: base}
}

// Write implements io.Writer, transmitting each byte of p, busy-waiting on
// the UART's transmit-holding-register-empty bit between bytes. The wait
// uses an exponential backoff rather than a tight spin loop so that the
// hosted loopback backend (which never actually needs to wait) and the demo
// CLI do not burn a core polling a line that is already ready.
func (p *Port) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range b {
		p.waitReadyLocked()
		p.io.transmit(c)
	}
	return len(b), nil
}

func (p *Port) waitReadyLocked() {
	boff := backoff.NewExponentialBackOff()
	boff.InitialInterval = boff.InitialInterval / 100
	boff.MaxInterval = boff.MaxInterval / 10
	for !p.io.transmitReady() {
		d := boff.NextBackOff()
		if d == backoff.Stop {
			return
		}
		spinWait(d)
	}
}

// ForceUnlock is the panic-path escape hatch named in spec.md section 6.
func (p *Port) ForceUnlock() {
	p.mu = sync.Mutex{}
}
