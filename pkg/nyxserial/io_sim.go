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

//go:build !nyxserial_hw

package nyxserial

// loopbackIO is the default portIO: a ring buffer any hosted test or the
// CLI demo can inspect, standing in for a real UART. transmitReady always
// reports true, since there is no real transmit-holding register to poll.
type loopbackIO struct {
	base   uint16
	buf    []byte
	maxLen int
}

func newPortIO(base uint16) portIO {
	return &loopbackIO{base: base, maxLen: 4096}
}

func (l *loopbackIO) transmitReady() bool { return true }

func (l *loopbackIO) transmit(b byte) {
	l.buf = append(l.buf, b)
	if len(l.buf) > l.maxLen {
		l.buf = l.buf[len(l.buf)-l.maxLen:]
	}
}

// Buffered returns a copy of everything transmitted so far. It exists for
// hosted tests to assert on; real hardware has no equivalent readback.
func (p *Port) Buffered() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	l := p.io.(*loopbackIO)
	out := make([]byte, len(l.buf))
	copy(out, l.buf)
	return out
}
