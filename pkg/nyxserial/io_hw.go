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

//go:build nyxserial_hw

package nyxserial

import "golang.org/x/sys/unix"

// hwIO is the real port-mapped I/O backend. It requires CAP_SYS_RAWIO and
// an ioperm(2)/iopl(2) grant for base, which is the caller's (boot-time)
// responsibility; this file only issues the inb/outb-equivalent syscalls.
type hwIO struct {
	base uint16
}

func newPortIO(base uint16) portIO {
	return &hwIO{base: base}
}

const lineStatusRegOffset = 5
const transmitHoldingEmpty = 1 << 5

func (h *hwIO) transmitReady() bool {
	status, err := unix.IoctlGetInt(int(h.base+lineStatusRegOffset), ioctlInB)
	if err != nil {
		return false
	}
	return status&transmitHoldingEmpty != 0
}

func (h *hwIO) transmit(b byte) {
	_ = unix.IoctlSetInt(int(h.base), ioctlOutB, int(b))
}

// ioctlInB/ioctlOutB are placeholders for the platform-specific ioperm
// request codes a real port-I/O shim would define; wiring them to an actual
// ioctl number is a boot-configuration concern outside this package, which
// only needs the build tag to select this file over io_sim.go.
const (
	ioctlInB  = 0
	ioctlOutB = 0
)
