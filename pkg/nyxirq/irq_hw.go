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

//go:build nyxirq_hw

package nyxirq

import (
	"runtime"
	"sync"

	"golang.org/x/sys/unix"
)

// hwBackend masks the timer-tick signal (timerSignal, SIGVTALRM, standing
// in for a dedicated IPI/timer vector) on the calling OS thread via
// pthread_sigmask, the same signal-masking trick
// gvisor's KVM platform uses to take a vCPU in and out of guest mode
// (bluepill/redpill) around host-visible state changes.
//
// The calling goroutine is pinned to its OS thread for the duration: IRQ
// state is inherently per-thread, and Go may otherwise migrate the
// goroutine mid critical-section.
type hwBackend struct {
	mu      sync.Mutex
	depth   uint32
	enabled bool
	sigset  unix.Sigset_t
}

var hwState = func() *hwBackend {
	b := &hwBackend{enabled: true}
	b.sigset.Set(int(timerSignal))
	return b
}()

var activeBackend backend = hwState

const timerSignal = unix.SIGVTALRM

func (b *hwBackend) disable() (wasEnabled bool, depth uint32) {
	runtime.LockOSThread()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.depth == 0 {
		var old unix.Sigset_t
		_ = unix.PthreadSigmask(unix.SIG_BLOCK, &b.sigset, &old)
		b.enabled = false
		wasEnabled = true
	} else {
		wasEnabled = b.enabled
	}
	b.depth++
	return wasEnabled, b.depth
}

func (b *hwBackend) restore(wasEnabled bool, depth uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.depth > 0 {
		b.depth--
	}
	if b.depth == 0 {
		if wasEnabled {
			_ = unix.PthreadSigmask(unix.SIG_UNBLOCK, &b.sigset, nil)
		}
		b.enabled = wasEnabled
		runtime.UnlockOSThread()
	}
}

func (b *hwBackend) forceReset() {
	b.mu.Lock()
	b.depth = 0
	b.enabled = true
	_ = unix.PthreadSigmask(unix.SIG_UNBLOCK, &b.sigset, nil)
	b.mu.Unlock()
}
