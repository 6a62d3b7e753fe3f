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

package nyxirq

import (
	"runtime"
	"sync/atomic"
)

// rawSpinlock is a test-and-set lock with no IRQ handling of its own; it is
// the mutual-exclusion primitive that SpinlockIrqSave wraps with Save and
// Restore.
type rawSpinlock struct {
	state atomic.Uint32
}

const (
	unlocked = 0
	locked   = 1
)

func (l *rawSpinlock) lock() {
	for !l.state.CompareAndSwap(unlocked, locked) {
		// Spin. A real kernel would issue a pause/cpu_relax instruction
		// here; there is no equivalent available to a hosted goroutine; a
		// call to runtime.Gosched() is the nearest available yield and
		// matches Go's own sync.Mutex slow-path contention handling.
		runtime.Gosched()
	}
}

func (l *rawSpinlock) unlock() {
	l.state.Store(unlocked)
}

func (l *rawSpinlock) forceUnlock() {
	l.state.Store(unlocked)
}

// SpinlockIrqSave is mutual exclusion that also disables interrupts on the
// local execution context for as long as it is held. Acquisition disables
// interrupts, then spins on the lock word; release stores-unlocked, then
// restores the prior interrupt state. It must never be held across a
// context switch.
type SpinlockIrqSave[T any] struct {
	raw   rawSpinlock
	value T
}

// NewSpinlockIrqSave constructs a lock guarding the given initial value.
func NewSpinlockIrqSave[T any](initial T) *SpinlockIrqSave[T] {
	return &SpinlockIrqSave[T]{value: initial}
}

// Lock disables interrupts and acquires the lock, returning a pointer to
// the guarded value and an unlock function that must be called exactly
// once (normally via defer) to release the lock and restore the prior
// interrupt state, in that order.
func (l *SpinlockIrqSave[T]) Lock() (*T, func()) {
	flags := Save()
	l.raw.lock()
	unlocked := false
	return &l.value, func() {
		if unlocked {
			return
		}
		unlocked = true
		l.raw.unlock()
		flags.Restore()
	}
}

// ForceUnlock is an escape hatch for panic paths: it unconditionally clears
// the lock word without touching the saved-IRQ-state bookkeeping. It is
// unsafe and only valid when the caller has proven no other holder of this
// lock can exist (e.g. while handling a kernel panic that is about to halt
// the machine).
func (l *SpinlockIrqSave[T]) ForceUnlock() {
	l.raw.forceUnlock()
}
