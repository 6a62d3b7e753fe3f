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

// Package nyxirq provides scoped interrupt-disable critical sections and an
// IRQ-safe spinlock built on top of them.
//
// On real hardware this would be cli/sti around the local APIC's interrupt
// flag. There is no such flag available to a hosted process, so the
// "interrupt enable" state is modeled as a per-OS-thread flag backed by
// signal masking (see irq_hw.go, build tag nyxirq_hw) or, by default, by a
// single package-level flag guarded by a raw spinlock (irq_sim.go). Either
// backend satisfies the same contract: Save disables and returns a token
// that Restore uses to put the prior state back, and nested calls collapse
// to the outermost save/restore pair.
package nyxirq

// Flags is an opaque token describing the interrupt-enable state prior to a
// Save call. The zero Flags is never produced by Save.
type Flags struct {
	wasEnabled bool
	depth      uint32
}

// backend abstracts the mechanism used to actually mask/unmask interrupts
// on the current execution context. Exactly one implementation is linked in
// per build (see irq_sim.go and irq_hw.go).
type backend interface {
	disable() (wasEnabled bool, depth uint32)
	restore(wasEnabled bool, depth uint32)
	forceReset()
}

// Save disables interrupts on the current execution context and returns a
// Flags token. It is reentrant: a nested Save while interrupts are already
// disabled by an outer Save just bumps a depth counter, and only the
// outermost matching Restore actually re-enables interrupts.
//
// Save/Restore must always be paired via defer so that panics unwind the
// interrupt-enable state correctly:
//
//	flags := nyxirq.Save()
//	defer flags.Restore()
func Save() Flags {
	enabled, depth := activeBackend.disable()
	return Flags{wasEnabled: enabled, depth: depth}
}

// Restore restores the interrupt-enable state captured by the matching
// Save. Calling Restore more than once on the same Flags is a programming
// error and will unbalance the depth counter; callers should use defer to
// guarantee exactly one call.
func (f Flags) Restore() {
	activeBackend.restore(f.wasEnabled, f.depth)
}

// IRQSave runs f with interrupts disabled on the current execution context,
// restoring the prior state before returning, including when f panics.
func IRQSave[T any](f func() T) T {
	flags := Save()
	defer flags.Restore()
	return f()
}

// IRQSaveVoid is IRQSave for closures with no return value.
func IRQSaveVoid(f func()) {
	flags := Save()
	defer flags.Restore()
	f()
}

// ForceReset is the panic-path escape hatch: it resets the interrupt-enable
// bookkeeping to "enabled, depth 0" unconditionally. It is unsafe in the
// same sense as SpinlockIrqSave.ForceUnlock: only valid when the caller has
// already proven nothing else holds a Save token.
func ForceReset() {
	activeBackend.forceReset()
}
