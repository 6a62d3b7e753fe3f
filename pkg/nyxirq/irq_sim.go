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

//go:build !nyxirq_hw

package nyxirq

// simBackend models "the local CPU's interrupt flag" as process-global
// state protected by a raw test-and-set spinlock. This is the default
// backend: it is used whenever the module is built without the nyxirq_hw
// tag (that tag switches to irq_hw.go, which masks a real signal on the
// calling OS thread instead).
type simBackend struct {
	lock    rawSpinlock
	enabled bool
	depth   uint32
}

var simState = &simBackend{enabled: true}

var activeBackend backend = simState

func (b *simBackend) disable() (wasEnabled bool, depth uint32) {
	b.lock.lock()
	wasEnabled = b.enabled && b.depth == 0
	if b.depth == 0 {
		b.enabled = false
	}
	b.depth++
	depth = b.depth
	b.lock.unlock()
	return wasEnabled, depth
}

func (b *simBackend) restore(wasEnabled bool, depth uint32) {
	b.lock.lock()
	if b.depth > 0 {
		b.depth--
	}
	if b.depth == 0 {
		b.enabled = wasEnabled
	}
	b.lock.unlock()
}

func (b *simBackend) forceReset() {
	b.lock.forceUnlock()
	b.lock.lock()
	b.enabled = true
	b.depth = 0
	b.lock.unlock()
}
