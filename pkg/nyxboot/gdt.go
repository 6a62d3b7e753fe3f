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

// Package nyxboot is the one-shot GDT/TSS bring-up collaborator named in
// spec.md section 6. It installs one kernel code segment and one TSS
// segment, with interrupt-stack-table slot 0 reserved for double-fault
// handling. The scheduler never calls back into this package once boot has
// run; it is documented and stubbed here only so the external interface it
// occupies has a concrete home.
package nyxboot

const (
	// DoubleFaultISTIndex is the interrupt-stack-table slot reserved for
	// the double-fault handler.
	DoubleFaultISTIndex = 0

	doubleFaultStackSize = 4096 * 5
)

// TSS is a minimal task state segment: only the interrupt-stack-table this
// kernel actually uses.
type TSS struct {
	InterruptStackTable [7]uintptr
}

// GDT is a minimal global descriptor table: one kernel code segment and,
// once Install runs, one TSS segment.
type GDT struct {
	entries []uintptr
	loaded  bool
}

var (
	doubleFaultStack [doubleFaultStackSize]byte
	globalTSS        TSS
	globalGDT        = &GDT{entries: []uintptr{kernelCodeSegmentDescriptor}}
)

// kernelCodeSegmentDescriptor is a placeholder flat descriptor value; a
// real bring-up would encode ring, granularity, and long-mode bits here.
const kernelCodeSegmentDescriptor = 0x00af9a000000ffff

// Install performs the one-shot boot-time GDT/TSS bring-up: it reserves the
// double-fault stack, adds the TSS descriptor to the GDT, and loads the
// GDT. It must be called exactly once, before any interrupt can fire, and
// before a Scheduler is constructed.
func Install() *GDT {
	globalTSS.InterruptStackTable[DoubleFaultISTIndex] = stackTop(doubleFaultStack[:])
	globalGDT.entries = append(globalGDT.entries, tssDescriptor(&globalTSS))
	globalGDT.loaded = true
	return globalGDT
}

// Loaded reports whether Install has run.
func (g *GDT) Loaded() bool { return g.loaded }

func tssDescriptor(t *TSS) uintptr {
	return uintptr(0xffffffff) // stand-in for an encoded TSS segment descriptor.
}
