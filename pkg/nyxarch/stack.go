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

package nyxarch

import "fmt"

// numCalleeSaved is the count of callee-saved register slots the amd64
// trampoline pushes/pops: rbx, rbp, r12, r13, r14, r15.
const numCalleeSaved = 6

// wordSize is the width in bytes of a stack slot on amd64.
const wordSize = 8

// Stack is a task's exclusively-owned kernel stack.
type Stack struct {
	mem []byte
}

// NewStack allocates a stack of the given size in bytes. size must be large
// enough to hold the synthetic fresh-task frame; NewStack panics otherwise,
// since an undersized stack is a caller bug, not a recoverable condition.
func NewStack(size int) Stack {
	min := (numCalleeSaved + 1) * wordSize
	if size < min {
		panic(fmt.Sprintf("nyxarch: stack size %d smaller than minimum frame %d", size, min))
	}
	return Stack{mem: make([]byte, size)}
}

// Bottom returns the base address of the stack region, i.e. the value
// get_current_stack() in the scheduler reports.
func (s Stack) Bottom() uintptr {
	if len(s.mem) == 0 {
		return 0
	}
	return uintptr(bytesAddr(s.mem))
}

// Prepare writes a synthetic activation record at the top of the stack as
// if the task had been suspended just before calling entry, and returns the
// resulting stack pointer for Scheduler.Spawn to store as the task's
// lastStackPointer. The entry address occupies the return-address slot; the
// callee-saved slots below it are zeroed.
func (s Stack) Prepare(entry uintptr) uintptr {
	top := len(s.mem)
	frame := (numCalleeSaved + 1) * wordSize
	if top < frame {
		panic("nyxarch: stack too small for fresh-task frame")
	}
	base := top - frame
	for i := 0; i < numCalleeSaved; i++ {
		putWord(s.mem[base+i*wordSize:], 0)
	}
	putWord(s.mem[base+numCalleeSaved*wordSize:], uint64(entry))
	return uintptr(bytesAddr(s.mem)) + uintptr(base)
}

func putWord(b []byte, v uint64) {
	for i := 0; i < wordSize; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
