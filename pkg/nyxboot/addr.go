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

package nyxboot

import "unsafe"

// stackTop returns the address one past the end of stack, matching the
// "stack_end" the original bring-up code hands to the interrupt-stack-table
// entry.
func stackTop(stack []byte) uintptr {
	return uintptr(unsafe.Pointer(&stack[0])) + uintptr(len(stack))
}
