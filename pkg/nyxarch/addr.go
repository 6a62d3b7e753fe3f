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

import "unsafe"

// bytesAddr returns the address of the first byte of b's backing array.
// This is only ever used to report an opaque, comparable "stack region
// base" value; nothing dereferences it as a Go pointer once it has been
// converted to uintptr.
func bytesAddr(b []byte) unsafe.Pointer {
	return unsafe.Pointer(&b[0])
}
