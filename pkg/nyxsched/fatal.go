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

package nyxsched

import (
	"fmt"

	"nyx.dev/nyx/pkg/nyxlog"
)

// fatal reports an invariant violation: a kernel bug that cannot be
// recovered from, as distinct from ErrBadPriority's caller-visible,
// recoverable failure. It logs at panic level and panics, mirroring the
// teacher's own handling of "impossible" state transitions.
func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	nyxlog.Log.Panic(msg)
}
