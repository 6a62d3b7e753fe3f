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

package nyxconfig

import (
	"fmt"

	"github.com/gofrs/flock"
)

// BootLock is an advisory, cross-process lock on the demo kernel's boot log
// file: real firmware has exactly one CPU executing boot; nyxctl boot
// enforces the hosted analogue by refusing to start a second instance
// against the same log file.
type BootLock struct {
	fl *flock.Flock
}

// LockBootLog takes an exclusive, non-blocking advisory lock on path (the
// boot log file). It returns an error immediately if another nyxctl boot is
// already running against the same path, rather than blocking.
func LockBootLog(path string) (*BootLock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("nyxconfig: locking %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("nyxconfig: %s is locked by another instance", path)
	}
	return &BootLock{fl: fl}, nil
}

// Unlock releases the boot log lock.
func (b *BootLock) Unlock() error {
	return b.fl.Unlock()
}
