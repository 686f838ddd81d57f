// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package zset

import (
	"fmt"
	"math"
)

func wrapWith(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

func wrapInvalid(format string, args ...interface{}) error {
	return wrapWith(ErrInvalidArgument, format, args...)
}

func requireKey(key string) error {
	if key == "" {
		return wrapInvalid("key must not be empty")
	}
	return nil
}

// requireKeys validates a variable-length set list: it must be non-empty and
// free of empty entries.
func requireKeys(keys []string) error {
	if len(keys) == 0 {
		return wrapInvalid("at least one key is required")
	}
	for i, key := range keys {
		if key == "" {
			return wrapInvalid("keys must not contain empty entries (index %d)", i)
		}
	}
	return nil
}

func requireMembers(members []string) error {
	if len(members) == 0 {
		return wrapInvalid("at least one member is required")
	}
	return nil
}

// checkInt32 guards offsets and counts against the protocol's 32-bit signed
// integer domain before transmission.
func checkInt32(name string, v int64) error {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return fmt.Errorf("%w: %s %d exceeds the 32-bit signed integer range", ErrArgumentOutOfRange, name, v)
	}
	return nil
}
