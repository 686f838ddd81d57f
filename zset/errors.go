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

import "errors"

// Every command entry point validates its arguments before any network
// interaction, so the sentinels below are always returned without I/O having
// taken place. Transport failures from the connection are propagated
// unchanged and are never retried here. All sentinels match with errors.Is.
var (
	// ErrInvalidArgument reports a missing or structurally invalid argument:
	// an empty key, an empty set list, mismatched weights, or mixed
	// score/lex boundaries in one range.
	ErrInvalidArgument = errors.New("zset: invalid argument")

	// ErrArgumentOutOfRange reports an offset or count outside the 32-bit
	// signed integer domain the protocol accepts.
	ErrArgumentOutOfRange = errors.New("zset: argument out of range")

	// ErrUnsupportedInMode reports an operation that cannot run while the
	// connection is in pipelined or transactional mode.
	ErrUnsupportedInMode = errors.New("zset: operation not supported in current connection mode")

	// ErrIteratorClosed reports use of a scan cursor after Close.
	ErrIteratorClosed = errors.New("zset: iterator closed")
)
