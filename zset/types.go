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

// Tuple pairs a sorted-set member with its score. Members are binary-safe
// strings; the store, not this layer, enforces member uniqueness and score
// ordering.
type Tuple struct {
	Member string
	Score  float64
}

// ZAddOptions modifies the effects of ZAdd and ZAddIncr.
//
// "NX" only adds members that do not currently exist in the sorted set.
// Mutually exclusive with "XX", "GT" and "LT".
//
// "XX" only updates the scores of members that already exist.
//
// "GT" only updates a score when the new score is greater than the current
// one. "LT" is the mirror image. The two are mutually exclusive.
//
// "CH" changes the reply to count updated members as well as added ones.
type ZAddOptions struct {
	NX bool
	XX bool
	GT bool
	LT bool
	CH bool
}

func (o ZAddOptions) validate() error {
	if o.NX && o.XX {
		return wrapInvalid("NX and XX flags are mutually exclusive")
	}
	if o.NX && (o.GT || o.LT) {
		return wrapInvalid("GT and LT flags are not allowed with the NX flag")
	}
	if o.GT && o.LT {
		return wrapInvalid("GT and LT flags are mutually exclusive")
	}
	return nil
}

func (o ZAddOptions) appendArgs(cmd []string) []string {
	switch {
	case o.NX:
		cmd = append(cmd, "NX")
	case o.XX:
		cmd = append(cmd, "XX")
	}
	switch {
	case o.GT:
		cmd = append(cmd, "GT")
	case o.LT:
		cmd = append(cmd, "LT")
	}
	if o.CH {
		cmd = append(cmd, "CH")
	}
	return cmd
}
