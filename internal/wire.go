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

// Package internal holds the wire-level helpers shared by the connection and
// command packages: RESP command encoding and the textual score format the
// store expects.
package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EncodeCommand serializes a command and its arguments into a RESP array of
// bulk strings, ready to be written to the store.
func EncodeCommand(cmd []string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("*%d\r\n", len(cmd)))
	for _, token := range cmd {
		b.WriteString(fmt.Sprintf("$%d\r\n%s\r\n", len(token), token))
	}
	return []byte(b.String())
}

// FormatScore renders a score as the shortest decimal text that round-trips a
// float64. Infinite scores use the protocol's dedicated infinity literals
// instead of a decimal approximation.
func FormatScore(score float64) string {
	if math.IsInf(score, 1) {
		return "+inf"
	}
	if math.IsInf(score, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// ParseScore is the inverse of FormatScore. strconv accepts the protocol's
// "+inf"/"-inf" literals directly.
func ParseScore(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// FormatInt renders an integer argument as its decimal text token.
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
