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

package internal

import (
	"math"
	"testing"
)

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  []string
		want string
	}{
		{
			name: "1. Single-word command",
			cmd:  []string{"PING"},
			want: "*1\r\n$4\r\nPING\r\n",
		},
		{
			name: "2. Command with arguments",
			cmd:  []string{"ZSCORE", "key", "member"},
			want: "*3\r\n$6\r\nZSCORE\r\n$3\r\nkey\r\n$6\r\nmember\r\n",
		},
		{
			name: "3. Empty argument keeps its slot",
			cmd:  []string{"ZADD", "key", "1", ""},
			want: "*4\r\n$4\r\nZADD\r\n$3\r\nkey\r\n$1\r\n1\r\n$0\r\n\r\n",
		},
		{
			name: "4. Binary-safe argument lengths count bytes",
			cmd:  []string{"ZSCORE", "key", "a\r\nb"},
			want: "*3\r\n$6\r\nZSCORE\r\n$3\r\nkey\r\n$4\r\na\r\nb\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(EncodeCommand(tt.cmd)); got != tt.want {
				t.Errorf("EncodeCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"1. Integer-valued score has no trailing zeros", 5, "5"},
		{"2. Fractional score keeps full precision", 3.5, "3.5"},
		{"3. Negative score", -2.25, "-2.25"},
		{"4. Positive infinity", math.Inf(1), "+inf"},
		{"5. Negative infinity", math.Inf(-1), "-inf"},
		{"6. High-precision score survives formatting", 1.0000000000000002, "1.0000000000000002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatScore(tt.score); got != tt.want {
				t.Errorf("FormatScore(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestParseScore(t *testing.T) {
	for _, token := range []string{"5", "3.5", "-2.25", "1.0000000000000002"} {
		score, err := ParseScore(token)
		if err != nil {
			t.Fatalf("ParseScore(%q) returned error: %v", token, err)
		}
		if got := FormatScore(score); got != token {
			t.Errorf("round trip of %q produced %q", token, got)
		}
	}

	if score, err := ParseScore("+inf"); err != nil || !math.IsInf(score, 1) {
		t.Errorf("ParseScore(+inf) = %v, %v", score, err)
	}
	if score, err := ParseScore("-inf"); err != nil || !math.IsInf(score, -1) {
		t.Errorf("ParseScore(-inf) = %v, %v", score, err)
	}
	if _, err := ParseScore("not-a-number"); err == nil {
		t.Error("expected error for malformed score token")
	}
}
