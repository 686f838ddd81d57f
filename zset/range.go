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
	"strings"

	"github.com/wzhix/spring-data-redis/internal"
)

// Wire tokens for range boundaries. Score ranges default to the infinity
// literals, lex ranges to the bare minus/plus tokens. The open-range marker
// "(" doubles as the exclusivity prefix for both kinds.
const (
	negInfToken   = "-inf"
	posInfToken   = "+inf"
	lexMinToken   = "-"
	lexMaxToken   = "+"
	exclusiveMark = "("
	inclusiveMark = "["
)

type boundaryKind int

const (
	boundaryUnbounded boundaryKind = iota
	boundaryInclusive
	boundaryExclusive
)

// Boundary is one endpoint of a range query: unbounded, inclusive or
// exclusive over either a numeric score or a lexicographic value. The zero
// value is unbounded.
type Boundary struct {
	kind  boundaryKind
	score float64
	lex   string
	isLex bool
}

// Unbounded returns the open endpoint. On the min end it encodes as the
// negative unbounded token, on the max end as the positive one.
func Unbounded() Boundary {
	return Boundary{}
}

// IncludeScore bounds a score range inclusively at score.
func IncludeScore(score float64) Boundary {
	return Boundary{kind: boundaryInclusive, score: score}
}

// ExcludeScore bounds a score range exclusively at score.
func ExcludeScore(score float64) Boundary {
	return Boundary{kind: boundaryExclusive, score: score}
}

// IncludeLex bounds a lexicographic range inclusively at value. An empty
// value is a legal bound on the empty string, distinct from Unbounded.
func IncludeLex(value string) Boundary {
	return Boundary{kind: boundaryInclusive, lex: value, isLex: true}
}

// ExcludeLex bounds a lexicographic range exclusively at value.
func ExcludeLex(value string) Boundary {
	return Boundary{kind: boundaryExclusive, lex: value, isLex: true}
}

// ScoreToken encodes the boundary as a score-range wire token, substituting
// the given token for an unbounded endpoint.
func (b Boundary) ScoreToken(unbounded string) (string, error) {
	if b.kind != boundaryUnbounded && b.isLex {
		return "", wrapInvalid("lexicographic boundary used in a score range")
	}
	switch b.kind {
	case boundaryExclusive:
		return exclusiveMark + internal.FormatScore(b.score), nil
	case boundaryInclusive:
		return internal.FormatScore(b.score), nil
	default:
		return unbounded, nil
	}
}

// LexToken encodes the boundary as a lexicographic-range wire token,
// substituting the given token for an unbounded endpoint.
func (b Boundary) LexToken(unbounded string) (string, error) {
	if b.kind != boundaryUnbounded && !b.isLex {
		return "", wrapInvalid("score boundary used in a lexicographic range")
	}
	switch b.kind {
	case boundaryExclusive:
		return exclusiveMark + b.lex, nil
	case boundaryInclusive:
		return inclusiveMark + b.lex, nil
	default:
		return unbounded, nil
	}
}

// ParseScoreBoundary decodes a score-range wire token back into a Boundary.
// The infinity literals decode as Unbounded.
func ParseScoreBoundary(token string) (Boundary, error) {
	if token == negInfToken || token == posInfToken {
		return Unbounded(), nil
	}
	exclusive := strings.HasPrefix(token, exclusiveMark)
	score, err := internal.ParseScore(strings.TrimPrefix(token, exclusiveMark))
	if err != nil {
		return Boundary{}, wrapInvalid("malformed score boundary %q", token)
	}
	if exclusive {
		return ExcludeScore(score), nil
	}
	return IncludeScore(score), nil
}

// ParseLexBoundary decodes a lexicographic-range wire token back into a
// Boundary.
func ParseLexBoundary(token string) (Boundary, error) {
	switch {
	case token == lexMinToken || token == lexMaxToken:
		return Unbounded(), nil
	case strings.HasPrefix(token, inclusiveMark):
		return IncludeLex(strings.TrimPrefix(token, inclusiveMark)), nil
	case strings.HasPrefix(token, exclusiveMark):
		return ExcludeLex(strings.TrimPrefix(token, exclusiveMark)), nil
	default:
		return Boundary{}, wrapInvalid("malformed lexicographic boundary %q", token)
	}
}

// Range bounds a query between a min and a max boundary. Both boundaries
// must be of the same kind (score or lex) for a given operation.
type Range struct {
	Min Boundary
	Max Boundary
}

func (r Range) scoreTokens() (string, string, error) {
	min, err := r.Min.ScoreToken(negInfToken)
	if err != nil {
		return "", "", err
	}
	max, err := r.Max.ScoreToken(posInfToken)
	if err != nil {
		return "", "", err
	}
	return min, max, nil
}

func (r Range) lexTokens() (string, string, error) {
	min, err := r.Min.LexToken(lexMinToken)
	if err != nil {
		return "", "", err
	}
	max, err := r.Max.LexToken(lexMaxToken)
	if err != nil {
		return "", "", err
	}
	return min, max, nil
}

// Limit restricts a range query to count elements starting at offset.
// The zero value is the distinguished unlimited state, which omits the
// pagination clause from the wire arguments entirely.
type Limit struct {
	offset  int64
	count   int64
	limited bool
}

// NewLimit paginates a range query. A negative count requests all elements
// from offset onward.
func NewLimit(offset, count int64) Limit {
	return Limit{offset: offset, count: count, limited: true}
}

// Unlimited returns the no-pagination limit.
func Unlimited() Limit {
	return Limit{}
}

// IsUnlimited reports whether the limit omits pagination.
func (l Limit) IsUnlimited() bool {
	return !l.limited
}

// appendArgs appends the LIMIT clause unless the limit is unlimited.
// Offset and count are range-checked before transmission.
func (l Limit) appendArgs(cmd []string) ([]string, error) {
	if !l.limited {
		return cmd, nil
	}
	if err := checkInt32("offset", l.offset); err != nil {
		return nil, err
	}
	if err := checkInt32("count", l.count); err != nil {
		return nil, err
	}
	return append(cmd, "LIMIT", internal.FormatInt(l.offset), internal.FormatInt(l.count)), nil
}
