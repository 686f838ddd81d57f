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

import "github.com/wzhix/spring-data-redis/internal"

// Aggregate selects how scores of the same member combine across multiple
// input sets during a union or intersection. Per-set weights are applied
// before the aggregate compares or sums.
type Aggregate int

const (
	AggregateSum Aggregate = iota
	AggregateMin
	AggregateMax
)

func (a Aggregate) String() string {
	switch a {
	case AggregateMin:
		return "MIN"
	case AggregateMax:
		return "MAX"
	default:
		return "SUM"
	}
}

func (a Aggregate) valid() bool {
	return a >= AggregateSum && a <= AggregateMax
}

// Weights holds one score multiplier per input set.
type Weights []float64

// validateAggregation is checked by every weighted multi-set entry point
// before any wire arguments are built.
func validateAggregation(aggregate Aggregate, weights Weights, numSets int) error {
	if !aggregate.valid() {
		return wrapInvalid("unknown aggregate %d", int(aggregate))
	}
	if len(weights) != numSets {
		return wrapInvalid("the number of weights (%d) must match the number of source sets (%d)",
			len(weights), numSets)
	}
	return nil
}

// appendAggregateArgs appends the explicit WEIGHTS and AGGREGATE clauses.
// The weighted command variants always emit both, even for the store's
// defaults (weight 1 each, SUM); the unweighted variants never call this.
func appendAggregateArgs(cmd []string, aggregate Aggregate, weights Weights) []string {
	cmd = append(cmd, "WEIGHTS")
	for _, w := range weights {
		cmd = append(cmd, internal.FormatScore(w))
	}
	return append(cmd, "AGGREGATE", aggregate.String())
}
