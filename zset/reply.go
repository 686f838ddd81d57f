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

	"github.com/tidwall/resp"

	"github.com/wzhix/spring-data-redis/internal"
)

// Result converters. Each maps a raw reply value onto the command's Go
// result type. A store-legitimate "no value" reply (nil bulk, empty array)
// maps onto a nil pointer, never onto an error.

func toInt(v resp.Value) (int64, error) {
	return int64(v.Integer()), nil
}

func toIntPtr(v resp.Value) (*int64, error) {
	if v.IsNull() {
		return nil, nil
	}
	n := int64(v.Integer())
	return &n, nil
}

func toFloat(v resp.Value) (float64, error) {
	return internal.ParseScore(v.String())
}

func toFloatPtr(v resp.Value) (*float64, error) {
	if v.IsNull() {
		return nil, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func toFloatPtrs(v resp.Value) ([]*float64, error) {
	arr := v.Array()
	scores := make([]*float64, len(arr))
	for i, e := range arr {
		if e.IsNull() {
			continue
		}
		f, err := toFloat(e)
		if err != nil {
			return nil, err
		}
		scores[i] = &f
	}
	return scores, nil
}

func toMembers(v resp.Value) ([]string, error) {
	if v.IsNull() {
		return []string{}, nil
	}
	arr := v.Array()
	members := make([]string, len(arr))
	for i, e := range arr {
		members[i] = e.String()
	}
	return members, nil
}

func toMemberPtr(v resp.Value) (*string, error) {
	if v.IsNull() {
		return nil, nil
	}
	s := v.String()
	return &s, nil
}

// pairTuples consumes the flat member/score sequence that WITHSCORES
// replies carry.
func pairTuples(arr []resp.Value) ([]Tuple, error) {
	if len(arr)%2 != 0 {
		return nil, fmt.Errorf("zset: reply holds %d elements, expected member/score pairs", len(arr))
	}
	tuples := make([]Tuple, 0, len(arr)/2)
	for i := 0; i < len(arr); i += 2 {
		score, err := internal.ParseScore(arr[i+1].String())
		if err != nil {
			return nil, fmt.Errorf("zset: malformed score %q in reply", arr[i+1].String())
		}
		tuples = append(tuples, Tuple{Member: arr[i].String(), Score: score})
	}
	return tuples, nil
}

func toTuples(v resp.Value) ([]Tuple, error) {
	if v.IsNull() {
		return []Tuple{}, nil
	}
	return pairTuples(v.Array())
}

func toTuplePtr(v resp.Value) (*Tuple, error) {
	tuples, err := toTuples(v)
	if err != nil {
		return nil, err
	}
	if len(tuples) == 0 {
		return nil, nil
	}
	return &tuples[0], nil
}

// toPoppedTuplePtr decodes the [key, member, score] reply of the blocking
// pop commands, dropping the key. A null reply means the wait timed out.
func toPoppedTuplePtr(v resp.Value) (*Tuple, error) {
	if v.IsNull() {
		return nil, nil
	}
	arr := v.Array()
	if len(arr) < 3 {
		return nil, fmt.Errorf("zset: blocking pop reply holds %d elements, expected 3", len(arr))
	}
	score, err := internal.ParseScore(arr[2].String())
	if err != nil {
		return nil, fmt.Errorf("zset: malformed score %q in reply", arr[2].String())
	}
	return &Tuple{Member: arr[1].String(), Score: score}, nil
}

// toScanPage decodes one scan reply: the next cursor token and the page's
// member/score batch.
func toScanPage(v resp.Value) (string, []Tuple, error) {
	arr := v.Array()
	if len(arr) != 2 {
		return "", nil, fmt.Errorf("zset: scan reply holds %d elements, expected cursor and batch", len(arr))
	}
	batch, err := pairTuples(arr[1].Array())
	if err != nil {
		return "", nil, err
	}
	return arr[0].String(), batch, nil
}
