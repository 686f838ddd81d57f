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
	"context"
	"time"

	"github.com/wzhix/spring-data-redis/internal"
)

// ZAdd adds the member/score tuples to the sorted set at key, creating the
// set if it does not exist.
//
// Parameters:
//
// `key` - string - the key of the sorted set.
//
// `options` - ZAddOptions - add/update flags; the zero value upserts
// unconditionally.
//
// `members` - ...Tuple - the tuples to add.
//
// Returns: The number of members added, or added plus updated when the CH
// flag is set.
func (c *Client) ZAdd(ctx context.Context, key string, options ZAddOptions, members ...Tuple) *Result[int64] {
	if err := requireKey(key); err != nil {
		return failed[int64](err)
	}
	if len(members) == 0 {
		return failed[int64](wrapInvalid("at least one member is required"))
	}
	if err := options.validate(); err != nil {
		return failed[int64](err)
	}

	cmd := options.appendArgs([]string{"ZADD", key})
	for _, m := range members {
		cmd = append(cmd, internal.FormatScore(m.Score), m.Member)
	}
	return dispatch(ctx, c, toInt, cmd...)
}

// ZAddIncr increments member's score by increment, honoring the NX/XX/GT/LT
// flags. It returns the member's new score, or nil when the flags blocked
// the update.
func (c *Client) ZAddIncr(ctx context.Context, key string, options ZAddOptions, increment float64, member string) *Result[*float64] {
	if err := requireKey(key); err != nil {
		return failed[*float64](err)
	}
	if err := options.validate(); err != nil {
		return failed[*float64](err)
	}

	cmd := options.appendArgs([]string{"ZADD", key})
	cmd = append(cmd, "INCR", internal.FormatScore(increment), member)
	return dispatch(ctx, c, toFloatPtr, cmd...)
}

// ZCard returns the cardinality of the sorted set at key. A missing key
// counts as zero.
func (c *Client) ZCard(ctx context.Context, key string) *Result[int64] {
	if err := requireKey(key); err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, "ZCARD", key)
}

// ZCount returns the number of members whose scores fall within the score
// range.
func (c *Client) ZCount(ctx context.Context, key string, rng Range) *Result[int64] {
	if err := requireKey(key); err != nil {
		return failed[int64](err)
	}
	min, max, err := rng.scoreTokens()
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, "ZCOUNT", key, min, max)
}

// ZLexCount returns the number of members within the lexicographic range.
// The store only orders members lexicographically when they share a score.
func (c *Client) ZLexCount(ctx context.Context, key string, rng Range) *Result[int64] {
	if err := requireKey(key); err != nil {
		return failed[int64](err)
	}
	min, max, err := rng.lexTokens()
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, "ZLEXCOUNT", key, min, max)
}

// ZScore returns the score of member, or nil when the member or key does
// not exist.
func (c *Client) ZScore(ctx context.Context, key, member string) *Result[*float64] {
	if err := requireKey(key); err != nil {
		return failed[*float64](err)
	}
	return dispatch(ctx, c, toFloatPtr, "ZSCORE", key, member)
}

// ZMScore returns the scores of the listed members in argument order. The
// entry for a missing member is nil.
func (c *Client) ZMScore(ctx context.Context, key string, members ...string) *Result[[]*float64] {
	if err := requireKey(key); err != nil {
		return failed[[]*float64](err)
	}
	if err := requireMembers(members); err != nil {
		return failed[[]*float64](err)
	}
	cmd := append([]string{"ZMSCORE", key}, members...)
	return dispatch(ctx, c, toFloatPtrs, cmd...)
}

// ZIncrBy increments member's score by increment, creating the member (and
// the set) as needed, and returns the new score.
func (c *Client) ZIncrBy(ctx context.Context, key string, increment float64, member string) *Result[float64] {
	if err := requireKey(key); err != nil {
		return failed[float64](err)
	}
	return dispatch(ctx, c, toFloat, "ZINCRBY", key, internal.FormatScore(increment), member)
}

// ZRank returns the 0-based rank of member in ascending score order, or nil
// when the member does not exist.
func (c *Client) ZRank(ctx context.Context, key, member string) *Result[*int64] {
	if err := requireKey(key); err != nil {
		return failed[*int64](err)
	}
	return dispatch(ctx, c, toIntPtr, "ZRANK", key, member)
}

// ZRevRank works like ZRank but ranks in descending score order.
func (c *Client) ZRevRank(ctx context.Context, key, member string) *Result[*int64] {
	if err := requireKey(key); err != nil {
		return failed[*int64](err)
	}
	return dispatch(ctx, c, toIntPtr, "ZREVRANK", key, member)
}

// ZRem removes the listed members and returns how many were removed.
func (c *Client) ZRem(ctx context.Context, key string, members ...string) *Result[int64] {
	if err := requireKey(key); err != nil {
		return failed[int64](err)
	}
	if err := requireMembers(members); err != nil {
		return failed[int64](err)
	}
	cmd := append([]string{"ZREM", key}, members...)
	return dispatch(ctx, c, toInt, cmd...)
}

// ZRemRangeByRank removes the members ranked between start and stop
// inclusive and returns how many were removed. Negative ranks count from
// the highest score.
func (c *Client) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) *Result[int64] {
	if err := requireKey(key); err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, "ZREMRANGEBYRANK", key, internal.FormatInt(start), internal.FormatInt(stop))
}

// ZRemRangeByScore removes the members whose scores fall within the score
// range and returns how many were removed.
func (c *Client) ZRemRangeByScore(ctx context.Context, key string, rng Range) *Result[int64] {
	if err := requireKey(key); err != nil {
		return failed[int64](err)
	}
	min, max, err := rng.scoreTokens()
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, "ZREMRANGEBYSCORE", key, min, max)
}

// ZRemRangeByLex removes the members within the lexicographic range and
// returns how many were removed.
func (c *Client) ZRemRangeByLex(ctx context.Context, key string, rng Range) *Result[int64] {
	if err := requireKey(key); err != nil {
		return failed[int64](err)
	}
	min, max, err := rng.lexTokens()
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, "ZREMRANGEBYLEX", key, min, max)
}

// ZRange returns the members ranked between start and stop inclusive, in
// ascending score order. Negative ranks count from the highest score.
func (c *Client) ZRange(ctx context.Context, key string, start, stop int64) *Result[[]string] {
	if err := requireKey(key); err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, "ZRANGE", key, internal.FormatInt(start), internal.FormatInt(stop))
}

// ZRangeWithScores works like ZRange but returns member/score tuples.
func (c *Client) ZRangeWithScores(ctx context.Context, key string, start, stop int64) *Result[[]Tuple] {
	if err := requireKey(key); err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples,
		"ZRANGE", key, internal.FormatInt(start), internal.FormatInt(stop), "WITHSCORES")
}

// ZRevRange works like ZRange but in descending score order.
func (c *Client) ZRevRange(ctx context.Context, key string, start, stop int64) *Result[[]string] {
	if err := requireKey(key); err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, "ZREVRANGE", key, internal.FormatInt(start), internal.FormatInt(stop))
}

// ZRevRangeWithScores works like ZRevRange but returns member/score tuples.
func (c *Client) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *Result[[]Tuple] {
	if err := requireKey(key); err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples,
		"ZREVRANGE", key, internal.FormatInt(start), internal.FormatInt(stop), "WITHSCORES")
}

// ZRangeByScore returns the members whose scores fall within the score
// range, in ascending order.
//
// Parameters:
//
// `key` - string - the key of the sorted set.
//
// `rng` - Range - score boundaries; unbounded endpoints encode as the
// infinity literals, exclusive ones carry the open-range marker.
//
// `limit` - Limit - pagination; Unlimited() omits the LIMIT clause from the
// wire arguments entirely.
func (c *Client) ZRangeByScore(ctx context.Context, key string, rng Range, limit Limit) *Result[[]string] {
	cmd, err := c.scoreRangeCmd("ZRANGEBYSCORE", key, rng, limit, false)
	if err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, cmd...)
}

// ZRangeByScoreWithScores works like ZRangeByScore but returns member/score
// tuples.
func (c *Client) ZRangeByScoreWithScores(ctx context.Context, key string, rng Range, limit Limit) *Result[[]Tuple] {
	cmd, err := c.scoreRangeCmd("ZRANGEBYSCORE", key, rng, limit, true)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

// ZRevRangeByScore works like ZRangeByScore but in descending order. The
// protocol takes the max token before the min token for the reversed
// command.
func (c *Client) ZRevRangeByScore(ctx context.Context, key string, rng Range, limit Limit) *Result[[]string] {
	cmd, err := c.revScoreRangeCmd(key, rng, limit, false)
	if err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, cmd...)
}

// ZRevRangeByScoreWithScores works like ZRevRangeByScore but returns
// member/score tuples.
func (c *Client) ZRevRangeByScoreWithScores(ctx context.Context, key string, rng Range, limit Limit) *Result[[]Tuple] {
	cmd, err := c.revScoreRangeCmd(key, rng, limit, true)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

func (c *Client) scoreRangeCmd(name, key string, rng Range, limit Limit, withScores bool) ([]string, error) {
	if err := requireKey(key); err != nil {
		return nil, err
	}
	min, max, err := rng.scoreTokens()
	if err != nil {
		return nil, err
	}
	cmd := []string{name, key, min, max}
	if withScores {
		cmd = append(cmd, "WITHSCORES")
	}
	return limit.appendArgs(cmd)
}

func (c *Client) revScoreRangeCmd(key string, rng Range, limit Limit, withScores bool) ([]string, error) {
	if err := requireKey(key); err != nil {
		return nil, err
	}
	min, max, err := rng.scoreTokens()
	if err != nil {
		return nil, err
	}
	cmd := []string{"ZREVRANGEBYSCORE", key, max, min}
	if withScores {
		cmd = append(cmd, "WITHSCORES")
	}
	return limit.appendArgs(cmd)
}

// ZRangeByLex returns the members within the lexicographic range, in
// ascending order. All members must share a score for the store's lex
// ordering to be meaningful.
func (c *Client) ZRangeByLex(ctx context.Context, key string, rng Range, limit Limit) *Result[[]string] {
	if err := requireKey(key); err != nil {
		return failed[[]string](err)
	}
	min, max, err := rng.lexTokens()
	if err != nil {
		return failed[[]string](err)
	}
	cmd, err := limit.appendArgs([]string{"ZRANGEBYLEX", key, min, max})
	if err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, cmd...)
}

// ZRevRangeByLex works like ZRangeByLex but in descending order, with the
// max token preceding the min token on the wire.
func (c *Client) ZRevRangeByLex(ctx context.Context, key string, rng Range, limit Limit) *Result[[]string] {
	if err := requireKey(key); err != nil {
		return failed[[]string](err)
	}
	min, max, err := rng.lexTokens()
	if err != nil {
		return failed[[]string](err)
	}
	cmd, err := limit.appendArgs([]string{"ZREVRANGEBYLEX", key, max, min})
	if err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, cmd...)
}

// ZPopMin removes and returns the lowest-scored tuple, or nil when the set
// is empty or missing.
func (c *Client) ZPopMin(ctx context.Context, key string) *Result[*Tuple] {
	if err := requireKey(key); err != nil {
		return failed[*Tuple](err)
	}
	return dispatch(ctx, c, toTuplePtr, "ZPOPMIN", key)
}

// ZPopMax removes and returns the highest-scored tuple, or nil when the set
// is empty or missing.
func (c *Client) ZPopMax(ctx context.Context, key string) *Result[*Tuple] {
	if err := requireKey(key); err != nil {
		return failed[*Tuple](err)
	}
	return dispatch(ctx, c, toTuplePtr, "ZPOPMAX", key)
}

// ZPopMinCount removes and returns up to count lowest-scored tuples.
func (c *Client) ZPopMinCount(ctx context.Context, key string, count int64) *Result[[]Tuple] {
	cmd, err := c.popCountCmd("ZPOPMIN", key, count)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

// ZPopMaxCount removes and returns up to count highest-scored tuples.
func (c *Client) ZPopMaxCount(ctx context.Context, key string, count int64) *Result[[]Tuple] {
	cmd, err := c.popCountCmd("ZPOPMAX", key, count)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

func (c *Client) popCountCmd(name, key string, count int64) ([]string, error) {
	if err := requireKey(key); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, wrapInvalid("count must be positive")
	}
	if err := checkInt32("count", count); err != nil {
		return nil, err
	}
	return []string{name, key, internal.FormatInt(count)}, nil
}

// BZPopMin blocks until a member is available in any of the listed sets,
// then pops and returns the lowest-scored tuple. A nil tuple means the wait
// timed out. A zero timeout blocks indefinitely, bounded only by ctx.
func (c *Client) BZPopMin(ctx context.Context, timeout time.Duration, keys ...string) *Result[*Tuple] {
	cmd, err := blockingPopCmd("BZPOPMIN", timeout, keys)
	if err != nil {
		return failed[*Tuple](err)
	}
	return dispatch(ctx, c, toPoppedTuplePtr, cmd...)
}

// BZPopMax works like BZPopMin but pops the highest-scored tuple.
func (c *Client) BZPopMax(ctx context.Context, timeout time.Duration, keys ...string) *Result[*Tuple] {
	cmd, err := blockingPopCmd("BZPOPMAX", timeout, keys)
	if err != nil {
		return failed[*Tuple](err)
	}
	return dispatch(ctx, c, toPoppedTuplePtr, cmd...)
}

func blockingPopCmd(name string, timeout time.Duration, keys []string) ([]string, error) {
	if err := requireKeys(keys); err != nil {
		return nil, err
	}
	if timeout < 0 {
		return nil, wrapInvalid("timeout must not be negative")
	}
	cmd := append([]string{name}, keys...)
	return append(cmd, internal.FormatScore(timeout.Seconds())), nil
}

// ZRandMember returns one random member, or nil when the key does not
// exist.
func (c *Client) ZRandMember(ctx context.Context, key string) *Result[*string] {
	if err := requireKey(key); err != nil {
		return failed[*string](err)
	}
	return dispatch(ctx, c, toMemberPtr, "ZRANDMEMBER", key)
}

// ZRandMemberCount returns count random members. A negative count allows
// repeated members; a positive one returns distinct members.
func (c *Client) ZRandMemberCount(ctx context.Context, key string, count int64) *Result[[]string] {
	if err := requireKey(key); err != nil {
		return failed[[]string](err)
	}
	if err := checkInt32("count", count); err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, "ZRANDMEMBER", key, internal.FormatInt(count))
}

// ZRandMemberWithScore returns one random tuple, or nil when the key does
// not exist.
func (c *Client) ZRandMemberWithScore(ctx context.Context, key string) *Result[*Tuple] {
	if err := requireKey(key); err != nil {
		return failed[*Tuple](err)
	}
	return dispatch(ctx, c, toTuplePtr, "ZRANDMEMBER", key, "1", "WITHSCORES")
}

// ZRandMemberWithScores returns count random tuples, with the same count
// semantics as ZRandMemberCount.
func (c *Client) ZRandMemberWithScores(ctx context.Context, key string, count int64) *Result[[]Tuple] {
	if err := requireKey(key); err != nil {
		return failed[[]Tuple](err)
	}
	if err := checkInt32("count", count); err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, "ZRANDMEMBER", key, internal.FormatInt(count), "WITHSCORES")
}

// ZDiff returns the members of the first set that appear in none of the
// later sets.
func (c *Client) ZDiff(ctx context.Context, keys ...string) *Result[[]string] {
	cmd, err := multiSetCmd("ZDIFF", keys, false)
	if err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, cmd...)
}

// ZDiffWithScores works like ZDiff but returns member/score tuples.
func (c *Client) ZDiffWithScores(ctx context.Context, keys ...string) *Result[[]Tuple] {
	cmd, err := multiSetCmd("ZDIFF", keys, true)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

// ZDiffStore stores the difference of the source sets at destination and
// returns the resulting cardinality.
func (c *Client) ZDiffStore(ctx context.Context, destination string, keys ...string) *Result[int64] {
	cmd, err := storeMultiSetCmd("ZDIFFSTORE", destination, keys)
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, cmd...)
}

// ZInter returns the members common to all the listed sets, with default
// weighting and aggregation.
func (c *Client) ZInter(ctx context.Context, keys ...string) *Result[[]string] {
	cmd, err := multiSetCmd("ZINTER", keys, false)
	if err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, cmd...)
}

// ZInterWithScores works like ZInter but returns member/score tuples.
func (c *Client) ZInterWithScores(ctx context.Context, keys ...string) *Result[[]Tuple] {
	cmd, err := multiSetCmd("ZINTER", keys, true)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

// ZInterWithScoresWeighted intersects the listed sets with one weight per
// set and the given aggregate. Weights multiply each set's scores before
// the aggregate combines them.
func (c *Client) ZInterWithScoresWeighted(ctx context.Context, aggregate Aggregate, weights Weights, keys ...string) *Result[[]Tuple] {
	cmd, err := weightedMultiSetCmd("ZINTER", "", aggregate, weights, keys, true)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

// ZInterStore stores the intersection of the source sets at destination and
// returns the resulting cardinality.
func (c *Client) ZInterStore(ctx context.Context, destination string, keys ...string) *Result[int64] {
	cmd, err := storeMultiSetCmd("ZINTERSTORE", destination, keys)
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, cmd...)
}

// ZInterStoreWeighted works like ZInterStore with explicit weights and
// aggregate.
func (c *Client) ZInterStoreWeighted(ctx context.Context, destination string, aggregate Aggregate, weights Weights, keys ...string) *Result[int64] {
	cmd, err := weightedMultiSetCmd("ZINTERSTORE", destination, aggregate, weights, keys, false)
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, cmd...)
}

// ZUnion returns the members of the union of the listed sets, with default
// weighting and aggregation.
func (c *Client) ZUnion(ctx context.Context, keys ...string) *Result[[]string] {
	cmd, err := multiSetCmd("ZUNION", keys, false)
	if err != nil {
		return failed[[]string](err)
	}
	return dispatch(ctx, c, toMembers, cmd...)
}

// ZUnionWithScores works like ZUnion but returns member/score tuples.
func (c *Client) ZUnionWithScores(ctx context.Context, keys ...string) *Result[[]Tuple] {
	cmd, err := multiSetCmd("ZUNION", keys, true)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

// ZUnionWithScoresWeighted unions the listed sets with one weight per set
// and the given aggregate.
func (c *Client) ZUnionWithScoresWeighted(ctx context.Context, aggregate Aggregate, weights Weights, keys ...string) *Result[[]Tuple] {
	cmd, err := weightedMultiSetCmd("ZUNION", "", aggregate, weights, keys, true)
	if err != nil {
		return failed[[]Tuple](err)
	}
	return dispatch(ctx, c, toTuples, cmd...)
}

// ZUnionStore stores the union of the source sets at destination and
// returns the resulting cardinality.
func (c *Client) ZUnionStore(ctx context.Context, destination string, keys ...string) *Result[int64] {
	cmd, err := storeMultiSetCmd("ZUNIONSTORE", destination, keys)
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, cmd...)
}

// ZUnionStoreWeighted works like ZUnionStore with explicit weights and
// aggregate.
func (c *Client) ZUnionStoreWeighted(ctx context.Context, destination string, aggregate Aggregate, weights Weights, keys ...string) *Result[int64] {
	cmd, err := weightedMultiSetCmd("ZUNIONSTORE", destination, aggregate, weights, keys, false)
	if err != nil {
		return failed[int64](err)
	}
	return dispatch(ctx, c, toInt, cmd...)
}

// multiSetCmd builds `NAME numkeys key...` for the union/diff/intersection
// family.
func multiSetCmd(name string, keys []string, withScores bool) ([]string, error) {
	if err := requireKeys(keys); err != nil {
		return nil, err
	}
	cmd := append([]string{name, internal.FormatInt(int64(len(keys)))}, keys...)
	if withScores {
		cmd = append(cmd, "WITHSCORES")
	}
	return cmd, nil
}

func storeMultiSetCmd(name, destination string, keys []string) ([]string, error) {
	if err := requireKey(destination); err != nil {
		return nil, err
	}
	if err := requireKeys(keys); err != nil {
		return nil, err
	}
	return append([]string{name, destination, internal.FormatInt(int64(len(keys)))}, keys...), nil
}

// weightedMultiSetCmd builds the weighted variants, which always emit the
// explicit WEIGHTS and AGGREGATE clauses. An empty destination selects the
// non-store form.
func weightedMultiSetCmd(name, destination string, aggregate Aggregate, weights Weights, keys []string, withScores bool) ([]string, error) {
	if destination != "" {
		if err := requireKey(destination); err != nil {
			return nil, err
		}
	}
	if err := requireKeys(keys); err != nil {
		return nil, err
	}
	if err := validateAggregation(aggregate, weights, len(keys)); err != nil {
		return nil, err
	}

	cmd := []string{name}
	if destination != "" {
		cmd = append(cmd, destination)
	}
	cmd = append(cmd, internal.FormatInt(int64(len(keys))))
	cmd = append(cmd, keys...)
	cmd = appendAggregateArgs(cmd, aggregate, weights)
	if withScores {
		cmd = append(cmd, "WITHSCORES")
	}
	return cmd, nil
}
