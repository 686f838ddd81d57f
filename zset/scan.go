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

	"github.com/gobwas/glob"

	"github.com/wzhix/spring-data-redis/connection"
	"github.com/wzhix/spring-data-redis/internal"
)

// scanTerminator starts a scan and, when returned by the store, signals its
// completion.
const scanTerminator = "0"

// ScanOptions carries the optional member pattern and page-size hint for
// ZScan. The zero value scans everything at the store's default page size.
type ScanOptions struct {
	// Match filters members server-side with a glob-style pattern.
	Match string
	// Count hints how many elements each round trip should inspect.
	Count int64
}

func (o ScanOptions) validate() error {
	if o.Match != "" {
		if _, err := glob.Compile(o.Match); err != nil {
			return wrapInvalid("malformed MATCH pattern %q", o.Match)
		}
	}
	if o.Count < 0 {
		return wrapInvalid("scan COUNT must not be negative")
	}
	return checkInt32("count", o.Count)
}

type scanState int

const (
	scanCreated scanState = iota
	scanActive
	scanExhausted
	scanClosed
)

// ScanCursor walks a sorted set incrementally, issuing one scan round trip
// per page and yielding member/score tuples one at a time. A cursor makes a
// single pass and cannot be restarted; construct a new one to rescan. The
// owning connection must stay in direct mode for the cursor's lifetime.
type ScanCursor struct {
	conn   Executor
	key    string
	opts   ScanOptions
	cursor string
	state  scanState
	batch  []Tuple
	pos    int
	err    error
}

// ZScan opens a cursor over the sorted set at key. It fails with
// ErrUnsupportedInMode before any network interaction when the connection is
// in pipelined or transactional mode, since scan replies cannot be resolved
// inline there.
func (c *Client) ZScan(key string, opts ScanOptions) (*ScanCursor, error) {
	if err := requireKey(key); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if c.conn.Mode() != connection.ModeDirect {
		return nil, wrapUnsupported("ZSCAN")
	}
	return &ScanCursor{
		conn:   c.conn,
		key:    key,
		opts:   opts,
		cursor: scanTerminator,
		pos:    -1,
	}, nil
}

func wrapUnsupported(name string) error {
	return wrapWith(ErrUnsupportedInMode, "%s cannot be called in pipeline or transaction mode", name)
}

// Next advances the cursor to the next tuple, issuing scan commands as
// needed. It returns false once the set is exhausted, the cursor is closed,
// or an error occurred; Err distinguishes the cases. Intermediate pages may
// legitimately be empty, so Next keeps fetching until it has a tuple or the
// store reports the terminal cursor.
func (sc *ScanCursor) Next(ctx context.Context) bool {
	if sc.err != nil {
		return false
	}
	switch sc.state {
	case scanClosed:
		sc.err = ErrIteratorClosed
		return false
	case scanExhausted:
		return false
	}
	for {
		if sc.pos+1 < len(sc.batch) {
			sc.pos++
			return true
		}
		if sc.state == scanActive && sc.cursor == scanTerminator {
			sc.state = scanExhausted
			return false
		}
		if err := sc.fetch(ctx); err != nil {
			sc.err = err
			return false
		}
	}
}

// fetch issues one scan round trip and replaces the current batch.
func (sc *ScanCursor) fetch(ctx context.Context) error {
	cmd := []string{"ZSCAN", sc.key, sc.cursor}
	if sc.opts.Match != "" {
		cmd = append(cmd, "MATCH", sc.opts.Match)
	}
	if sc.opts.Count > 0 {
		cmd = append(cmd, "COUNT", internal.FormatInt(sc.opts.Count))
	}
	value, err := sc.conn.Do(ctx, cmd...)
	if err != nil {
		return err
	}
	cursor, batch, err := toScanPage(value)
	if err != nil {
		return err
	}
	sc.state = scanActive
	sc.cursor = cursor
	sc.batch = batch
	sc.pos = -1
	return nil
}

// Tuple returns the tuple the last successful Next advanced to.
func (sc *ScanCursor) Tuple() Tuple {
	if sc.pos < 0 || sc.pos >= len(sc.batch) {
		return Tuple{}
	}
	return sc.batch[sc.pos]
}

// Err returns the first error the cursor encountered, if any.
func (sc *ScanCursor) Err() error {
	return sc.err
}

// Close releases the cursor's connection reference. Further Next calls fail
// with ErrIteratorClosed. Closing an exhausted or already-closed cursor is a
// no-op.
func (sc *ScanCursor) Close() error {
	if sc.state == scanClosed {
		return nil
	}
	sc.state = scanClosed
	sc.conn = nil
	sc.batch = nil
	return nil
}
