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

// Package zset implements the sorted-set command surface of a RESP client:
// argument validation, range and boundary encoding, aggregation parameters,
// execution dispatch across the connection's direct, pipelined and
// transactional modes, and cursor-based incremental scans.
package zset

import (
	"context"

	"github.com/tidwall/resp"

	"github.com/wzhix/spring-data-redis/connection"
)

// Executor is the slice of the connection this package relies on: the current
// execution mode, blocking round trips and queued dispatch.
type Executor interface {
	Mode() connection.Mode
	Do(ctx context.Context, args ...string) (resp.Value, error)
	Queue(args ...string) (*connection.Deferred, error)
}

// Client issues sorted-set commands over a single connection. The client
// never changes the connection's mode; entering and flushing pipelines or
// transactions is the owner's responsibility.
type Client struct {
	conn Executor
}

// NewClient binds a command client to a connection.
func NewClient(conn Executor) *Client {
	return &Client{conn: conn}
}

// Result is the handle to a dispatched command's outcome. In direct mode the
// value is available as soon as the command method returns. In pipelined or
// transactional mode, Get reports connection.ErrNotFlushed until the owning
// batch has been flushed, after which it yields the converted reply.
type Result[T any] struct {
	val      T
	err      error
	deferred *connection.Deferred
	conv     func(resp.Value) (T, error)
}

// Get returns the command's converted value or its error. Get never performs
// network I/O; the round trip happened at dispatch (direct mode) or at the
// batch flush (queued modes).
func (r *Result[T]) Get() (T, error) {
	if r.deferred != nil {
		value, err := r.deferred.Value()
		if err != nil {
			var zero T
			return zero, err
		}
		r.val, r.err = r.conv(value)
		r.deferred = nil
	}
	return r.val, r.err
}

// Err returns the command's error, discarding the value.
func (r *Result[T]) Err() error {
	_, err := r.Get()
	return err
}

func resolved[T any](val T, err error) *Result[T] {
	return &Result[T]{val: val, err: err}
}

func failed[T any](err error) *Result[T] {
	return &Result[T]{err: err}
}

// dispatch consults the connection's mode once per command. Direct mode
// executes the round trip and converts the reply immediately; pipelined and
// transactional modes queue the command and carry the converter into the
// deferred handle for resolution after the flush.
func dispatch[T any](ctx context.Context, c *Client, conv func(resp.Value) (T, error), args ...string) *Result[T] {
	switch c.conn.Mode() {
	case connection.ModePipelined, connection.ModeTransactional:
		d, err := c.conn.Queue(args...)
		if err != nil {
			return failed[T](err)
		}
		return &Result[T]{deferred: d, conv: conv}
	default:
		value, err := c.conn.Do(ctx, args...)
		if err != nil {
			return failed[T](err)
		}
		return resolved(conv(value))
	}
}
