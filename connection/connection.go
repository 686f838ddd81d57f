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

// Package connection provides a single-owner RESP connection to a
// redis-compatible store. A connection is always in one of three execution
// modes: direct, where commands run as blocking round trips, or pipelined /
// transactional, where commands are queued and resolved together when the
// batch is flushed. The connection does not pool, retry or authenticate.
package connection

import (
	"bytes"
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tidwall/resp"

	"github.com/wzhix/spring-data-redis/internal"
)

// Mode is the connection's current execution mode.
type Mode int

const (
	// ModeDirect executes each command as an immediate round trip.
	ModeDirect Mode = iota
	// ModePipelined buffers commands client-side until FlushPipeline.
	ModePipelined
	// ModeTransactional buffers commands inside a MULTI/EXEC block until Exec.
	ModeTransactional
)

func (m Mode) String() string {
	switch m {
	case ModePipelined:
		return "pipelined"
	case ModeTransactional:
		return "transactional"
	default:
		return "direct"
	}
}

var (
	// ErrClosed is returned by any operation on a closed connection.
	ErrClosed = errors.New("connection: closed")

	// ErrNotFlushed is returned by Deferred.Value while the owning batch has
	// not been flushed yet.
	ErrNotFlushed = errors.New("connection: result not available until the batch is flushed")

	// ErrDiscarded resolves queued commands whose batch was discarded.
	ErrDiscarded = errors.New("connection: batch discarded")

	// ErrTxAborted resolves queued commands when EXEC reports an aborted
	// transaction.
	ErrTxAborted = errors.New("connection: transaction aborted")
)

// Deferred is the handle to a queued command's reply. It becomes ready when
// the owning pipeline or transaction is flushed.
type Deferred struct {
	args  []string
	value resp.Value
	err   error
	ready bool
}

// Ready reports whether the batch holding this command has been resolved.
func (d *Deferred) Ready() bool {
	return d.ready
}

// Value returns the raw reply once the batch has been flushed. Before that it
// returns ErrNotFlushed.
func (d *Deferred) Value() (resp.Value, error) {
	if !d.ready {
		return resp.Value{}, ErrNotFlushed
	}
	return d.value, d.err
}

func (d *Deferred) resolve(value resp.Value, err error) {
	d.value, d.err, d.ready = value, err, true
}

// Conn is a RESP connection owned by exactly one logical caller at a time.
// It is not safe for concurrent use.
type Conn struct {
	raw    net.Conn
	rd     *resp.Reader
	mode   Mode
	queue  []*Deferred
	log    zerolog.Logger
	closed bool
}

// New wraps an established network connection. The caller keeps ownership of
// dialing and closing semantics; Close releases the underlying connection.
func New(raw net.Conn) *Conn {
	return &Conn{
		raw: raw,
		rd:  resp.NewReader(raw),
		log: zerolog.Nop(),
	}
}

// WithLogger attaches a logger for debug-level connection events.
func (c *Conn) WithLogger(log zerolog.Logger) *Conn {
	c.log = log
	return c
}

// Mode returns the connection's current execution mode.
func (c *Conn) Mode() Mode {
	return c.mode
}

// Do executes one command as a blocking round trip and returns the raw reply.
// Error replies from the store are surfaced as errors. Do is only available
// in direct mode.
func (c *Conn) Do(ctx context.Context, args ...string) (resp.Value, error) {
	if c.closed {
		return resp.Value{}, ErrClosed
	}
	if c.mode != ModeDirect {
		return resp.Value{}, errors.Errorf("connection: Do is not available in %s mode", c.mode)
	}
	if len(args) == 0 {
		return resp.Value{}, errors.New("connection: empty command")
	}
	if err := c.applyDeadline(ctx); err != nil {
		return resp.Value{}, err
	}
	defer c.clearDeadline()

	if _, err := c.raw.Write(internal.EncodeCommand(args)); err != nil {
		return resp.Value{}, errors.Wrapf(err, "connection: write %s", args[0])
	}
	value, err := c.readReply()
	if err != nil {
		return resp.Value{}, errors.Wrapf(err, "connection: %s", args[0])
	}
	c.log.Debug().Str("command", args[0]).Msg("round trip complete")
	return value, nil
}

// Queue appends a command to the pending batch and returns its deferred
// reply. Queue performs no I/O; the batch is written by FlushPipeline or
// Exec. Queue is only available in pipelined or transactional mode.
func (c *Conn) Queue(args ...string) (*Deferred, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.mode == ModeDirect {
		return nil, errors.New("connection: Queue requires pipelined or transactional mode")
	}
	if len(args) == 0 {
		return nil, errors.New("connection: empty command")
	}
	d := &Deferred{args: args}
	c.queue = append(c.queue, d)
	c.log.Debug().Str("command", args[0]).Int("pending", len(c.queue)).Msg("command queued")
	return d, nil
}

// StartPipeline switches the connection into pipelined mode. Subsequent
// commands are queued until FlushPipeline.
func (c *Conn) StartPipeline() error {
	return c.enterQueuedMode(ModePipelined)
}

// Multi switches the connection into transactional mode. The MULTI/EXEC
// frame is written around the queued commands when Exec is called.
func (c *Conn) Multi() error {
	return c.enterQueuedMode(ModeTransactional)
}

func (c *Conn) enterQueuedMode(mode Mode) error {
	if c.closed {
		return ErrClosed
	}
	if c.mode != ModeDirect {
		return errors.Errorf("connection: already in %s mode", c.mode)
	}
	c.mode = mode
	return nil
}

// Discard abandons the pending batch without any network interaction and
// returns the connection to direct mode. Queued commands resolve with
// ErrDiscarded.
func (c *Conn) Discard() error {
	if c.closed {
		return ErrClosed
	}
	if c.mode == ModeDirect {
		return errors.New("connection: no batch to discard")
	}
	for _, d := range c.queue {
		d.resolve(resp.Value{}, ErrDiscarded)
	}
	c.queue = nil
	c.mode = ModeDirect
	return nil
}

// FlushPipeline writes every queued command in submission order, reads one
// reply per command and resolves the deferred handles. The connection
// returns to direct mode regardless of outcome.
func (c *Conn) FlushPipeline(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if c.mode != ModePipelined {
		return errors.Errorf("connection: FlushPipeline called in %s mode", c.mode)
	}
	queue := c.queue
	c.queue = nil
	c.mode = ModeDirect

	if len(queue) == 0 {
		return nil
	}
	if err := c.applyDeadline(ctx); err != nil {
		c.failAll(queue, err)
		return err
	}
	defer c.clearDeadline()

	var buf bytes.Buffer
	for _, d := range queue {
		buf.Write(internal.EncodeCommand(d.args))
	}
	if _, err := c.raw.Write(buf.Bytes()); err != nil {
		err = errors.Wrap(err, "connection: write pipeline")
		c.failAll(queue, err)
		return err
	}

	c.log.Debug().Int("commands", len(queue)).Msg("pipeline flushed")

	for i, d := range queue {
		value, err := c.readReply()
		if err != nil {
			transportErr := errors.Wrapf(err, "connection: read pipeline reply %d", i)
			c.failAll(queue[i:], transportErr)
			return transportErr
		}
		d.resolve(value, nil)
	}
	return nil
}

// Exec writes the queued commands wrapped in a MULTI/EXEC frame, resolves
// each deferred handle from the EXEC reply array and returns the connection
// to direct mode. An aborted transaction resolves every handle with
// ErrTxAborted.
func (c *Conn) Exec(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if c.mode != ModeTransactional {
		return errors.Errorf("connection: Exec called in %s mode", c.mode)
	}
	queue := c.queue
	c.queue = nil
	c.mode = ModeDirect

	if len(queue) == 0 {
		return nil
	}
	if err := c.applyDeadline(ctx); err != nil {
		c.failAll(queue, err)
		return err
	}
	defer c.clearDeadline()

	var buf bytes.Buffer
	buf.Write(internal.EncodeCommand([]string{"MULTI"}))
	for _, d := range queue {
		buf.Write(internal.EncodeCommand(d.args))
	}
	buf.Write(internal.EncodeCommand([]string{"EXEC"}))
	if _, err := c.raw.Write(buf.Bytes()); err != nil {
		err = errors.Wrap(err, "connection: write transaction")
		c.failAll(queue, err)
		return err
	}

	// One reply for MULTI, one QUEUED ack per command, then the EXEC array.
	if _, _, err := c.rd.ReadValue(); err != nil {
		err = errors.Wrap(err, "connection: read MULTI reply")
		c.failAll(queue, err)
		return err
	}
	for i := range queue {
		if _, _, err := c.rd.ReadValue(); err != nil {
			transportErr := errors.Wrapf(err, "connection: read QUEUED ack %d", i)
			c.failAll(queue, transportErr)
			return transportErr
		}
	}
	result, err := c.readReply()
	if err != nil {
		err = errors.Wrap(err, "connection: EXEC")
		c.failAll(queue, err)
		return err
	}
	if result.IsNull() {
		c.failAll(queue, ErrTxAborted)
		return ErrTxAborted
	}

	replies := result.Array()
	if len(replies) != len(queue) {
		err = errors.Errorf("connection: EXEC returned %d replies for %d commands", len(replies), len(queue))
		c.failAll(queue, err)
		return err
	}
	for i, d := range queue {
		if replies[i].Type().String() == "Error" {
			d.resolve(resp.Value{}, replies[i].Error())
			continue
		}
		d.resolve(replies[i], nil)
	}
	c.log.Debug().Int("commands", len(queue)).Msg("transaction executed")
	return nil
}

// Close releases the underlying network connection. Pending deferred handles
// resolve with ErrClosed.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.failAll(c.queue, ErrClosed)
	c.queue = nil
	return c.raw.Close()
}

func (c *Conn) readReply() (resp.Value, error) {
	value, _, err := c.rd.ReadValue()
	if err != nil {
		return resp.Value{}, err
	}
	if value.Type().String() == "Error" {
		return resp.Value{}, value.Error()
	}
	return value, nil
}

func (c *Conn) failAll(queue []*Deferred, err error) {
	for _, d := range queue {
		if !d.ready {
			d.resolve(resp.Value{}, err)
		}
	}
}

func (c *Conn) applyDeadline(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return c.raw.SetDeadline(deadline)
	}
	return nil
}

func (c *Conn) clearDeadline() {
	_ = c.raw.SetDeadline(time.Time{})
}
