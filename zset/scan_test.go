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
	"errors"
	"testing"

	"github.com/go-test/deep"
	"github.com/tidwall/resp"

	"github.com/wzhix/spring-data-redis/connection"
)

func scanPage(cursor string, pairs ...string) resp.Value {
	vals := make([]resp.Value, 0, len(pairs))
	for _, p := range pairs {
		vals = append(vals, bulk(p))
	}
	return resp.ArrayValue([]resp.Value{bulk(cursor), resp.ArrayValue(vals)})
}

func collect(t *testing.T, sc *ScanCursor) []Tuple {
	t.Helper()
	var tuples []Tuple
	for sc.Next(context.Background()) {
		tuples = append(tuples, sc.Tuple())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("cursor failed: %v", err)
	}
	return tuples
}

func TestZScanWalksAllPages(t *testing.T) {
	conn := &fakeConn{replies: []resp.Value{
		scanPage("17", "m1", "1", "m2", "2"),
		scanPage("42"), // an empty intermediate page is not terminal
		scanPage("0", "m3", "3"),
	}}

	sc, err := NewClient(conn).ZScan("key", ScanOptions{})
	if err != nil {
		t.Fatalf("ZScan returned error: %v", err)
	}

	got := collect(t, sc)
	want := []Tuple{{Member: "m1", Score: 1}, {Member: "m2", Score: 2}, {Member: "m3", Score: 3}}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}

	// Each round trip carries the cursor returned by the previous one.
	wantCalls := [][]string{
		{"ZSCAN", "key", "0"},
		{"ZSCAN", "key", "17"},
		{"ZSCAN", "key", "42"},
	}
	if diff := deep.Equal(conn.calls, wantCalls); diff != nil {
		t.Error(diff)
	}

	// The exhausted cursor stays exhausted.
	if sc.Next(context.Background()) {
		t.Error("Next returned true after exhaustion")
	}
	if len(conn.calls) != 3 {
		t.Errorf("exhausted cursor issued %d extra round trips", len(conn.calls)-3)
	}
}

func TestZScanAppendsMatchAndCount(t *testing.T) {
	conn := &fakeConn{replies: []resp.Value{scanPage("0", "m1", "1")}}

	sc, err := NewClient(conn).ZScan("key", ScanOptions{Match: "m*", Count: 100})
	if err != nil {
		t.Fatalf("ZScan returned error: %v", err)
	}
	collect(t, sc)

	want := [][]string{{"ZSCAN", "key", "0", "MATCH", "m*", "COUNT", "100"}}
	if diff := deep.Equal(conn.calls, want); diff != nil {
		t.Error(diff)
	}
}

func TestZScanTerminatesOnEmptyFinalPage(t *testing.T) {
	conn := &fakeConn{replies: []resp.Value{
		scanPage("9", "m1", "1"),
		scanPage("0"),
	}}

	sc, err := NewClient(conn).ZScan("key", ScanOptions{})
	if err != nil {
		t.Fatalf("ZScan returned error: %v", err)
	}
	got := collect(t, sc)
	if diff := deep.Equal(got, []Tuple{{Member: "m1", Score: 1}}); diff != nil {
		t.Error(diff)
	}
}

func TestZScanRejectedInQueuedModes(t *testing.T) {
	for _, mode := range []connection.Mode{connection.ModePipelined, connection.ModeTransactional} {
		t.Run(mode.String(), func(t *testing.T) {
			conn := &fakeConn{mode: mode}
			if _, err := NewClient(conn).ZScan("key", ScanOptions{}); !errors.Is(err, ErrUnsupportedInMode) {
				t.Fatalf("ZScan error = %v, want ErrUnsupportedInMode", err)
			}
			if len(conn.calls) != 0 {
				t.Errorf("mode rejection still performed %d round trips", len(conn.calls))
			}
		})
	}
}

func TestZScanValidation(t *testing.T) {
	c := NewClient(&fakeConn{})

	if _, err := c.ZScan("", ScanOptions{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty key error = %v, want ErrInvalidArgument", err)
	}
	if _, err := c.ZScan("key", ScanOptions{Match: "[unclosed"}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("malformed pattern error = %v, want ErrInvalidArgument", err)
	}
	if _, err := c.ZScan("key", ScanOptions{Count: -1}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative count error = %v, want ErrInvalidArgument", err)
	}
}

func TestZScanClose(t *testing.T) {
	conn := &fakeConn{replies: []resp.Value{scanPage("7", "m1", "1")}}

	sc, err := NewClient(conn).ZScan("key", ScanOptions{})
	if err != nil {
		t.Fatalf("ZScan returned error: %v", err)
	}
	if !sc.Next(context.Background()) {
		t.Fatalf("Next returned false: %v", sc.Err())
	}
	if err := sc.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := sc.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}

	if sc.Next(context.Background()) {
		t.Error("Next returned true on a closed cursor")
	}
	if !errors.Is(sc.Err(), ErrIteratorClosed) {
		t.Errorf("Err() = %v, want ErrIteratorClosed", sc.Err())
	}
}

func TestZScanPropagatesTransportError(t *testing.T) {
	transportErr := errors.New("connection reset")
	conn := &fakeConn{doErr: transportErr}

	sc, err := NewClient(conn).ZScan("key", ScanOptions{})
	if err != nil {
		t.Fatalf("ZScan returned error: %v", err)
	}
	if sc.Next(context.Background()) {
		t.Error("Next returned true despite a transport failure")
	}
	if !errors.Is(sc.Err(), transportErr) {
		t.Errorf("Err() = %v, want the transport error", sc.Err())
	}
}
