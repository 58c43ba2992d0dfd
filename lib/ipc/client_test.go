// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ipc

import (
	"context"
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/night-dist/nightos/lib/codec"
	"github.com/night-dist/nightos/lib/testutil"
)

// serveOnce answers one connection with respond.
func serveOnce(t *testing.T, respond func(Request) Response) string {
	t.Helper()
	path := filepath.Join(testutil.RuntimeDir(t), "control.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var request Request
		if err := codec.NewDecoder(conn).Decode(&request); err != nil {
			return
		}
		codec.NewEncoder(conn).Encode(respond(request))
	}()
	return path
}

func TestCall(t *testing.T) {
	path := serveOnce(t, func(request Request) Response {
		return Response{OK: true, Version: "seen " + request.Action}
	})
	response, err := Call(context.Background(), path, Request{Action: ActionVersion})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if response.Version != "seen version" {
		t.Errorf("Version = %q, want %q", response.Version, "seen version")
	}
}

func TestCallFailureResponse(t *testing.T) {
	path := serveOnce(t, func(Request) Response {
		return Response{OK: false, Error: `unknown action: "bogus"`}
	})
	_, err := Call(context.Background(), path, Request{Action: "bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("Call error = %v, want server error", err)
	}
}

func TestCallNoSocket(t *testing.T) {
	path := filepath.Join(testutil.RuntimeDir(t), "absent.sock")
	if _, err := Call(context.Background(), path, Request{Action: ActionStatus}); err == nil {
		t.Error("Call succeeded without a listener")
	}
}

func TestPaths(t *testing.T) {
	if got, want := SocketPath("/run/user/1000", "abc_1_2"), "/run/user/1000/nightos/abc_1_2/.socket.sock"; got != want {
		t.Errorf("SocketPath = %q, want %q", got, want)
	}
	if got, want := InstanceRoot("/run/user/1000"), "/run/user/1000/nightos"; got != want {
		t.Errorf("InstanceRoot = %q, want %q", got, want)
	}
}
