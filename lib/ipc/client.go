// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/night-dist/nightos/lib/codec"
)

// DefaultTimeout bounds a Call when ctx has no deadline.
const DefaultTimeout = 5 * time.Second

// Call sends request to the control socket at socketPath and returns the
// response. A response with OK false is returned as an error.
func Call(ctx context.Context, socketPath string, request Request) (Response, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return Response{}, fmt.Errorf("connecting to %s: %w", socketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return Response{}, fmt.Errorf("sending %s request: %w", request.Action, err)
	}
	var response Response
	if err := codec.NewDecoder(conn).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("reading %s response: %w", request.Action, err)
	}
	if !response.OK {
		if response.Error == "" {
			return response, errors.New("request failed")
		}
		return response, errors.New(response.Error)
	}
	return response, nil
}
