// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compositor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/night-dist/nightos/lib/codec"
	"github.com/night-dist/nightos/lib/ipc"
	"github.com/night-dist/nightos/lib/version"
)

// controlDeadline bounds one request/response cycle.
const controlDeadline = 10 * time.Second

func (s *Server) serveControl(ctx context.Context) {
	for {
		conn, err := s.control.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			s.logger.Error("control accept error", "error", err)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// handleConnection processes a single request/response cycle.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(controlDeadline))

	decoder := codec.NewDecoder(conn)
	encoder := codec.NewEncoder(conn)

	var request ipc.Request
	if err := decoder.Decode(&request); err != nil {
		s.logger.Error("decoding control request", "error", err)
		if err := encoder.Encode(ipc.Response{OK: false, Error: "invalid request"}); err != nil {
			s.logger.Error("encoding control error response", "error", err)
		}
		return
	}

	s.logger.Info("control request", "action", request.Action)

	var response ipc.Response
	switch request.Action {
	case ipc.ActionVersion:
		response = ipc.Response{OK: true, Version: version.Full()}
	case ipc.ActionStatus:
		response = ipc.Response{OK: true, Version: version.Info(), Status: s.status()}
	case ipc.ActionExit:
		response = ipc.Response{OK: true}
	default:
		response = ipc.Response{OK: false, Error: fmt.Sprintf("unknown action %q", request.Action)}
	}

	if err := encoder.Encode(response); err != nil {
		s.logger.Error("encoding control response", "action", request.Action, "error", err)
	}
	if request.Action == ipc.ActionExit {
		s.requestStop()
	}
}
