// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compositor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// maxAutoDisplays bounds the wayland-N search.
const maxAutoDisplays = 32

// ErrDisplayInUse means another server holds the lock of the requested
// display socket.
var ErrDisplayInUse = errors.New("display socket is in use")

type displaySocket struct {
	listener net.Listener

	// name is empty when an adopted descriptor came without a name.
	name string

	// socketPath and lock are unset for adopted descriptors.
	socketPath string
	lock       *os.File

	adopted bool
}

func openDisplay(runtimeDir, name string, fd int) (*displaySocket, error) {
	if fd >= 0 {
		return adoptDisplay(name, fd)
	}
	if name != "" {
		return bindDisplay(runtimeDir, name)
	}
	for index := 1; index <= maxAutoDisplays; index++ {
		display, err := bindDisplay(runtimeDir, "wayland-"+strconv.Itoa(index))
		if errors.Is(err, ErrDisplayInUse) {
			continue
		}
		return display, err
	}
	return nil, fmt.Errorf("no free display socket among wayland-1 to wayland-%d", maxAutoDisplays)
}

func adoptDisplay(name string, fd int) (*displaySocket, error) {
	file := os.NewFile(uintptr(fd), "wayland-fd-"+strconv.Itoa(fd))
	listener, err := net.FileListener(file)
	file.Close()
	if err != nil {
		return nil, fmt.Errorf("adopting display descriptor %d: %w", fd, err)
	}
	return &displaySocket{listener: listener, name: name, adopted: true}, nil
}

// bindDisplay takes the lock before touching the socket path, so a stale
// socket left by a dead server is replaced and a live one is not.
func bindDisplay(runtimeDir, name string) (*displaySocket, error) {
	socketPath := filepath.Join(runtimeDir, name)
	lock, err := os.OpenFile(socketPath+".lock", os.O_RDWR|os.O_CREATE, 0o640)
	if err != nil {
		return nil, fmt.Errorf("opening lock for %s: %w", name, err)
	}
	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		lock.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%s: %w", name, ErrDisplayInUse)
		}
		return nil, fmt.Errorf("locking %s: %w", name, err)
	}

	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		lock.Close()
		return nil, fmt.Errorf("removing stale socket %s: %w", socketPath, err)
	}
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		lock.Close()
		return nil, fmt.Errorf("binding %s: %w", socketPath, err)
	}
	return &displaySocket{listener: listener, name: name, socketPath: socketPath, lock: lock}, nil
}

// release removes the socket and lock files. The listener must already
// be closed.
func (d *displaySocket) release() {
	if d.lock == nil {
		return
	}
	os.Remove(d.socketPath)
	os.Remove(d.lock.Name())
	d.lock.Close()
}

// acceptDisplay holds every display client open until it disconnects or
// Cleanup closes it.
func (s *Server) acceptDisplay(ctx context.Context) {
	for {
		conn, err := s.display.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			s.logger.Error("display accept error", "error", err)
			continue
		}

		s.mu.Lock()
		if s.closing {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.clients[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if _, err := io.Copy(io.Discard, conn); err != nil && !isExpectedClose(err) {
				s.logger.Warn("display client read failed", "error", err)
			}
			conn.Close()
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
		}()
	}
}

// isExpectedClose reports whether err is a normal end of a client
// connection, including the closed-connection error Cleanup causes.
func isExpectedClose(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return errors.Is(err, unix.EPIPE) || errors.Is(err, unix.ECONNRESET)
}
