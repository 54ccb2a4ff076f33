package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/protocol"
)

// DefaultHandshakeTimeout bounds the wait for the server's reply to
// /login or /register.
const DefaultHandshakeTimeout = 10 * time.Second

// lineBuffer is how many inbound lines may queue before the reader waits
// for the UI to catch up.
const lineBuffer = 256

// Options describe how to connect and who to log in as.
type Options struct {
	Server       string
	Transport    string
	Username     string
	PasswordHash string
	// Register creates the account instead of logging in.
	Register bool
	// HandshakeTimeout defaults to DefaultHandshakeTimeout.
	HandshakeTimeout time.Duration

	// Dial replaces the network dialer. Tests use it to plug in pipes.
	Dial func(ctx context.Context, kind, addr string) (Transport, error)
}

// Session is a logged-in connection to a chat server.
type Session struct {
	t         Transport
	user      string
	server    string
	connected time.Time

	lines chan string
	done  chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once

	errMu sync.Mutex
	err   error

	log *slog.Logger
}

// Connect dials the server and performs the login handshake.
func Connect(ctx context.Context, opts Options) (*Session, error) {
	dial := opts.Dial
	if dial == nil {
		dial = Dial
	}
	timeout := opts.HandshakeTimeout
	if timeout <= 0 {
		timeout = DefaultHandshakeTimeout
	}
	addr := NormalizeAddr(opts.Server)
	log := logger.WithComponent("session").With("server", addr, "user", opts.Username)

	t, err := dial(ctx, opts.Transport, addr)
	if err != nil {
		log.Warn("dial failed", "error", err)
		return nil, err
	}

	hello := protocol.Login(opts.Username, opts.PasswordHash)
	if opts.Register {
		hello = protocol.Register(opts.Username, opts.PasswordHash)
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := t.WriteLine(wctx, hello); err != nil {
		t.Close()
		return nil, perrors.E(perrors.Op("session.Connect"), perrors.KindNetwork, "sending credentials", err)
	}

	first, err := readFirst(wctx, t)
	if err != nil {
		t.Close()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, perrors.HandshakeTimeout(addr)
		}
		return nil, perrors.E(perrors.Op("session.Connect"), perrors.KindNetwork, "waiting for server reply", err)
	}

	line := protocol.ParseLine(first)
	if e, ok := protocol.Classify(line, opts.Username).(protocol.Error); ok {
		t.Close()
		log.Info("server refused login", "reason", e.Body)
		return nil, perrors.AuthRejected(e.Body)
	}

	s := &Session{
		t:         t,
		user:      opts.Username,
		server:    addr,
		connected: time.Now(),
		lines:     make(chan string, lineBuffer),
		done:      make(chan struct{}),
		log:       log,
	}
	log.Info("connected", "transport", opts.Transport, "local", addrString(t.LocalAddr()))
	go s.readLoop(first)
	return s, nil
}

// readFirst waits for one line or for ctx to end. On ctx expiry the
// caller closes the transport, which unblocks the reader goroutine.
func readFirst(ctx context.Context, t Transport) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		l, err := t.ReadLine()
		ch <- result{l, err}
	}()
	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *Session) readLoop(first string) {
	defer close(s.lines)

	if !s.push(first) {
		return
	}
	for {
		line, err := s.t.ReadLine()
		if err != nil {
			select {
			case <-s.done:
				// We hung up; not an error.
			default:
				if errors.Is(err, io.EOF) {
					err = perrors.E(perrors.Op("session.Read"), perrors.KindNetwork, "server closed the connection")
				}
				s.setErr(err)
				s.log.Warn("connection lost", "error", err)
			}
			return
		}
		if !s.push(line) {
			return
		}
	}
}

func (s *Session) push(line string) bool {
	select {
	case s.lines <- line:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) setErr(err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Lines delivers inbound lines in the order received. It is closed when
// the connection ends.
func (s *Session) Lines() <-chan string { return s.lines }

// Err reports why Lines was closed. It is nil while connected and after
// a local Close.
func (s *Session) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

// Send writes one line to the server. Concurrent calls are serialized.
// Text holding a line break is refused: on TCP it would reach the server
// as several lines.
func (s *Session) Send(ctx context.Context, text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return perrors.E(perrors.Op("session.Send"), perrors.KindInvalid, "message contains a line break")
	}
	select {
	case <-s.done:
		return perrors.NotConnected()
	default:
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.t.WriteLine(ctx, text); err != nil {
		return perrors.E(perrors.Op("session.Send"), perrors.KindNetwork, err)
	}
	s.log.Debug("sent", "bytes", len(text))
	return nil
}

// Close says goodbye to the server and drops the connection. It is safe
// to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.writeMu.Lock()
		s.t.WriteLine(ctx, protocol.Exit)
		s.writeMu.Unlock()

		close(s.done)
		err = s.t.Close()
		s.log.Info("disconnected")
	})
	return err
}

// Username is the account this session logged in as.
func (s *Session) Username() string { return s.user }

// Server is the address that was dialed.
func (s *Session) Server() string { return s.server }

// ConnectedAt is when the handshake completed.
func (s *Session) ConnectedAt() time.Time { return s.connected }

// LocalAddr is our end of the connection.
func (s *Session) LocalAddr() string { return addrString(s.t.LocalAddr()) }

// RemoteAddr is the server's end of the connection.
func (s *Session) RemoteAddr() string { return addrString(s.t.RemoteAddr()) }

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
