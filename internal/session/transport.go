package session

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/protocol"
)

// Transport moves single lines to and from a server.
type Transport interface {
	// ReadLine blocks for the next line, without its terminator.
	ReadLine() (string, error)
	// WriteLine sends one line, honouring ctx's deadline if it has one.
	WriteLine(ctx context.Context, line string) error
	Close() error
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}

// Transport kinds.
const (
	TCP       = "tcp"
	WebSocket = "ws"
)

// wsPingPeriod keeps idle WebSocket connections alive through proxies.
const wsPingPeriod = 30 * time.Second

// NormalizeAddr adds the default port to a bare host.
func NormalizeAddr(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(protocol.DefaultPort))
}

// Dial opens a transport of the given kind to addr.
func Dial(ctx context.Context, kind, addr string) (Transport, error) {
	addr = NormalizeAddr(addr)
	switch kind {
	case "", TCP:
		return dialTCP(ctx, addr)
	case WebSocket:
		return dialWS(ctx, addr)
	default:
		return nil, perrors.E(perrors.Op("session.Dial"), perrors.KindInvalid, fmt.Sprintf("unknown transport %q", kind))
	}
}

type tcpTransport struct {
	conn net.Conn
	r    *bufio.Reader
}

func dialTCP(ctx context.Context, addr string) (*tcpTransport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, perrors.DialFailed(addr, err)
	}
	return newTCPTransport(conn), nil
}

func newTCPTransport(conn net.Conn) *tcpTransport {
	return &tcpTransport{conn: conn, r: bufio.NewReader(conn)}
}

func (t *tcpTransport) ReadLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil {
		// A final unterminated line is still a line.
		if line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *tcpTransport) WriteLine(ctx context.Context, line string) error {
	if dl, ok := ctx.Deadline(); ok {
		t.conn.SetWriteDeadline(dl)
		defer t.conn.SetWriteDeadline(time.Time{})
	}
	_, err := t.conn.Write([]byte(line + "\n"))
	return err
}

func (t *tcpTransport) Close() error         { return t.conn.Close() }
func (t *tcpTransport) LocalAddr() net.Addr  { return t.conn.LocalAddr() }
func (t *tcpTransport) RemoteAddr() net.Addr { return t.conn.RemoteAddr() }

type wsTransport struct {
	conn    *websocket.Conn
	pending []string

	writeMu sync.Mutex
	done    chan struct{}
	once    sync.Once
}

func wsURL(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	return u.String()
}

func dialWS(ctx context.Context, addr string) (*wsTransport, error) {
	target := wsURL(addr)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, perrors.DialFailed(target, err)
	}
	t := &wsTransport{conn: conn, done: make(chan struct{})}
	go t.pingLoop()
	return t, nil
}

func (t *wsTransport) pingLoop() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.writeMu.Lock()
			err := t.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			t.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (t *wsTransport) ReadLine() (string, error) {
	for len(t.pending) == 0 {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		text := strings.TrimRight(string(data), "\r\n")
		t.pending = strings.Split(text, "\n")
	}
	line := strings.TrimRight(t.pending[0], "\r")
	t.pending = t.pending[1:]
	return line, nil
}

func (t *wsTransport) WriteLine(ctx context.Context, line string) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if dl, ok := ctx.Deadline(); ok {
		t.conn.SetWriteDeadline(dl)
		defer t.conn.SetWriteDeadline(time.Time{})
	}
	return t.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (t *wsTransport) Close() error {
	t.once.Do(func() { close(t.done) })
	t.writeMu.Lock()
	t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	t.writeMu.Unlock()
	return t.conn.Close()
}

func (t *wsTransport) LocalAddr() net.Addr  { return t.conn.LocalAddr() }
func (t *wsTransport) RemoteAddr() net.Addr { return t.conn.RemoteAddr() }
