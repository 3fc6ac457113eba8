package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/patchwork/pkg/dom"
	"github.com/vango-dev/patchwork/pkg/protocol"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

// ErrClientClosed is returned by Wait after Close.
var ErrClientClosed = errors.New("server: client closed")

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientLogger sets the client's logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithResolver supplies callbacks for listeners received over the wire.
func WithResolver(resolve protocol.CallbackResolver) ClientOption {
	return func(c *Client) {
		c.resolve = resolve
	}
}

// Client mirrors a remote view into a local dom.Document.
type Client struct {
	conn    *websocket.Conn
	wmu     sync.Mutex
	logger  *slog.Logger
	resolve protocol.CallbackResolver

	mu      sync.Mutex
	doc     *dom.Document
	seq     uint64
	err     error
	changed chan struct{}
	done    chan struct{}
}

// Dial connects to a stream endpoint. url may use http(s) or ws(s); a
// bare server URL gets /ws appended.
func Dial(ctx context.Context, url string, opts ...ClientOption) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL(url), nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		conn:    conn,
		logger:  slog.Default(),
		changed: make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.readLoop()
	return c, nil
}

func wsURL(url string) string {
	switch {
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	}
	if !strings.HasSuffix(url, "/ws") {
		url = strings.TrimSuffix(url, "/") + "/ws"
	}
	return url
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			c.fail(err)
			return
		}
		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			c.fail(err)
			return
		}
		if err := c.handle(frame); err != nil {
			c.fail(err)
			return
		}
	}
}

func (c *Client) handle(frame *protocol.Frame) error {
	switch frame.Type {
	case protocol.FrameSnapshot:
		sf, err := protocol.DecodeSnapshot(frame.Payload, c.resolve)
		if err != nil {
			return err
		}
		c.update(func() {
			c.doc = dom.New(sf.Root)
			c.seq = sf.Seq
		})
		c.logger.Debug("snapshot received", "seq", sf.Seq)

	case protocol.FramePatches:
		pf, err := protocol.DecodePatches(frame.Payload, c.resolve)
		if err != nil {
			return err
		}
		return c.applyPatches(pf)

	case protocol.FrameError:
		em, err := protocol.DecodeErrorMessage(frame.Payload)
		if err != nil {
			return err
		}
		if em.Fatal {
			return em
		}
		c.logger.Warn("server error", "code", em.Code, "message", em.Message)

	default:
		return fmt.Errorf("%w: %s", protocol.ErrInvalidFrameType, frame.Type)
	}
	return nil
}

func (c *Client) applyPatches(pf *protocol.PatchesFrame) error {
	c.mu.Lock()
	seq, ready := c.seq, c.doc != nil
	c.mu.Unlock()

	switch {
	case !ready:
		return errors.New("server: patches before snapshot")
	case pf.Seq <= seq:
		// Already applied, e.g. replayed after a resync.
		return nil
	case pf.Seq != seq+1:
		c.logger.Warn("sequence gap", "have", seq, "got", pf.Seq)
		return c.Resync(seq)
	}

	var err error
	c.update(func() {
		if err = c.doc.Apply(pf.Patches); err == nil {
			c.seq = pf.Seq
		}
	})
	return err
}

// update runs fn under the lock and wakes waiters.
func (c *Client) update(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Client) fail(err error) {
	c.update(func() {
		if c.err == nil {
			c.err = err
		}
	})
}

// Resync asks the server for every change after last.
func (c *Client) Resync(last uint64) error {
	frame := protocol.NewFrame(protocol.FrameResync, protocol.EncodeResync(&protocol.ResyncRequest{LastSeq: last}))
	c.wmu.Lock()
	defer c.wmu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout))
	return c.conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
}

// Wait blocks until the mirror has reached seq, the stream fails or ctx is
// done.
func (c *Client) Wait(ctx context.Context, seq uint64) error {
	for {
		c.mu.Lock()
		if c.doc != nil && c.seq >= seq {
			c.mu.Unlock()
			return nil
		}
		if c.err != nil {
			err := c.err
			c.mu.Unlock()
			return err
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Seq returns the last applied sequence number.
func (c *Client) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Snapshot returns the mirrored tree, or nil before the first snapshot.
func (c *Client) Snapshot() vdom.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil
	}
	return c.doc.Snapshot()
}

// HTML renders the mirrored tree.
func (c *Client) HTML() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return ""
	}
	return c.doc.String()
}

// Dispatch invokes the mirrored listeners of event on the node at index.
// Callbacks run without the client lock held and may call back into c.
func (c *Client) Dispatch(index int, ev vdom.Event) ([]any, error) {
	c.mu.Lock()
	if c.doc == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: no snapshot yet", vdom.ErrIndexNotFound)
	}
	cbs, err := c.doc.Callbacks(index, ev.Type)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	ev.Target = index
	return vdom.Dispatch(cbs, ev), nil
}

// Close closes the connection and waits for the reader to stop.
func (c *Client) Close() error {
	c.fail(ErrClientClosed)
	c.wmu.Lock()
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.wmu.Unlock()
	err := c.conn.Close()
	<-c.done
	return err
}
