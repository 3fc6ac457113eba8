package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/patchwork/pkg/protocol"
	"github.com/vango-dev/patchwork/pkg/updater"
	"github.com/vango-dev/patchwork/pkg/vdom"
)

// stream is one /ws connection. The writer goroutine owns lastSent; the
// reader forwards resync requests to it and answers bad frames itself.
type stream struct {
	srv    *Server
	conn   *websocket.Conn
	wmu    sync.Mutex
	logger *slog.Logger

	queue    chan updater.Change
	resync   chan uint64
	lagged   chan struct{}
	lagOnce  sync.Once
	done     chan struct{}
	lastSent uint64
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(defaultReadLimit)
	s.track(conn)
	defer s.untrack(conn)

	st := &stream{
		srv:    s,
		conn:   conn,
		logger: s.logger.With("remote", r.RemoteAddr),
		queue:  make(chan updater.Change, s.queueSize),
		resync: make(chan uint64, 1),
		lagged: make(chan struct{}),
		done:   make(chan struct{}),
	}
	st.run()
}

func (st *stream) run() {
	seq, root, cancel := st.srv.updater.Subscribe(st.enqueue)
	defer cancel()

	st.logger.Info("stream opened", "seq", seq)
	go st.readLoop()
	st.writeLoop(seq, root)
	st.conn.Close()
	st.logger.Info("stream closed", "seq", st.lastSent)
}

// enqueue runs under the updater lock and must not block.
func (st *stream) enqueue(c updater.Change) {
	select {
	case st.queue <- c:
	default:
		st.lagOnce.Do(func() { close(st.lagged) })
	}
}

func (st *stream) readLoop() {
	defer close(st.done)
	for {
		_, msg, err := st.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				st.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			st.logger.Warn("frame decode error", "error", err)
			st.requestError(err)
			continue
		}
		switch frame.Type {
		case protocol.FrameResync:
			req, err := protocol.DecodeResync(frame.Payload)
			if err != nil {
				st.requestError(err)
				continue
			}
			// A newer request supersedes one the writer has not picked up.
			select {
			case <-st.resync:
			default:
			}
			st.resync <- req.LastSeq
		default:
			st.logger.Warn("unexpected frame type", "type", frame.Type)
			st.requestError(protocol.ErrInvalidFrameType)
		}
	}
}

// requestError answers a bad client frame with a non-fatal Error frame.
func (st *stream) requestError(err error) {
	em := protocol.NewError(protocol.ErrCodeInvalidFrame, err.Error())
	_ = st.write(protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(em)).Encode())
}

func (st *stream) writeLoop(seq uint64, root vdom.Node) {
	if err := st.writeSnapshot(seq, root); err != nil {
		return
	}
	for {
		select {
		case c := <-st.queue:
			if c.Seq <= st.lastSent {
				continue
			}
			if err := st.write(c.Frame); err != nil {
				return
			}
			st.lastSent = c.Seq

		case last := <-st.resync:
			if err := st.replay(last); err != nil {
				return
			}

		case <-st.lagged:
			st.logger.Warn("stream dropped, client too slow", "seq", st.lastSent)
			st.closeWith(websocket.CloseTryAgainLater, "too slow")
			return

		case <-st.done:
			return
		}
	}
}

// replay sends the frames after last, or a snapshot when history no longer
// holds them.
func (st *stream) replay(last uint64) error {
	if last == st.lastSent {
		return nil
	}
	if last < st.lastSent {
		if frames := st.srv.updater.History().Frames(last, st.lastSent); frames != nil {
			st.logger.Debug("resync replay", "from", last, "to", st.lastSent, "frames", len(frames))
			for _, f := range frames {
				if err := st.write(f); err != nil {
					return err
				}
			}
			return nil
		}
	}
	seq, root := st.srv.updater.Current()
	st.logger.Debug("resync snapshot", "from", last, "seq", seq)
	return st.writeSnapshot(seq, root)
}

func (st *stream) writeSnapshot(seq uint64, root vdom.Node) error {
	payload := protocol.EncodeSnapshot(&protocol.SnapshotFrame{Seq: seq, Root: root})
	if len(payload) > protocol.MaxPayloadSize {
		st.logger.Error("snapshot too large", "bytes", len(payload))
		st.closeWith(websocket.CloseMessageTooBig, "snapshot too large")
		return protocol.ErrFrameTooLarge
	}
	if err := st.write(protocol.NewFrame(protocol.FrameSnapshot, payload).Encode()); err != nil {
		return err
	}
	st.lastSent = seq
	return nil
}

func (st *stream) write(frame []byte) error {
	st.wmu.Lock()
	defer st.wmu.Unlock()
	st.conn.SetWriteDeadline(time.Now().Add(st.srv.writeTimeout))
	if err := st.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		st.logger.Debug("write failed", "error", err)
		return err
	}
	return nil
}

func (st *stream) closeWith(code int, reason string) {
	st.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
}
