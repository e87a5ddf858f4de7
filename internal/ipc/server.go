package ipc

import (
	"encoding/json"
	"net"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// request is one decoded, not-yet-dispatched frame, handed from a
// client's reader goroutine to the server's single dispatch loop — the
// serialization point that gives the Dispatcher (and the tree it reads
// through command.Context) the same "exclusive access on every
// callback" guarantee spec §5 describes for the core, even though each
// connection's socket I/O runs on its own goroutine.
type request struct {
	reqType uint32
	payload []byte
	resp    chan response
}

type response struct {
	payload []byte
	ok      bool
}

// Server owns the listening socket, the connected clients and the
// single goroutine that serializes every request against Dispatcher.
type Server struct {
	listener *net.UnixListener
	dispatch *Dispatcher
	requests chan request
	log      *zap.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

// NewServer binds a UNIX socket at path (removing a stale socket file
// first, the way sway's server_init does) and starts the dispatch
// loop. Callers publish path as $SWAYSOCK/$I3SOCK for children (spec
// §6) themselves; this package only binds it.
func NewServer(path string, dispatch *Dispatcher, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	_ = os.Remove(path)

	// Sockets are created with whatever the process umask allows;
	// tighten it to owner-only for the duration of the bind so the IPC
	// socket is never briefly world-writable.
	old := unix.Umask(0077)
	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	unix.Umask(old)
	if err != nil {
		return nil, err
	}

	s := &Server{
		listener: ln,
		dispatch: dispatch,
		requests: make(chan request),
		clients:  make(map[*Client]struct{}),
		log:      log,
		closed:   make(chan struct{}),
	}
	go s.dispatchLoop()
	return s, nil
}

// Addr returns the bound socket's filesystem path.
func (s *Server) Addr() string { return s.listener.Addr().String() }

func (s *Server) dispatchLoop() {
	for req := range s.requests {
		payload, ok := s.dispatch.handle(req.reqType, req.payload)
		req.resp <- response{payload: payload, ok: ok}
	}
}

// Serve accepts connections until the listener is closed, spawning one
// goroutine per client (spec §4.7's per-client state machine).
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.AcceptUnix()
		if err != nil {
			select {
			case <-s.closed:
				return nil
			default:
				return err
			}
		}
		c := &Client{conn: conn, server: s}
		s.addClient(c)
		go c.loop()
	}
}

// Close shuts down the listener and disconnects every client.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.listener.Close()
		s.mu.Lock()
		for c := range s.clients {
			c.conn.Close()
		}
		s.mu.Unlock()
	})
	return err
}

func (s *Server) addClient(c *Client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) removeClient(c *Client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

// Broadcast writes an event frame to every client subscribed to kind
// (spec §4.7's event emission rule). Write errors disconnect only the
// offending client.
func (s *Server) Broadcast(kind uint32, payload []byte) {
	s.mu.Lock()
	targets := make([]*Client, 0, len(s.clients))
	for c := range s.clients {
		if c.subscribed(kind) {
			targets = append(targets, c)
		}
	}
	s.mu.Unlock()

	for _, c := range targets {
		if err := c.write(Frame{Type: EventBit | kind, Payload: payload}); err != nil {
			s.log.Warn("event write failed, disconnecting client", zap.Error(err))
			c.conn.Close()
		}
	}
}

// Client is one connected IPC peer.
type Client struct {
	conn   *net.UnixConn
	server *Server

	writeMu sync.Mutex

	subMu sync.RWMutex
	subs  uint32
}

func (c *Client) subscribed(kind uint32) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.subs&(1<<kind) != 0
}

func (c *Client) write(f Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return WriteFrame(c.conn, f)
}

// loop runs the Header -> Payload -> Dispatch -> reply state machine
// for one client until it disconnects.
func (c *Client) loop() {
	defer c.server.removeClient(c)
	defer c.conn.Close()

	for {
		frame, err := ReadFrame(c.conn)
		if err != nil {
			return
		}

		if frame.Type == Subscribe {
			ok := c.handleSubscribe(frame.Payload)
			if err := c.write(Frame{Type: Subscribe, Payload: successJSON(ok)}); err != nil {
				return
			}
			continue
		}

		respCh := make(chan response, 1)
		c.server.requests <- request{reqType: frame.Type, payload: frame.Payload, resp: respCh}
		resp := <-respCh
		if !resp.ok {
			c.server.log.Warn("unknown ipc request type, disconnecting", zap.Uint32("type", frame.Type))
			return
		}
		if err := c.write(Frame{Type: frame.Type, Payload: resp.payload}); err != nil {
			return
		}
	}
}

func (c *Client) handleSubscribe(payload []byte) bool {
	var names []string
	if err := json.Unmarshal(payload, &names); err != nil {
		return false
	}
	var mask uint32
	for _, n := range names {
		kind, known := eventNames[n]
		if !known {
			return false
		}
		mask |= 1 << kind
	}
	c.subMu.Lock()
	c.subs |= mask
	c.subMu.Unlock()
	return true
}

func successJSON(ok bool) []byte {
	b, _ := json.Marshal(struct {
		Success bool `json:"success"`
	}{ok})
	return b
}
