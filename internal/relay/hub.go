package relay

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// DefaultEvent is the only event the hub forwards unless told otherwise.
const DefaultEvent = "updatePlayer"

// DefaultOutboxSize is how many messages may queue for one peer before it
// is dropped as too slow.
const DefaultOutboxSize = 64

var ErrClosed = errors.New("relay: hub closed")

// Conn is one peer as the hub sees it.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Join adds a peer. The hub answers with the peer's id on Reply.
type Join struct {
	Conn  Conn
	Reply chan<- string
}

// Leave removes a peer and closes its connection.
type Leave struct {
	PeerID string
}

// Broadcast forwards Raw verbatim to every peer except From.
type Broadcast struct {
	From string
	Raw  []byte
}

type countPeers struct {
	Reply chan<- int
}

// peer pairs a connection with its outbound queue. Only the peer's writer
// goroutine calls Send, so a stalled connection never blocks the hub.
type peer struct {
	conn Conn
	out  chan []byte
}

// Hub owns the peer set. All changes go through Inbox and are applied by
// the single goroutine in Run.
type Hub struct {
	Inbox  chan any
	event  string
	outbox int
	peers  map[string]*peer
	nextID int
	logger *log.Logger
	done   chan struct{}
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithEvent sets the event name that gets rebroadcast.
func WithEvent(event string) HubOption {
	return func(h *Hub) {
		if event != "" {
			h.event = event
		}
	}
}

// WithOutboxSize sets the per-peer send queue length.
func WithOutboxSize(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.outbox = n
		}
	}
}

func WithLogger(l *log.Logger) HubOption {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		Inbox:  make(chan any, 256),
		event:  DefaultEvent,
		outbox: DefaultOutboxSize,
		peers:  make(map[string]*peer),
		nextID: 1,
		logger: log.New(io.Discard),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run processes the inbox until ctx is cancelled, then closes every peer.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-h.Inbox:
			h.handleCommand(cmd)
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} { return h.done }

func (h *Hub) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		id := fmt.Sprintf("p%d", h.nextID)
		h.nextID++
		p := &peer{conn: c.Conn, out: make(chan []byte, h.outbox)}
		h.peers[id] = p
		go h.writePump(id, p)
		h.logger.Info("peer connected", "peer", id, "peers", len(h.peers))
		c.Reply <- id
	case Leave:
		h.drop(c.PeerID)
	case Broadcast:
		h.broadcast(c)
	case countPeers:
		c.Reply <- len(h.peers)
	default:
		h.logger.Warn("unknown hub command", "type", fmt.Sprintf("%T", cmd))
	}
}

func (h *Hub) broadcast(b Broadcast) {
	env, err := DecodeEnvelope(b.Raw)
	if err != nil {
		h.logger.Warn("dropping malformed message", "peer", b.From, "err", err)
		return
	}
	if env.Event != h.event {
		h.logger.Debug("ignoring event", "peer", b.From, "event", env.Event)
		return
	}

	for id, p := range h.peers {
		if id == b.From {
			continue
		}
		select {
		case p.out <- b.Raw:
		default:
			h.logger.Warn("outbox full, dropping peer", "peer", id)
			h.drop(id)
		}
	}
}

// writePump feeds one peer from its outbox until the hub closes it.
func (h *Hub) writePump(id string, p *peer) {
	for msg := range p.out {
		if err := p.conn.Send(msg); err != nil {
			h.logger.Warn("send failed, dropping peer", "peer", id, "err", err)
			_ = h.send(context.Background(), Leave{PeerID: id})
			return
		}
	}
}

func (h *Hub) drop(id string) {
	p, ok := h.peers[id]
	if !ok {
		return
	}
	delete(h.peers, id)
	close(p.out)
	_ = p.conn.Close()
	h.logger.Info("peer disconnected", "peer", id, "peers", len(h.peers))
}

func (h *Hub) closeAll() {
	for id := range h.peers {
		h.drop(id)
	}
}

// send hands cmd to the hub unless it has stopped.
func (h *Hub) send(ctx context.Context, cmd any) error {
	select {
	case h.Inbox <- cmd:
		return nil
	case <-h.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Join registers conn and returns its peer id.
func (h *Hub) Join(ctx context.Context, conn Conn) (string, error) {
	reply := make(chan string, 1)
	if err := h.send(ctx, Join{Conn: conn, Reply: reply}); err != nil {
		return "", err
	}
	select {
	case id := <-reply:
		return id, nil
	case <-h.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (h *Hub) Leave(ctx context.Context, id string) error {
	return h.send(ctx, Leave{PeerID: id})
}

func (h *Hub) Broadcast(ctx context.Context, from string, raw []byte) error {
	return h.send(ctx, Broadcast{From: from, Raw: raw})
}

// Peers returns the number of connected peers.
func (h *Hub) Peers(ctx context.Context) (int, error) {
	reply := make(chan int, 1)
	if err := h.send(ctx, countPeers{Reply: reply}); err != nil {
		return 0, err
	}
	select {
	case n := <-reply:
		return n, nil
	case <-h.done:
		return 0, ErrClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
