package relay_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ropeclimb/internal/relay"
)

type fakeConn struct {
	sent   chan []byte
	stall  chan struct{}
	fail   atomic.Bool
	closed atomic.Bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{sent: make(chan []byte, 16)}
}

// stalledConn never finishes a Send until release is closed.
func stalledConn() (*fakeConn, func()) {
	f := newFakeConn()
	f.stall = make(chan struct{})
	return f, func() { close(f.stall) }
}

func (f *fakeConn) Send(b []byte) error {
	if f.stall != nil {
		<-f.stall
	}
	if f.fail.Load() {
		return errors.New("broken pipe")
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sent <- cp
	return nil
}

func (f *fakeConn) Close() error {
	f.closed.Store(true)
	return nil
}

var _ = Describe("Hub", func() {
	var (
		hub    *relay.Hub
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		hub = relay.NewHub()
		go hub.Run(ctx)
		DeferCleanup(func() {
			cancel()
			Eventually(hub.Done()).Should(BeClosed())
		})
	})

	join := func(c relay.Conn) string {
		id, err := hub.Join(ctx, c)
		Expect(err).NotTo(HaveOccurred())
		return id
	}

	peers := func() int {
		n, err := hub.Peers(ctx)
		Expect(err).NotTo(HaveOccurred())
		return n
	}

	It("hands out distinct peer ids", func() {
		Expect(join(newFakeConn())).To(Equal("p1"))
		Expect(join(newFakeConn())).To(Equal("p2"))
		Expect(peers()).To(Equal(2))
	})

	Describe("broadcasting", func() {
		var a, b, c *fakeConn
		var idA string

		BeforeEach(func() {
			a, b, c = newFakeConn(), newFakeConn(), newFakeConn()
			idA = join(a)
			join(b)
			join(c)
		})

		It("forwards player updates verbatim to everyone but the sender", func() {
			raw := []byte(`{"event":"updatePlayer","data":{"x":1.5,"y":-2}}`)
			Expect(hub.Broadcast(ctx, idA, raw)).To(Succeed())

			Eventually(b.sent).Should(Receive(Equal(raw)))
			Eventually(c.sent).Should(Receive(Equal(raw)))
			Consistently(a.sent, 50*time.Millisecond).ShouldNot(Receive())
		})

		It("ignores other events", func() {
			Expect(hub.Broadcast(ctx, idA, []byte(`{"event":"chat","data":"hi"}`))).To(Succeed())
			Expect(peers()).To(Equal(3))

			Expect(b.sent).NotTo(Receive())
			Expect(c.sent).NotTo(Receive())
		})

		It("drops malformed messages and keeps going", func() {
			Expect(hub.Broadcast(ctx, idA, []byte(`{"event":`))).To(Succeed())
			Expect(hub.Broadcast(ctx, idA, nil)).To(Succeed())
			Expect(peers()).To(Equal(3))
			Expect(b.sent).NotTo(Receive())

			raw := []byte(`{"event":"updatePlayer","data":null}`)
			Expect(hub.Broadcast(ctx, idA, raw)).To(Succeed())
			Eventually(b.sent).Should(Receive(Equal(raw)))
		})

		It("drops peers whose send fails", func() {
			b.fail.Store(true)

			raw := []byte(`{"event":"updatePlayer","data":{}}`)
			Expect(hub.Broadcast(ctx, idA, raw)).To(Succeed())

			Eventually(c.sent).Should(Receive(Equal(raw)))
			Eventually(peers).Should(Equal(2))
			Expect(b.closed.Load()).To(BeTrue())
		})

		It("keeps serving while one peer is stalled", func() {
			slow, release := stalledConn()
			DeferCleanup(release)
			join(slow)

			raw := []byte(`{"event":"updatePlayer","data":{"x":3}}`)
			Expect(hub.Broadcast(ctx, idA, raw)).To(Succeed())
			Eventually(b.sent).Should(Receive(Equal(raw)))

			Expect(join(newFakeConn())).To(Equal("p5"))
			Expect(peers()).To(Equal(5))
			Expect(hub.Broadcast(ctx, idA, raw)).To(Succeed())
			Eventually(c.sent).Should(Receive(Equal(raw)))
			Eventually(c.sent).Should(Receive(Equal(raw)))
		})
	})

	It("closes a peer when it leaves", func() {
		a := newFakeConn()
		id := join(a)

		Expect(hub.Leave(ctx, id)).To(Succeed())
		Expect(peers()).To(BeZero())
		Expect(a.closed.Load()).To(BeTrue())
	})

	It("drops a peer whose outbox overflows", func() {
		small := relay.NewHub(relay.WithOutboxSize(1))
		sctx, scancel := context.WithCancel(context.Background())
		defer scancel()
		go small.Run(sctx)

		slow, release := stalledConn()
		defer release()
		idA, err := small.Join(sctx, newFakeConn())
		Expect(err).NotTo(HaveOccurred())
		_, err = small.Join(sctx, slow)
		Expect(err).NotTo(HaveOccurred())

		raw := []byte(`{"event":"updatePlayer","data":{}}`)
		for range 3 {
			Expect(small.Broadcast(sctx, idA, raw)).To(Succeed())
		}

		Eventually(func() int {
			n, _ := small.Peers(sctx)
			return n
		}).Should(Equal(1))
		Expect(slow.closed.Load()).To(BeTrue())
	})

	It("only forwards the configured event", func() {
		custom := relay.NewHub(relay.WithEvent("move"))
		cctx, ccancel := context.WithCancel(context.Background())
		defer ccancel()
		go custom.Run(cctx)

		a, b := newFakeConn(), newFakeConn()
		idA, err := custom.Join(cctx, a)
		Expect(err).NotTo(HaveOccurred())
		_, err = custom.Join(cctx, b)
		Expect(err).NotTo(HaveOccurred())

		Expect(custom.Broadcast(cctx, idA, []byte(`{"event":"updatePlayer"}`))).To(Succeed())
		Expect(custom.Broadcast(cctx, idA, []byte(`{"event":"move"}`))).To(Succeed())

		Eventually(b.sent).Should(Receive(Equal([]byte(`{"event":"move"}`))))
		Expect(b.sent).NotTo(Receive())
	})

	It("closes every peer and refuses joins once stopped", func() {
		a := newFakeConn()
		join(a)

		cancel()
		Eventually(hub.Done()).Should(BeClosed())
		Expect(a.closed.Load()).To(BeTrue())

		_, err := hub.Join(context.Background(), newFakeConn())
		Expect(err).To(MatchError(relay.ErrClosed))
	})
})
