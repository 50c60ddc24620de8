package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ropeclimb/internal/relay"
)

var _ = Describe("Server", func() {
	var (
		hub *relay.Hub
		ts  *httptest.Server
	)

	BeforeEach(func() {
		ctx, cancel := context.WithCancel(context.Background())
		hub = relay.NewHub()
		go hub.Run(ctx)

		srv := relay.NewServer(relay.Config{Path: "/socket"}, hub)
		ts = httptest.NewServer(srv.Handler())

		DeferCleanup(func() {
			ts.Close()
			cancel()
		})
	})

	dial := func() *websocket.Conn {
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/socket"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = conn.Close() })
		return conn
	}

	peers := func() int {
		n, err := hub.Peers(context.Background())
		Expect(err).NotTo(HaveOccurred())
		return n
	}

	It("relays player updates between websocket peers", func() {
		a, b := dial(), dial()
		Eventually(peers).Should(Equal(2))

		raw := []byte(`{"event":"updatePlayer","data":{"x":10,"y":20}}`)
		Expect(a.WriteMessage(websocket.TextMessage, raw)).To(Succeed())

		Expect(b.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		_, got, err := b.ReadMessage()
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(raw))
	})

	It("forgets peers that disconnect", func() {
		a := dial()
		Eventually(peers).Should(Equal(1))

		Expect(a.Close()).To(Succeed())
		Eventually(peers).Should(BeZero())
	})

	It("reports health with the peer count", func() {
		dial()
		Eventually(peers).Should(Equal(1))

		resp, err := http.Get(ts.URL + "/healthz")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var body struct {
			Status string `json:"status"`
			Peers  int    `json:"peers"`
		}
		Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
		Expect(body.Status).To(Equal("ok"))
		Expect(body.Peers).To(Equal(1))
	})
})
