package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"go.uber.org/goleak"

	"github.com/rickgao/niche-research/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func testSnapshot(rate float64) model.MarketSnapshot {
	return model.MarketSnapshot{
		Trends:    []model.MarketTrend{{Date: "2023-01", GrowthRate: rate, Sector: "Technology"}},
		Alerts:    []model.InvestmentAlert{{Title: "Emerging Market", Description: "x", PotentialImpact: "High"}},
		FetchedAt: 1700000000000000,
	}
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(HubConfig{QueueSize: 1, WriteTimeout: time.Second, PingInterval: time.Hour}, quiet)
	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastToSubscribers(t *testing.T) {
	hub, url := startHub(t)

	var clients []*Client
	for range 2 {
		c := NewClient(DefaultClientConfig(url), quiet)
		if err := c.Connect(context.Background()); err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		t.Cleanup(func() { c.Close() })
		clients = append(clients, c)
	}
	waitFor(t, func() bool { return hub.Subscribers() == 2 })

	for i := range 3 {
		if err := hub.HandleSnapshot(testSnapshot(float64(i))); err != nil {
			t.Fatalf("HandleSnapshot() error = %v", err)
		}
	}

	for _, c := range clients {
		for want := range 3 {
			select {
			case msg := <-c.Messages():
				if msg.Type != MessageTypeSnapshot || msg.Seq != int64(want+1) {
					t.Errorf("msg = %s #%d, want snapshot #%d", msg.Type, msg.Seq, want+1)
				}
				if diff := cmp.Diff(testSnapshot(float64(want)), msg.Snapshot); diff != "" {
					t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
				}
			case <-time.After(2 * time.Second):
				t.Fatalf("timed out waiting for message %d", want+1)
			}
		}
	}
}

func TestHub_LatestSentOnConnect(t *testing.T) {
	hub, url := startHub(t)

	if err := hub.HandleSnapshot(testSnapshot(9)); err != nil {
		t.Fatalf("HandleSnapshot() error = %v", err)
	}

	c := NewClient(DefaultClientConfig(url), quiet)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()

	select {
	case msg := <-c.Messages():
		if msg.Seq != 1 || msg.Snapshot.Trends[0].GrowthRate != 9 {
			t.Errorf("msg = %+v, want latest snapshot", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for latest snapshot")
	}
}

func TestHub_SubscriberDisconnect(t *testing.T) {
	hub, url := startHub(t)

	c := NewClient(DefaultClientConfig(url), quiet)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	waitFor(t, func() bool { return hub.Subscribers() == 1 })

	c.Close()
	waitFor(t, func() bool { return hub.Subscribers() == 0 })

	if err := hub.HandleSnapshot(testSnapshot(1)); err != nil {
		t.Errorf("HandleSnapshot() after disconnect error = %v", err)
	}
}

func TestHub_CloseEndsClients(t *testing.T) {
	hub, url := startHub(t)

	c := NewClient(DefaultClientConfig(url), quiet)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()
	waitFor(t, func() bool { return hub.Subscribers() == 1 })

	hub.Close()

	select {
	case _, ok := <-c.Messages():
		if ok {
			t.Error("received message after hub close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client not disconnected by hub close")
	}
	if err := hub.HandleSnapshot(testSnapshot(1)); err != ErrHubClosed {
		t.Errorf("HandleSnapshot() after close = %v, want ErrHubClosed", err)
	}
}

func TestHub_RejectsAfterClose(t *testing.T) {
	hub, url := startHub(t)
	hub.Close()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		conn.Close()
	}
	if n := hub.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}
}
