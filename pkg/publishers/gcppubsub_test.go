package publishers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/Adda-Baaj/fivem-status/internal/domain"
)

func TestGCPPubSubPublisherPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	admin, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer admin.Close()
	if _, err := admin.CreateTopic(ctx, "status"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	pub, err := newGCPPubSubSender(ctx, "gcp", &GCPQueueConfig{
		ProjectID: "test-project",
		Topic:     "status",
	}, nil)
	if err != nil {
		t.Fatalf("newGCPPubSubSender: %v", err)
	}
	defer pub.Close()

	evt := NewEvent("s1", "One", domain.ServerStatus{ServerID: "s1", Online: true, PolledAt: time.Now()})
	if err := pub.Publish(ctx, evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Attributes["server_id"] != "s1" {
		t.Fatalf("attributes = %v", msgs[0].Attributes)
	}
	var got Event
	if err := json.Unmarshal(msgs[0].Data, &got); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if got.Fingerprint != evt.Fingerprint {
		t.Fatalf("fingerprint mismatch: %q vs %q", got.Fingerprint, evt.Fingerprint)
	}
}
