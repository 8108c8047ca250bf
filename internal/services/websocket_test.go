package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Stalled clients (full Send buffer) are evicted during fan-out. Those
// evictions mutate the client map, so concurrent broadcasts must not
// trip over each other.
func TestConcurrentBroadcastsEvictStalledClients(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 4; i++ {
		client := &Client{ID: 7, Role: "tourist", Send: make(chan []byte), Hub: hub}
		hub.clients[client] = true
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.BroadcastToUser(7, []byte(`{"type":"notification"}`))
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.BroadcastToRole("tourist", []byte(`{"type":"notification"}`))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.GetConnectedClients())
}

func TestBroadcastToUserDeliversToMatchingClients(t *testing.T) {
	hub := NewHub()
	alice := &Client{ID: 1, Role: "tourist", Send: make(chan []byte, 1), Hub: hub}
	bob := &Client{ID: 2, Role: "guide", Send: make(chan []byte, 1), Hub: hub}
	hub.clients[alice] = true
	hub.clients[bob] = true

	hub.BroadcastToUser(1, []byte("hello"))

	assert.Len(t, alice.Send, 1)
	assert.Len(t, bob.Send, 0)
	assert.Equal(t, 2, hub.GetConnectedClients())
}
