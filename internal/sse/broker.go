// Package sse implements a Server-Sent Events broker that tells open browser
// tabs to reload after the site content changes.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
)

// EventReloaded is sent after a content snapshot has been swapped in.
const EventReloaded = "content.reloaded"

// retryMillis is how soon a browser reconnects after the dev server restarts.
const retryMillis = 1000

// Broker fans reload notices out to connected browsers.
//
// One goroutine owns the client set and the exported methods reach it over
// channels. Each client holds at most one pending notice: a newer version
// replaces an unread one, since a tab only needs to reload once.
type Broker struct {
	joinCh   chan chan []byte
	leaveCh  chan chan []byte
	reloadCh chan string
	countCh  chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker and starts its loop.
func NewBroker() *Broker {
	b := &Broker{
		joinCh:   make(chan chan []byte),
		leaveCh:  make(chan chan []byte),
		reloadCh: make(chan string),
		countCh:  make(chan chan int),
		stopCh:   make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go b.run()
	return b
}

func reloadMessage(version string) []byte {
	data, _ := json.Marshal(struct {
		Version string `json:"version"`
	}{version})
	return fmt.Appendf(nil, "id: %s\nevent: %s\ndata: %s\n\n", version, EventReloaded, data)
}

func (b *Broker) run() {
	defer close(b.stopped)
	clients := make(map[chan []byte]struct{})

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.joinCh:
			clients[ch] = struct{}{}

		case ch := <-b.leaveCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case version := <-b.reloadCh:
			msg := reloadMessage(version)
			for ch := range clients {
				// Only this loop sends, so after the drain the slot is free.
				select {
				case <-ch:
				default:
				}
				ch <- msg
			}

		case resp := <-b.countCh:
			resp <- len(clients)
		}
	}
}

// Close stops the loop and closes every client channel. It is safe to call
// more than once.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe registers a client. The returned channel is closed by
// Unsubscribe or Close.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 1)
	if b.closed.Load() {
		close(ch)
		return ch
	}
	select {
	case b.joinCh <- ch:
	case <-b.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.leaveCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}
	resp := make(chan int, 1)
	select {
	case b.countCh <- resp:
	case <-b.stopped:
		return 0
	}
	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// PublishReload announces a new content snapshot identified by version.
func (b *Broker) PublishReload(version string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.reloadCh <- version:
	case <-b.stopped:
	}
}

// ServeHTTP streams reload notices (GET /events) until the client leaves.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "retry: %d\n\n", retryMillis)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
