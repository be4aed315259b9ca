// Package hub fans messages out to websocket clients through a single
// goroutine that owns the client set.
package hub

// Kind is the websocket frame type a message is written as.
type Kind int

const (
	// Text messages carry JSON.
	Text Kind = iota
	// Binary messages carry encoded images.
	Binary
)

// Message is one payload queued for every client.
type Message struct {
	Kind Kind
	Data []byte
}
