// Package transport defines the platform-neutral types exchanged between
// the Telegram client adapter and the core: inbound events, peers,
// destinations, and the rate-limit error surfaced by sends.
package transport

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Scope classifies where a message originated.
type Scope int

const (
	ScopePrivate Scope = iota
	ScopeGroup
	ScopeChannel
)

func (s Scope) String() string {
	switch s {
	case ScopePrivate:
		return "private"
	case ScopeGroup:
		return "group"
	case ScopeChannel:
		return "channel"
	}
	return "unknown"
}

// PeerKind tags the variant of a Peer.
type PeerKind int

const (
	PeerUnknown PeerKind = iota
	PeerPerson
	PeerGroup
	PeerChannel
)

// Peer is a tagged sender or origin identity, resolved once at the
// transport boundary. Person peers carry names; group and channel peers
// carry a title; channels may expose a public username.
type Peer struct {
	Kind      PeerKind
	ID        int64
	FirstName string
	LastName  string
	Title     string
	Username  string
}

// DisplayName returns a human-readable name for the peer: first and last
// name for a person, title for a group or channel, and "مجهول"
// (unknown) when nothing is resolvable.
func (p Peer) DisplayName() string {
	switch p.Kind {
	case PeerPerson:
		switch {
		case p.FirstName != "" && p.LastName != "":
			return p.FirstName + " " + p.LastName
		case p.FirstName != "":
			return p.FirstName
		case p.LastName != "":
			return p.LastName
		}
		return "بدون اسم"
	case PeerGroup, PeerChannel:
		if p.Title != "" {
			return p.Title
		}
	}
	return "مجهول"
}

// Event is one inbound message as delivered by the transport. It exists
// only for the duration of handling.
type Event struct {
	Text      string
	Caption   string
	MessageID int
	Time      time.Time
	Outgoing  bool
	Sender    Peer
	Origin    Peer
	Scope     Scope
}

// Handler processes one inbound event. The transport may invoke handlers
// for distinct events concurrently.
type Handler func(ctx context.Context, ev Event)

// Destination addresses an outbound message. The zero value is the
// operator's Saved Messages.
type Destination struct {
	chatID int64
}

// Saved returns the operator's Saved Messages destination.
func Saved() Destination { return Destination{} }

// Chat returns a destination addressing the given chat id.
func Chat(id int64) Destination { return Destination{chatID: id} }

// IsSaved reports whether the destination is Saved Messages.
func (d Destination) IsSaved() bool { return d.chatID == 0 }

// ChatID returns the addressed chat id; zero for Saved Messages.
func (d Destination) ChatID() int64 { return d.chatID }

func (d Destination) String() string {
	if d.IsSaved() {
		return "saved-messages"
	}
	return fmt.Sprintf("chat:%d", d.chatID)
}

// Sender sends outbound messages. Implemented by the Telegram client
// adapter; the dispatcher and router depend only on this contract.
type Sender interface {
	SendMessage(ctx context.Context, dest Destination, text string) error
}

// FloodWaitError is returned by SendMessage when the platform demands a
// pause before the next send.
type FloodWaitError struct {
	Wait time.Duration
	Err  error
}

func (e *FloodWaitError) Error() string {
	return fmt.Sprintf("flood wait %s: %v", e.Wait, e.Err)
}

func (e *FloodWaitError) Unwrap() error { return e.Err }

// AsFloodWait reports whether err carries a flood-wait signal and, if
// so, the required wait duration.
func AsFloodWait(err error) (time.Duration, bool) {
	var fw *FloodWaitError
	if errors.As(err, &fw) {
		return fw.Wait, true
	}
	return 0, false
}
