// Package telegram adapts the gotd MTProto client to the transport
// contract the core consumes: it authenticates the operator session,
// turns raw updates into transport events, and sends outbound messages.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/telegram/updates"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"github.com/tahaayman1/Bot-termux/internal/transport"
)

// Options configures the Telegram client.
type Options struct {
	APIID       int
	APIHash     string
	Phone       string
	SessionFile string

	// OnReady runs after authentication, before the update loop starts.
	// The client can already send messages at this point.
	OnReady func(ctx context.Context) error
}

// Client is the gotd-backed transport. It implements transport.Sender.
type Client struct {
	opts    Options
	handler transport.Handler

	client *telegram.Client
	gaps   *updates.Manager
	sender *message.Sender
	peers  *peerCache

	self atomic.Pointer[tg.User]
}

// New creates a Telegram client that delivers every new message to the
// given handler. Handlers for distinct events run concurrently.
func New(opts Options, handler transport.Handler) *Client {
	c := &Client{
		opts:    opts,
		handler: handler,
		peers:   newPeerCache(),
	}

	dispatcher := tg.NewUpdateDispatcher()
	dispatcher.OnNewMessage(func(ctx context.Context, e tg.Entities, u *tg.UpdateNewMessage) error {
		c.onMessage(ctx, e, u.Message)
		return nil
	})
	dispatcher.OnNewChannelMessage(func(ctx context.Context, e tg.Entities, u *tg.UpdateNewChannelMessage) error {
		c.onMessage(ctx, e, u.Message)
		return nil
	})

	c.gaps = updates.New(updates.Config{Handler: dispatcher})
	c.client = telegram.NewClient(opts.APIID, opts.APIHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: opts.SessionFile},
		UpdateHandler:  c.gaps,
	})
	c.sender = message.NewSender(c.client.API())
	return c
}

// Run connects, authenticates if necessary, and processes updates until
// the context ends or the connection is lost.
func (c *Client) Run(ctx context.Context) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		flow := auth.NewFlow(terminalAuth{phone: c.opts.Phone}, auth.SendCodeOptions{})
		if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}

		self, err := c.client.Self(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve own account: %w", err)
		}
		c.self.Store(self)
		slog.Info("Logged in", "user", self.FirstName, "id", self.ID)

		if c.opts.OnReady != nil {
			if err := c.opts.OnReady(ctx); err != nil {
				return err
			}
		}

		return c.gaps.Run(ctx, c.client.API(), self.ID, updates.AuthOptions{
			OnStart: func(ctx context.Context) {
				slog.Info("Update loop started, monitoring messages")
			},
		})
	})
}

// SendMessage sends text to the destination. Rate-limit errors are
// surfaced as *transport.FloodWaitError so callers can back off.
func (c *Client) SendMessage(ctx context.Context, dest transport.Destination, text string) error {
	var err error
	if dest.IsSaved() {
		_, err = c.sender.Self().Text(ctx, text)
	} else {
		peer, ok := c.peers.inputPeer(dest.ChatID())
		if !ok {
			return fmt.Errorf("no access hash known for chat %d", dest.ChatID())
		}
		_, err = c.sender.To(peer).Text(ctx, text)
	}
	if err != nil {
		if wait, ok := tgerr.AsFloodWait(err); ok {
			return &transport.FloodWaitError{Wait: wait, Err: err}
		}
		return fmt.Errorf("failed to send message to %s: %w", dest.String(), err)
	}
	return nil
}

// onMessage converts one raw message update into a transport event and
// hands it to the handler on its own goroutine, so a slow pipeline for
// one chat never stalls updates from another.
func (c *Client) onMessage(ctx context.Context, e tg.Entities, msg tg.MessageClass) {
	m, ok := msg.(*tg.Message)
	if !ok {
		return
	}
	c.peers.observe(e)

	ev := transport.Event{
		Text:      m.Message,
		MessageID: m.ID,
		Time:      time.Unix(int64(m.Date), 0),
		Outgoing:  m.Out,
	}
	// MTProto carries a media caption in the same field as message text;
	// keep it available separately so the router's fallback applies.
	if m.Media != nil {
		ev.Caption = m.Message
	}

	ev.Origin, ev.Scope = c.resolveOrigin(e, m)
	ev.Sender = c.resolveSender(e, m, ev.Origin, ev.Scope)

	go c.handler(ctx, ev)
}

func (c *Client) resolveOrigin(e tg.Entities, m *tg.Message) (transport.Peer, transport.Scope) {
	switch peer := m.PeerID.(type) {
	case *tg.PeerUser:
		if u, ok := e.Users[peer.UserID]; ok {
			return personPeer(u), transport.ScopePrivate
		}
		return transport.Peer{Kind: transport.PeerPerson, ID: peer.UserID}, transport.ScopePrivate
	case *tg.PeerChat:
		if ch, ok := e.Chats[peer.ChatID]; ok {
			return transport.Peer{Kind: transport.PeerGroup, ID: ch.ID, Title: ch.Title}, transport.ScopeGroup
		}
		return transport.Peer{Kind: transport.PeerGroup, ID: peer.ChatID}, transport.ScopeGroup
	case *tg.PeerChannel:
		ch, ok := e.Channels[peer.ChannelID]
		if !ok {
			return transport.Peer{Kind: transport.PeerChannel, ID: peer.ChannelID}, transport.ScopeChannel
		}
		p := transport.Peer{Kind: transport.PeerChannel, ID: ch.ID, Title: ch.Title, Username: ch.Username}
		// Megagroups behave like groups for scope purposes even though
		// they live in the channel namespace.
		if ch.Megagroup {
			return p, transport.ScopeGroup
		}
		return p, transport.ScopeChannel
	}
	return transport.Peer{}, transport.ScopePrivate
}

func (c *Client) resolveSender(e tg.Entities, m *tg.Message, origin transport.Peer, scope transport.Scope) transport.Peer {
	if from, ok := m.FromID.(*tg.PeerUser); ok {
		if u, ok := e.Users[from.UserID]; ok {
			return personPeer(u)
		}
		return transport.Peer{Kind: transport.PeerPerson, ID: from.UserID}
	}
	if from, ok := m.FromID.(*tg.PeerChannel); ok {
		if ch, ok := e.Channels[from.ChannelID]; ok {
			return transport.Peer{Kind: transport.PeerChannel, ID: ch.ID, Title: ch.Title, Username: ch.Username}
		}
		return transport.Peer{Kind: transport.PeerChannel, ID: from.ChannelID}
	}
	if m.Out {
		if self := c.self.Load(); self != nil {
			return personPeer(self)
		}
	}
	// Channel posts often carry no FromID; the channel itself is the
	// sender. Private chats without FromID fall back to the origin.
	if scope == transport.ScopeChannel || scope == transport.ScopePrivate {
		return origin
	}
	return transport.Peer{Kind: transport.PeerUnknown}
}

func personPeer(u *tg.User) transport.Peer {
	if u == nil {
		return transport.Peer{Kind: transport.PeerUnknown}
	}
	return transport.Peer{
		Kind:      transport.PeerPerson,
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}
