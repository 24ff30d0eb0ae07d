package telegram

import (
	"sync"

	"github.com/gotd/td/tg"
)

// peerCache remembers the access hashes seen in update entities so the
// client can address channels and users later, e.g. when an alert goes
// to a configured log channel.
type peerCache struct {
	mu       sync.RWMutex
	users    map[int64]*tg.User
	chats    map[int64]*tg.Chat
	channels map[int64]*tg.Channel
}

func newPeerCache() *peerCache {
	return &peerCache{
		users:    make(map[int64]*tg.User),
		chats:    make(map[int64]*tg.Chat),
		channels: make(map[int64]*tg.Channel),
	}
}

// observe records every entity attached to an update batch.
func (p *peerCache) observe(e tg.Entities) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, u := range e.Users {
		p.users[id] = u
	}
	for id, ch := range e.Chats {
		p.chats[id] = ch
	}
	for id, ch := range e.Channels {
		p.channels[id] = ch
	}
}

// inputPeer builds an input peer for a chat id previously seen in
// updates. The second return is false when the id was never observed,
// in which case a send cannot be addressed.
func (p *peerCache) inputPeer(id int64) (tg.InputPeerClass, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if ch, ok := p.channels[id]; ok {
		return &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}, true
	}
	if chat, ok := p.chats[id]; ok {
		return &tg.InputPeerChat{ChatID: chat.ID}, true
	}
	if u, ok := p.users[id]; ok {
		return &tg.InputPeerUser{UserID: u.ID, AccessHash: u.AccessHash}, true
	}
	return nil, false
}
