package forum

import (
	"context"
	"sync"

	"github.com/alexedwards/scs/v2"
)

// SessionKey is the durable key holding the serialized Identity.
const SessionKey = "user"

// SessionStorage is durable per-viewer storage for the logged in identity.
// Load returns (nil, nil) when nothing is stored.
type SessionStorage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Remove(ctx context.Context) error
}

// MemoryStorage keeps the session in process memory.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func (m *MemoryStorage) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStorage) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStorage) Remove(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// ScsStorage stores the identity in the request's scs session. The context
// passed to every call must come from a request wrapped by LoadAndSave.
type ScsStorage struct {
	Manager *scs.SessionManager
}

func (s ScsStorage) Load(ctx context.Context) ([]byte, error) {
	return s.Manager.GetBytes(ctx, SessionKey), nil
}

func (s ScsStorage) Save(ctx context.Context, data []byte) error {
	s.Manager.Put(ctx, SessionKey, data)
	// new identity, new token
	return s.Manager.RenewToken(ctx)
}

func (s ScsStorage) Remove(ctx context.Context) error {
	s.Manager.Remove(ctx, SessionKey)
	return s.Manager.RenewToken(ctx)
}
