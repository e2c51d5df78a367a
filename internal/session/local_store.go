package session

import (
	"context"
	"encoding/json"
	"time"
)

// KeyValue is the raw key access of the local store.
type KeyValue interface {
	ReadKey(ctx context.Context, key string) ([]byte, error)
	WriteKey(ctx context.Context, key string, value []byte) error
	RemoveKey(ctx context.Context, key string) error
}

// LocalStore holds at most one session under a single key, like a browser
// profile: starting a session replaces the previous one.
type LocalStore struct {
	kv  KeyValue
	key string
}

func NewLocalStore(kv KeyValue, key string) *LocalStore {
	return &LocalStore{kv: kv, key: key}
}

func (l *LocalStore) Save(ctx context.Context, s *Session, _ time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return l.kv.WriteKey(ctx, l.key, payload)
}

func (l *LocalStore) Load(ctx context.Context, id string) (*Session, error) {
	current, err := l.current(ctx)
	if err != nil || current == nil || current.ID != id {
		return nil, err
	}
	if !time.Now().Before(current.ExpiresAt) {
		return nil, nil
	}
	return current, nil
}

// Delete clears the stored session only when it is the one named by id.
func (l *LocalStore) Delete(ctx context.Context, id string) error {
	current, err := l.current(ctx)
	if err != nil || current == nil || current.ID != id {
		return err
	}
	return l.kv.RemoveKey(ctx, l.key)
}

func (l *LocalStore) current(ctx context.Context) (*Session, error) {
	payload, err := l.kv.ReadKey(ctx, l.key)
	if err != nil || payload == nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
