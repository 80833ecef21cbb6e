package draftstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
)

// ValkeyStore persists drafts in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "summarizer"
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *ValkeyStore) Save(ctx context.Context, draft summarizer.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	builder := s.client.B().Set().Key(s.draftKey(draft.SessionID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl := s.ttl; ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) Load(ctx context.Context, id uuid.UUID) (summarizer.Draft, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.draftKey(id)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return summarizer.Draft{}, false, nil
		}
		return summarizer.Draft{}, false, err
	}
	var draft summarizer.Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return summarizer.Draft{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return draft, true, nil
}

func (s *ValkeyStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.draftKey(id)).Build()).Error()
}

func (s *ValkeyStore) draftKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:draft:%s", s.prefix, id)
}

var _ summarizer.DraftStore = (*ValkeyStore)(nil)
