package draftstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(0)
	runDraftStoreContract(t, store)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(time.Nanosecond)
	id := uuid.New()
	require.NoError(t, store.Save(context.Background(), summarizer.Draft{SessionID: id, Text: "One."}))
	time.Sleep(time.Millisecond)

	_, ok, err := store.Load(context.Background(), id)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	store := NewValkeyStore(client, "test", time.Hour)
	runDraftStoreContract(t, store)

	id := uuid.New()
	require.NoError(t, store.Save(context.Background(), summarizer.Draft{SessionID: id, Text: "Hi."}))
	key := "test:draft:" + id.String()
	require.True(t, mr.Exists(key))
	require.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(2 * time.Hour)
	_, ok, err := store.Load(context.Background(), id)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValkeyStoreRejectsCorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	id := uuid.New()
	require.NoError(t, mr.Set("summarizer:draft:"+id.String(), "{not json"))

	_, _, err = NewValkeyStore(client, "", 0).Load(context.Background(), id)
	require.ErrorContains(t, err, "decode draft")
}

func runDraftStoreContract(t *testing.T, store summarizer.DraftStore) {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()

	_, ok, err := store.Load(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)

	draft := summarizer.Draft{
		SessionID:     id,
		Text:          "पहला वाक्य. दूसरा वाक्य.",
		Language:      summarizer.LanguageHindi,
		SentenceCount: 2,
		UpdatedAt:     time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, draft))

	got, ok, err := store.Load(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, draft, got)

	require.NoError(t, store.Delete(ctx, id))
	_, ok, err = store.Load(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)
}
