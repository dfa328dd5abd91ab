package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/engine"
)

type recordingTracker struct {
	got []engine.TrackRequest
	err error
}

func (r *recordingTracker) Track(_ context.Context, req engine.TrackRequest) error {
	r.got = append(r.got, req)
	return r.err
}

func TestHandleRecord(t *testing.T) {
	ctx := context.Background()
	req := engine.TrackRequest{
		UserID:     1,
		Action:     core.ActionLike,
		ArtworkID:  100,
		ArtistID:   7,
		Category:   "abstract",
		PriceRange: core.PriceHigh,
	}

	rec, err := NewRecord("behavior", req)
	require.NoError(t, err)
	assert.Equal(t, "behavior", rec.Topic)
	assert.Equal(t, []byte("1"), rec.Key)
	assert.Contains(t, string(rec.Value), `"action_type":"like"`)

	tr := &recordingTracker{}
	require.NoError(t, HandleRecord(ctx, tr, rec))
	require.Len(t, tr.got, 1)
	assert.Equal(t, req, tr.got[0])
}

func TestHandleRecord_Errors(t *testing.T) {
	ctx := context.Background()

	err := HandleRecord(ctx, &recordingTracker{}, &kgo.Record{Value: []byte("{not json")})
	assert.ErrorIs(t, err, ErrDecode)

	invalid := core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "track: invalid Action(oneof)")
	err = HandleRecord(ctx, &recordingTracker{err: invalid},
		&kgo.Record{Value: []byte(`{"user_id":1,"action_type":"dance"}`)})
	assert.True(t, core.IsInvalidInput(err))

	boom := errors.New("redis down")
	err = HandleRecord(ctx, &recordingTracker{err: boom},
		&kgo.Record{Value: []byte(`{"user_id":1,"action_type":"view"}`)})
	assert.ErrorIs(t, err, boom)
}

func TestNewConsumer_RequiresTopic(t *testing.T) {
	_, err := NewConsumer(ConsumerConfig{Brokers: []string{"localhost:9092"}}, &recordingTracker{}, nil)
	assert.Error(t, err)
}
