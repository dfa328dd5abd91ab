package recall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/artrec/behavior"
	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/store"
)

func TestContentBased_Recall(t *testing.T) {
	cat := catalog.NewMemoryCatalog(
		&core.Artwork{ID: 1, Category: "abstract", PriceRange: core.PriceHigh, ArtistID: 7, PopularityScore: 15},
		&core.Artwork{ID: 2, Category: "abstract", PriceRange: core.PriceLow, ArtistID: 8, PopularityScore: 5},
		&core.Artwork{ID: 3, Category: "portrait", PriceRange: core.PriceHigh, ArtistID: 9, PopularityScore: 20},
		&core.Artwork{ID: 4, Category: "portrait", PriceRange: core.PriceLow, ArtistID: 9, PopularityScore: 80},
		&core.Artwork{ID: 5, Category: "abstract", PriceRange: core.PriceLow, ArtistID: 9, PopularityScore: 10},
	)
	rctx := &core.RecommendContext{UserID: 1, Profile: &core.PreferenceProfile{
		UserID:              1,
		PreferredCategories: []string{"abstract"},
		PreferredPriceRange: core.PriceHigh,
		PreferredArtists:    []int64{7},
	}}

	items, err := NewContentBased(cat).Recall(context.Background(), rctx)
	require.NoError(t, err)

	// 1: 15+40+30+20=105 -> 95；4: 80；2: 5+40=45 与 5: 10+40=50 均不超过 50；3: 20+30=50
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 95.0, items[0].Score)
	assert.Equal(t, []string{
		"Similar to your interest in abstract",
		ReasonPreferredPrice,
		ReasonPreferredArtist,
	}, items[0].Reasons)
	assert.Equal(t, core.AlgorithmContent, items[0].Algorithm)
	assert.NotNil(t, items[0].Artwork)

	assert.Equal(t, int64(4), items[1].ID)
	assert.Equal(t, 80.0, items[1].Score)
	assert.Empty(t, items[1].Reasons)

	none, err := NewContentBased(cat).Recall(context.Background(), &core.RecommendContext{UserID: 1})
	require.NoError(t, err)
	assert.Empty(t, none)
}

type fixedNeighbors []core.Neighbor

func (f fixedNeighbors) FindSimilarUsers(context.Context, int64, time.Time) ([]core.Neighbor, error) {
	return f, nil
}

func newLog(t *testing.T) *behavior.KVLog {
	t.Helper()
	s := store.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return behavior.NewKVLog(s)
}

func TestCollaborative_Recall(t *testing.T) {
	ctx := context.Background()
	log := newLog(t)
	now := time.Now()
	for _, e := range []core.BehaviorEvent{
		{UserID: 2, Action: core.ActionLike, ArtworkID: 10, Timestamp: now.Add(-3 * time.Hour)},
		{UserID: 2, Action: core.ActionPurchase, ArtworkID: 10, Timestamp: now.Add(-2 * time.Hour)},
		{UserID: 2, Action: core.ActionView, ArtworkID: 11, Timestamp: now.Add(-1 * time.Hour)},
		{UserID: 3, Action: core.ActionLike, ArtworkID: 10, Timestamp: now.Add(-1 * time.Hour)},
		{UserID: 3, Action: core.ActionLike, ArtworkID: 12, Timestamp: now},
	} {
		require.NoError(t, log.Append(ctx, e))
	}

	src := NewCollaborative(fixedNeighbors{{UserID: 2, Similarity: 0.9}, {UserID: 3, Similarity: 0.5}}, log)
	items, err := src.Recall(ctx, &core.RecommendContext{UserID: 1, Now: now})
	require.NoError(t, err)

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
		assert.Equal(t, 75.0, it.Score)
		assert.Equal(t, []string{ReasonSimilarUsers}, it.Reasons)
	}
	// 同一邻居内去重，跨邻居不去重
	assert.Equal(t, []int64{10, 12, 10}, ids)

	src.MaxNeighbors = 1
	items, err = src.Recall(ctx, &core.RecommendContext{UserID: 1, Now: now})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPopularity_Recall(t *testing.T) {
	ctx := context.Background()
	log := newLog(t)
	for _, e := range []core.BehaviorEvent{
		{UserID: 1, Action: core.ActionLike, ArtworkID: 5},
		{UserID: 2, Action: core.ActionPurchase, ArtworkID: 5},
		{UserID: 2, Action: core.ActionLike, ArtworkID: 3},
		{UserID: 3, Action: core.ActionView, ArtworkID: 9},
	} {
		require.NoError(t, log.Append(ctx, e))
	}

	items, err := NewPopularity(log).Recall(ctx, &core.RecommendContext{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(5), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)
	assert.Equal(t, 60.0, items[0].Score)
	assert.Equal(t, core.AlgorithmPopularity, items[0].Algorithm)
	assert.Equal(t, []string{ReasonPopular}, items[0].Reasons)
}

type stubSource struct {
	name  string
	ids   []int64
	delay time.Duration
	err   error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.Item, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*core.Item, len(s.ids))
	for i, id := range s.ids {
		out[i] = core.NewItem(id)
	}
	return out, nil
}

func TestFanout_SourceOrder(t *testing.T) {
	f := &Fanout{Sources: []Source{
		stubSource{name: "slow", ids: []int64{1, 2}, delay: 20 * time.Millisecond},
		stubSource{name: "fast", ids: []int64{3}},
	}}
	items, err := f.Process(context.Background(), &core.RecommendContext{}, nil)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "1", items[2].Labels["recall_priority"].Value)
}

func TestFanout_Error(t *testing.T) {
	boom := errors.New("catalog down")
	f := &Fanout{Sources: []Source{
		stubSource{name: "ok", ids: []int64{1}},
		stubSource{name: "bad", err: boom},
	}, MaxConcurrent: 1}
	_, err := f.Process(context.Background(), &core.RecommendContext{}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestFanout_Timeout(t *testing.T) {
	f := &Fanout{Sources: []Source{
		stubSource{name: "stuck", ids: []int64{1}, delay: time.Second},
	}, Timeout: 10 * time.Millisecond}
	_, err := f.Process(context.Background(), &core.RecommendContext{}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
