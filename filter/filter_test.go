package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/store"
)

func items(ids ...int64) []*core.Item {
	out := make([]*core.Item, len(ids))
	for i, id := range ids {
		out[i] = core.NewItem(id)
	}
	return out
}

func ids(items []*core.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestPurchasedFilter(t *testing.T) {
	rctx := &core.RecommendContext{UserID: 1, Purchased: map[int64]struct{}{42: {}, 7: {}}}
	node := &FilterNode{Filters: []Filter{&PurchasedFilter{}}}

	out, err := node.Process(context.Background(), rctx, items(42, 1, 7, 3))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(out))

	out, err = node.Process(context.Background(), &core.RecommendContext{}, items(42))
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, ids(out))
}

func TestBlacklistFilter(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	adapter := NewStoreAdapter(s)
	require.NoError(t, adapter.SetBlacklist(ctx, "blacklist:artworks", []int64{5}))

	node := &FilterNode{Filters: []Filter{
		NewBlacklistFilter([]int64{2}, adapter, "blacklist:artworks"),
	}}
	out, err := node.Process(ctx, &core.RecommendContext{}, items(1, 2, 3, 5))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(out))

	empty := NewBlacklistFilter(nil, adapter, "missing")
	drop, err := empty.ShouldFilter(ctx, nil, core.NewItem(1))
	require.NoError(t, err)
	assert.False(t, drop)
}

func TestAvailabilityFilter(t *testing.T) {
	in := items(1, 2, 3, 4)
	in[0].Artwork = &core.Artwork{ID: 1, Status: core.ArtworkActive}
	in[1].Artwork = &core.Artwork{ID: 2, Status: core.ArtworkSold}
	in[2].Artwork = &core.Artwork{ID: 3}

	out, err := (&FilterNode{Filters: []Filter{&AvailabilityFilter{}}}).Process(context.Background(), &core.RecommendContext{}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, ids(out))

	out, err = (&FilterNode{Filters: []Filter{&AvailabilityFilter{DropUnknown: true}}}).Process(context.Background(), &core.RecommendContext{}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(out))
}

func TestExprFilter(t *testing.T) {
	f, err := NewExprFilter(`item.price <= 1000.0`)
	require.NoError(t, err)

	in := items(1, 2)
	in[0].Artwork = &core.Artwork{ID: 1, Price: 500}
	in[1].Artwork = &core.Artwork{ID: 2, Price: 5000}

	out, err := (&FilterNode{Filters: []Filter{f}}).Process(context.Background(), &core.RecommendContext{}, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(out))

	_, err = NewExprFilter(`item.price <=`)
	assert.True(t, core.IsInvalidInput(err))
}

type countingStore struct {
	ids   []int64
	calls int
}

func (s *countingStore) GetBlacklist(context.Context, string) ([]int64, error) {
	s.calls++
	return s.ids, nil
}

func TestFilterNode_PreparesOncePerRequest(t *testing.T) {
	bl := &countingStore{ids: []int64{3}}
	node := &FilterNode{Filters: []Filter{
		&PurchasedFilter{},
		NewBlacklistFilter(nil, bl, "ops"),
	}}
	rctx := &core.RecommendContext{Purchased: map[int64]struct{}{1: {}}}

	out, err := node.Process(context.Background(), rctx, items(1, 2, 3, 4, 5))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 5}, ids(out))
	assert.Equal(t, 1, bl.calls)

	lbl, ok := rctx.GetLabel("filtered")
	require.True(t, ok)
	assert.Equal(t, "filter.purchased:1|filter.blacklist:1", lbl.Value)
}

func TestStoreAdapter_AddToBlacklist(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	adapter := NewStoreAdapter(s)

	require.NoError(t, adapter.AddToBlacklist(ctx, "ops", 7, 8))
	got, err := adapter.GetBlacklist(ctx, "ops")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{7, 8}, got)

	require.NoError(t, adapter.SetBlacklist(ctx, "ops", []int64{9}))
	got, err = adapter.GetBlacklist(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, got)
}
