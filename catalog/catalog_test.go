package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/store"
)

func sample() []*core.Artwork {
	return []*core.Artwork{
		{ID: 3, Title: "Blue", Category: "abstract", PriceRange: core.PriceHigh, PopularityScore: 15},
		{ID: 1, Title: "Face", Category: "portrait", PriceRange: core.PriceLow},
	}
}

func TestCatalogs(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	kv := NewKVCatalog(s)
	require.NoError(t, kv.Put(ctx, sample()...))

	mem := NewMemoryCatalog(sample()...)

	memList, err := mem.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, []int64{memList[0].ID, memList[1].ID})

	kvList, err := kv.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, []int64{kvList[0].ID, kvList[1].ID})

	for name, c := range map[string]core.Catalog{"memory": mem, "kv": kv} {
		t.Run(name, func(t *testing.T) {
			got, err := c.BatchGet(ctx, []int64{3, 99})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "Blue", got[3].Title)
		})
	}
}

func TestEnrichNode(t *testing.T) {
	node := &EnrichNode{Catalog: NewMemoryCatalog(sample()...)}

	known := core.NewItem(1)
	unknown := core.NewItem(99)
	preset := core.NewItem(3)
	preset.Artwork = &core.Artwork{ID: 3, Title: "kept"}

	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Item{known, unknown, preset})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Face", out[0].Artwork.Title)
	assert.Nil(t, out[1].Artwork)
	assert.Equal(t, "kept", out[2].Artwork.Title)
}
