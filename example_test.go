package artrec_test

import (
	"context"
	"fmt"

	"github.com/rushteam/artrec"
	"github.com/rushteam/artrec/behavior"
	"github.com/rushteam/artrec/cache"
	"github.com/rushteam/artrec/catalog"
	"github.com/rushteam/artrec/core"
	"github.com/rushteam/artrec/profile"
	"github.com/rushteam/artrec/store"
)

func Example() {
	kv := store.NewMemoryStore()
	defer kv.Close()

	eng, err := artrec.New(artrec.DefaultConfig(), artrec.Deps{
		Log:      behavior.NewKVLog(kv),
		Profiles: profile.NewKVRepository(kv),
		Cache:    cache.NewKVCache(kv),
		Catalog: catalog.NewMemoryCatalog(
			&core.Artwork{ID: 1, Title: "Blue Field", ArtistID: 7, Category: "abstract", PriceRange: core.PriceHigh, PopularityScore: 10},
			&core.Artwork{ID: 2, Title: "Old Harbor", ArtistID: 8, Category: "portrait", PriceRange: core.PriceLow, PopularityScore: 20},
		),
	})
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := eng.Track(ctx, artrec.TrackRequest{
			UserID: 1, Action: core.ActionLike, ArtworkID: 1, ArtistID: 7,
			Category: "abstract", PriceRange: core.PriceHigh,
		})
		if err != nil {
			panic(err)
		}
	}

	resp, err := eng.Recommend(ctx, artrec.RecommendRequest{UserID: 1, Limit: 5})
	if err != nil {
		panic(err)
	}
	for _, r := range resp.Recommendations {
		fmt.Println(r.ArtworkID, r.Title, r.MatchScore, r.Algorithm)
	}
	// Output:
	// 1 Blue Field 95 content-based
}
