// Package catalog 是外部作品目录的接入层：内存目录、KV 目录与补全 Node。
package catalog

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/goccy/go-json"

	"github.com/rushteam/artrec/core"
)

// MemoryCatalog 是内存作品目录，List 按写入顺序返回。
type MemoryCatalog struct {
	mu    sync.RWMutex
	order []int64
	byID  map[int64]*core.Artwork
}

func NewMemoryCatalog(artworks ...*core.Artwork) *MemoryCatalog {
	c := &MemoryCatalog{byID: make(map[int64]*core.Artwork)}
	c.Put(artworks...)
	return c
}

// Put 写入或更新作品。
func (c *MemoryCatalog) Put(artworks ...*core.Artwork) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range artworks {
		if a == nil {
			continue
		}
		if _, ok := c.byID[a.ID]; !ok {
			c.order = append(c.order, a.ID)
		}
		c.byID[a.ID] = a
	}
}

func (c *MemoryCatalog) List(ctx context.Context) ([]*core.Artwork, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*core.Artwork, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

func (c *MemoryCatalog) BatchGet(ctx context.Context, ids []int64) (map[int64]*core.Artwork, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[int64]*core.Artwork, len(ids))
	for _, id := range ids {
		if a, ok := c.byID[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

// KVCatalog 把作品以 JSON 存在 Hash 中：{Key} -> field 为作品 id。
// List 按作品 id 升序返回。
type KVCatalog struct {
	store core.KeyValueStore
	Key   string
}

func NewKVCatalog(s core.KeyValueStore, key ...string) *KVCatalog {
	k := "catalog:artworks"
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}
	return &KVCatalog{store: s, Key: k}
}

// Put 写入作品（供目录同步任务或测试使用）。
func (c *KVCatalog) Put(ctx context.Context, artworks ...*core.Artwork) error {
	for _, a := range artworks {
		data, err := json.Marshal(a)
		if err != nil {
			return core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeInternalError, "catalog: encode artwork", err)
		}
		if err := c.store.HSet(ctx, c.Key, strconv.FormatInt(a.ID, 10), data); err != nil {
			return err
		}
	}
	return nil
}

func (c *KVCatalog) List(ctx context.Context) ([]*core.Artwork, error) {
	all, err := c.store.HGetAll(ctx, c.Key)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Artwork, 0, len(all))
	for _, data := range all {
		a, err := decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *core.Artwork) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (c *KVCatalog) BatchGet(ctx context.Context, ids []int64) (map[int64]*core.Artwork, error) {
	out := make(map[int64]*core.Artwork, len(ids))
	for _, id := range ids {
		data, err := c.store.HGet(ctx, c.Key, strconv.FormatInt(id, 10))
		if err != nil {
			if core.IsStoreNotFound(err) {
				continue
			}
			return nil, err
		}
		a, err := decode(data)
		if err != nil {
			return nil, err
		}
		out[id] = a
	}
	return out, nil
}

func decode(data []byte) (*core.Artwork, error) {
	var a core.Artwork
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeInternalError, "catalog: decode artwork", err)
	}
	return &a, nil
}

var (
	_ core.Catalog = (*MemoryCatalog)(nil)
	_ core.Catalog = (*KVCatalog)(nil)
)
