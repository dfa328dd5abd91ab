package profile

import (
	"context"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/rushteam/artrec/core"
)

// KVRepository 把画像以 JSON 存在 core.Store 中，key 为 {KeyPrefix}:{userID}。
type KVRepository struct {
	store     core.Store
	KeyPrefix string
}

func NewKVRepository(s core.Store, keyPrefix ...string) *KVRepository {
	prefix := "profile"
	if len(keyPrefix) > 0 && keyPrefix[0] != "" {
		prefix = keyPrefix[0]
	}
	return &KVRepository{store: s, KeyPrefix: prefix}
}

func (r *KVRepository) key(userID int64) string {
	return r.KeyPrefix + ":" + strconv.FormatInt(userID, 10)
}

func (r *KVRepository) Get(ctx context.Context, userID int64) (*core.PreferenceProfile, error) {
	data, err := r.store.Get(ctx, r.key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrProfileNotFound
		}
		return nil, err
	}
	var p core.PreferenceProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, core.WrapDomainError(core.ModuleProfile, core.ErrorCodeInternalError, "profile: decode", err)
	}
	return &p, nil
}

func (r *KVRepository) Upsert(ctx context.Context, p *core.PreferenceProfile) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return core.WrapDomainError(core.ModuleProfile, core.ErrorCodeInternalError, "profile: encode", err)
	}
	return r.store.Set(ctx, r.key(p.UserID), data)
}

var _ core.ProfileRepository = (*KVRepository)(nil)
