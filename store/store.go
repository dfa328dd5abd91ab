// Package store 提供 core.Store / core.KeyValueStore 的实现：
// MemoryStore（测试、开发、单机）与 RedisStore（生产）。
// 关系型存储见 store/sqlstore。
//
// 示例：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	log := behavior.NewKVLog(kv)
package store

import (
	"cmp"
	"slices"

	"github.com/rushteam/artrec/core"
)

// sortScored 按分数降序排列，同分按 member 降序（与 Redis ZREVRANGE 一致）。
func sortScored(members []core.ScoredMember) {
	slices.SortFunc(members, func(a, b core.ScoredMember) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.Member, a.Member)
	})
}

// rankRange 把 [start, stop] 排名区间裁剪到长度 n 内，stop 为负表示从末尾倒数。
func rankRange(start, stop int64, n int) (int, int, bool) {
	size := int64(n)
	if start < 0 {
		start += size
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop += size
	}
	if stop >= size {
		stop = size - 1
	}
	if start > stop || start >= size {
		return 0, 0, false
	}
	return int(start), int(stop) + 1, true
}
