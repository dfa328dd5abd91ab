package utils

import "slices"

// Counter 是保持首次出现顺序的频次统计。
// MostCommon 在频次相同的情况下按首次出现的先后排序，结果确定。
type Counter[K comparable] struct {
	order  []K
	counts map[K]int
}

func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add 计数一次。
func (c *Counter[K]) Add(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

// Count 返回 k 的次数。
func (c *Counter[K]) Count(k K) int {
	return c.counts[k]
}

// Len 返回不同元素的个数。
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// MostCommon 返回出现次数最多的前 n 个元素；n <= 0 表示全部。
func (c *Counter[K]) MostCommon(n int) []K {
	out := slices.Clone(c.order)
	slices.SortStableFunc(out, func(a, b K) int {
		return c.counts[b] - c.counts[a]
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
