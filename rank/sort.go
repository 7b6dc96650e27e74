// Package rank 提供确定性的排序规则：分数降序，同分按商品 ID 升序。
// 所有打分变体共享这一套排序，平分的相对顺序在任何两次调用间都保持一致。
package rank

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/pipeline"
)

// SortItems 原地排序：分数降序，同分按商品 ID 升序。
func SortItems(items []*core.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})
}

// SortNode 是排序 Node。非有限分数（NaN/±Inf）在排序前被丢弃，
// 打分契约本就不允许它们出现，这里只做兜底。
type SortNode struct{}

func (n *SortNode) Name() string {
	return "rank.sort"
}

func (n *SortNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *SortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || math.IsNaN(it.Score) || math.IsInf(it.Score, 0) {
			continue
		}
		out = append(out, it)
	}
	SortItems(out)
	return out, nil
}

// TopN 是独立于 Pipeline 的纯函数入口：把一张无序的分数表变成
// 有上限、排除指定商品、确定性有序的推荐列表。
//
//   - scores 为空或 nil 时直接返回空列表
//   - exclude 中出现过的商品一律不出现在结果里
//   - 结果长度不超过 n
func TopN(scores map[int64]float64, exclude []int64, n int) []int64 {
	if len(scores) == 0 || n <= 0 {
		return []int64{}
	}

	excluded := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	items := make([]*core.Item, 0, len(scores))
	for id, score := range scores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		if _, ok := excluded[id]; ok {
			continue
		}
		items = append(items, &core.Item{ID: id, Score: score})
	}
	SortItems(items)

	if len(items) > n {
		items = items[:n]
	}
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
