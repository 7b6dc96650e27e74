package recommender

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

func init() {
	Register(PreprocessedSlopeOne, func(model *core.Model) Recommender {
		return &PreprocessedSlopeOneRecommender{model: model}
	})
}

// PreprocessedSlopeOneRecommender 与 SlopeOneRecommender 是同一个估计器，
// 区别只在代价分摊：训练期的 Preprocess 钩子把全量商品对的差值/人数表
// 预先算好，请求时只做查表加权，省掉对购买矩阵的整遍扫描。
//
// 派生表归本实例所有，随训练快照整体发布，只会被下一次完整训练替换。
type PreprocessedSlopeOneRecommender struct {
	model *core.Model

	// diffSum[j][i] 是全体用户对 (j,i) 的购买量差值之和，
	// card[j][i] 是同时购买过 j 和 i 的用户数。
	diffSum map[int64]map[int64]float64
	card    map[int64]map[int64]int
}

func (r *PreprocessedSlopeOneRecommender) Name() string {
	return "recommender.slope_one_preprocessed"
}

// Preprocess 对购买矩阵做一遍全量扫描，填充商品对差值/人数表。
func (r *PreprocessedSlopeOneRecommender) Preprocess(_ context.Context) error {
	diffSum := make(map[int64]map[int64]float64)
	card := make(map[int64]map[int64]int)

	for _, row := range r.model.Matrix {
		for j, rj := range row {
			for i, ri := range row {
				if i == j {
					continue
				}
				if diffSum[j] == nil {
					diffSum[j] = make(map[int64]float64)
					card[j] = make(map[int64]int)
				}
				diffSum[j][i] += rj - ri
				card[j][i]++
			}
		}
	}

	r.diffSum = diffSum
	r.card = card
	return nil
}

func (r *PreprocessedSlopeOneRecommender) Score(
	_ context.Context,
	rctx *core.RecommendContext,
) (map[int64]float64, error) {
	userRow, ok := r.userRow(rctx)
	if !ok {
		return popularityScores(r.model), nil
	}

	// 从全量表裁剪出 (候选 j ∉ 已购, 已知 i ∈ 已购) 的子表后套用同一套预测
	diffSum := make(map[int64]map[int64]float64)
	card := make(map[int64]map[int64]int)
	for j, diffs := range r.diffSum {
		if _, rated := userRow[j]; rated {
			continue
		}
		for i, sum := range diffs {
			if _, rated := userRow[i]; !rated {
				continue
			}
			if diffSum[j] == nil {
				diffSum[j] = make(map[int64]float64)
				card[j] = make(map[int64]int)
			}
			diffSum[j][i] = sum
			card[j][i] = r.card[j][i]
		}
	}

	return slopeOnePredict(userRow, diffSum, card), nil
}

func (r *PreprocessedSlopeOneRecommender) userRow(rctx *core.RecommendContext) (map[int64]float64, bool) {
	if rctx == nil || !rctx.HasUser() {
		return nil, false
	}
	row, ok := r.model.UserRow(rctx.UserID)
	if !ok || len(row) == 0 {
		return nil, false
	}
	return row, ok
}
