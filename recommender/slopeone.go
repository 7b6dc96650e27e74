package recommender

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

func init() {
	Register(SlopeOne, func(model *core.Model) Recommender {
		return &SlopeOneRecommender{model: model}
	})
}

// SlopeOneRecommender 是 Slope One 家族的协同过滤打分（Weighted Slope One）。
//
// 核心思想："与目标用户有购买重叠的用户，他们对两件商品的购买量差值
// 可以外推到目标用户身上"
//
// 算法流程：
//  1. 取目标用户的矩阵行作为已知评分（购买量即评分）
//  2. 对每个候选商品 j 与每个已知商品 i，统计全体用户的平均差值 dev(j,i)
//     与共同评分人数 card(j,i)
//  3. 预测 p(u,j) = Σ_i (dev(j,i) + r_ui) * card(j,i) / Σ_i card(j,i)
//
// 本变体在请求时对购买矩阵做单遍扫描、现场累计差值表；
// 预计算版本见 PreprocessedSlopeOneRecommender，两者对相同输入产出相同分数。
//
// 匿名或未知用户没有矩阵行可用，退化为全局热门度打分。
type SlopeOneRecommender struct {
	model *core.Model
}

func (r *SlopeOneRecommender) Name() string {
	return "recommender.slope_one"
}

func (r *SlopeOneRecommender) Score(
	_ context.Context,
	rctx *core.RecommendContext,
) (map[int64]float64, error) {
	userRow, ok := r.userRow(rctx)
	if !ok {
		return popularityScores(r.model), nil
	}

	// 单遍扫描矩阵，只为 (候选 j, 已知 i) 对累计差值与人数
	diffSum := make(map[int64]map[int64]float64)
	card := make(map[int64]map[int64]int)

	for _, row := range r.model.Matrix {
		for j, rj := range row {
			if _, rated := userRow[j]; rated {
				continue
			}
			for i := range userRow {
				ri, ok := row[i]
				if !ok {
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

	return slopeOnePredict(userRow, diffSum, card), nil
}

func (r *SlopeOneRecommender) userRow(rctx *core.RecommendContext) (map[int64]float64, bool) {
	if rctx == nil || !rctx.HasUser() {
		return nil, false
	}
	row, ok := r.model.UserRow(rctx.UserID)
	if !ok || len(row) == 0 {
		return nil, false
	}
	return row, ok
}

// slopeOnePredict 用累计好的差值/人数表对每个候选做加权 Slope One 预测。
func slopeOnePredict(
	userRow map[int64]float64,
	diffSum map[int64]map[int64]float64,
	card map[int64]map[int64]int,
) map[int64]float64 {
	scores := make(map[int64]float64, len(diffSum))
	for j, diffs := range diffSum {
		var num, den float64
		for i, sum := range diffs {
			c := float64(card[j][i])
			if c == 0 {
				continue
			}
			dev := sum / c
			num += (dev + userRow[i]) * c
			den += c
		}
		if den > 0 {
			scores[j] = num / den
		}
	}
	return scores
}
