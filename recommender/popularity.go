package recommender

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

func init() {
	Register(Popularity, func(model *core.Model) Recommender {
		return &PopularityRecommender{model: model}
	})
}

// PopularityRecommender 按全局购买频次打分：商品分数是所有用户对它的
// 历史累计购买量之和，与请求的用户完全无关。
// 也是个性化变体在匿名/未知用户场景下的退化目标。
type PopularityRecommender struct {
	model *core.Model
}

func (r *PopularityRecommender) Name() string {
	return "recommender.popularity"
}

func (r *PopularityRecommender) Score(
	_ context.Context,
	_ *core.RecommendContext,
) (map[int64]float64, error) {
	return popularityScores(r.model), nil
}

// popularityScores 从购买矩阵汇总全局热度。供本变体与其它变体的匿名退化共用。
func popularityScores(model *core.Model) map[int64]float64 {
	totals := make(map[int64]float64)
	for _, row := range model.Matrix {
		for productID, quantity := range row {
			totals[productID] += quantity
		}
	}
	return totals
}
