package recommender

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

func init() {
	Register(OrderBased, func(model *core.Model) Recommender {
		return &OrderBasedRecommender{model: model}
	})
}

// OrderBasedRecommender 按订单内共现打分："和购物车里的商品出现在
// 同一笔历史订单里的商品，值得推荐"。
//
// 分数定义：score[p] = Σ_历史订单 |订单 ∩ 购物车|，对包含 p 的每笔订单累加。
// 同一笔订单与购物车重叠越多，其中其它商品的权重越高。
//
// 只依赖历史订单内容，与请求用户无关，匿名请求天然可用。
type OrderBasedRecommender struct {
	model *core.Model
}

func (r *OrderBasedRecommender) Name() string {
	return "recommender.order_based"
}

func (r *OrderBasedRecommender) Score(
	_ context.Context,
	rctx *core.RecommendContext,
) (map[int64]float64, error) {
	if rctx == nil || len(rctx.Cart) == 0 {
		return map[int64]float64{}, nil
	}

	inCart := make(map[int64]struct{}, len(rctx.Cart))
	for _, it := range rctx.Cart {
		inCart[it.ProductID] = struct{}{}
	}

	scores := make(map[int64]float64)
	r.model.EachPurchaseSet(func(ps *core.PurchaseSet) {
		overlap := 0
		for productID := range ps.Items {
			if _, ok := inCart[productID]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			return
		}
		for productID := range ps.Items {
			if _, ok := inCart[productID]; ok {
				continue
			}
			scores[productID] += float64(overlap)
		}
	})

	return scores, nil
}
