package filter

import (
	"context"

	"github.com/rushteam/shoprec/core"
)

// CartFilter 是购物车过滤器：剔除当前购物车中已经存在的商品。
// 所有打分变体共用同一条排除规则，所以这一步只在这里实现一次。
type CartFilter struct{}

func (f *CartFilter) Name() string {
	return "filter.cart"
}

func (f *CartFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}
	return rctx.InCart(item.ID), nil
}
