package core

// AnonymousUser 表示请求没有可识别的用户（匿名会话）。
const AnonymousUser int64 = 0

// RecommendContext 承载一次推荐请求的用户/购物车/场景信息，贯穿打分与过滤全程。
// 显式作为参数传递，不依赖任何 ambient/全局状态，便于测试。
type RecommendContext struct {
	// UserID 是目标用户；AnonymousUser(0) 表示匿名，
	// 个性化变体此时需要退化为与用户无关的策略。
	UserID int64

	// Cart 是当前购物车内容。推荐结果必须排除其中出现过的商品。
	Cart []CartItem

	// Params 请求级上下文参数，可供 CEL 规则等策略读取。
	Params map[string]any
}

// HasUser 判断请求是否带有可识别用户。
func (rctx *RecommendContext) HasUser() bool {
	return rctx.UserID != AnonymousUser
}

// CartProductIDs 返回购物车内全部商品 ID（保持输入顺序，可能含重复）。
func (rctx *RecommendContext) CartProductIDs() []int64 {
	ids := make([]int64, 0, len(rctx.Cart))
	for _, it := range rctx.Cart {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// InCart 判断商品是否已在购物车中。
func (rctx *RecommendContext) InCart(productID int64) bool {
	for _, it := range rctx.Cart {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
