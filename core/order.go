package core

// OrderItem 是一条历史订单行记录：某个订单中购买了某个商品若干件。
// 训练数据以 OrderItem 列表的形式整批传入，不支持增量喂入。
type OrderItem struct {
	OrderID   int64 `json:"order_id" yaml:"order_id"`
	ProductID int64 `json:"product_id" yaml:"product_id"`
	Quantity  int64 `json:"quantity" yaml:"quantity"`
}

// OrderMeta 是订单元信息：订单与下单用户的归属关系。
type OrderMeta struct {
	OrderID int64 `json:"order_id" yaml:"order_id"`
	UserID  int64 `json:"user_id" yaml:"user_id"`
}

// CartItem 是请求时购物车中的一项。
// Quantity 目前只作为上下文信号透传，打分变体可以选择使用或忽略。
type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}
