package core

// PurchaseSet 是一个历史订单聚合后的内容：商品 ID → 累计数量。
//
// 身份语义：两个 PurchaseSet 表示同一订单当且仅当 OrderID 相同。
// 聚合阶段保证每个 OrderID 只会创建一个实例，之后按用户归桶时
// 不会被错误去重或错误拆分。
//
// 生命周期：聚合时创建并填充 Items；归桶时 UserID 被赋值一次；
// 此后只读。
type PurchaseSet struct {
	OrderID int64
	UserID  int64
	Items   map[int64]int64
}

func NewPurchaseSet(orderID int64) *PurchaseSet {
	return &PurchaseSet{
		OrderID: orderID,
		Items:   make(map[int64]int64),
	}
}

// Add 向订单内容累加一条商品数量。同一订单内同一商品出现多次时数量累加而非覆盖。
func (ps *PurchaseSet) Add(productID, quantity int64) {
	ps.Items[productID] += quantity
}

// Contains 判断订单内容是否包含指定商品。
func (ps *PurchaseSet) Contains(productID int64) bool {
	_, ok := ps.Items[productID]
	return ok
}

// UserHistory 是用户购买历史：userID → (orderID → PurchaseSet)。
// 内层按 OrderID 作 key，天然承载"按订单身份构成集合"的语义。
// 不变式：内层每个 PurchaseSet 的 UserID 都等于外层 key。
type UserHistory map[int64]map[int64]*PurchaseSet

// BuyingMatrix 是用户×商品的累计购买量矩阵：userID → (productID → 数量)。
// 缺失的单元格表示从未购买（语义为零，而不是存一个零）。
type BuyingMatrix map[int64]map[int64]float64
