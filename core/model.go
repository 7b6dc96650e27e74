package core

import mapset "github.com/deckarep/golang-set/v2"

// Model 是一次训练产出的完整模型快照。
//
// 设计原则：
//   - 训练在旁路构建一个全新 Model，构建完成后整体发布（原子交换）
//   - 发布之后不可变：打分路径只读，不做任何修改
//   - 读者要么看到完整的旧模型，要么看到完整的新模型，绝不混合
type Model struct {
	// Products 是训练期间观察到的全部商品 ID 集合。
	Products mapset.Set[int64]

	// Histories 是每个用户的购买历史（按订单分桶）。
	Histories UserHistory

	// Matrix 是用户×商品累计购买量矩阵，由 Histories 归约而来。
	Matrix BuyingMatrix
}

// UserRow 返回指定用户的矩阵行。用户不存在时返回 (nil, false)。
func (m *Model) UserRow(userID int64) (map[int64]float64, bool) {
	row, ok := m.Matrix[userID]
	return row, ok
}

// EachPurchaseSet 遍历全部用户的全部 PurchaseSet（与订单共现类算法配套）。
func (m *Model) EachPurchaseSet(fn func(ps *PurchaseSet)) {
	for _, orders := range m.Histories {
		for _, ps := range orders {
			fn(ps)
		}
	}
}
