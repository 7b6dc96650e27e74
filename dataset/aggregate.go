// Package dataset 负责训练数据变换：订单行记录 → 订单内容聚合 → 用户购买历史 → 购买矩阵。
// 三步都是纯函数式的批量变换，产出只在训练旁路构建，构建完成后只读。
package dataset

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/rushteam/shoprec/core"
)

// Aggregate 把平铺的订单行记录折叠为每订单一个 PurchaseSet，
// 同时收集训练期间出现过的全部商品 ID。
//
// 规则：
//   - 同一订单同一商品出现多次时数量累加而非覆盖
//   - 数量累加满足交换律/结合律，结果与输入顺序无关
//   - strict 为 true 时，数量 <= 0 的记录直接拒绝（INVALID_INPUT），
//     不产生任何部分结果；为 false 时沿用原始行为直接透传
func Aggregate(orderItems []core.OrderItem, strict bool) (map[int64]*core.PurchaseSet, mapset.Set[int64], error) {
	purchaseSets := make(map[int64]*core.PurchaseSet)
	products := mapset.NewThreadUnsafeSet[int64]()

	for _, item := range orderItems {
		if strict && item.Quantity <= 0 {
			return nil, nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: order %d product %d has non-positive quantity %d",
					item.OrderID, item.ProductID, item.Quantity))
		}

		ps, ok := purchaseSets[item.OrderID]
		if !ok {
			ps = core.NewPurchaseSet(item.OrderID)
			purchaseSets[item.OrderID] = ps
		}
		ps.Add(item.ProductID, item.Quantity)
		products.Add(item.ProductID)
	}

	return purchaseSets, products, nil
}
