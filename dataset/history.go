package dataset

import "github.com/rushteam/shoprec/core"

// AttachUsers 把聚合后的 PurchaseSet 按订单元信息归属到用户，产出 UserHistory。
//
// 规则：
//   - 订单元信息按 OrderID 建索引，O(1) 查找
//   - 每个 PurchaseSet 的 UserID 恰好被赋值一次，之后只读
//   - 找不到元信息的订单（孤儿订单）从模型中丢弃，丢弃数量作为第二返回值
//     交给上层记录，训练本身不因此失败
func AttachUsers(purchaseSets map[int64]*core.PurchaseSet, orders []core.OrderMeta) (core.UserHistory, int) {
	byOrder := make(map[int64]int64, len(orders))
	for _, o := range orders {
		byOrder[o.OrderID] = o.UserID
	}

	history := make(core.UserHistory)
	orphans := 0

	for orderID, ps := range purchaseSets {
		userID, ok := byOrder[orderID]
		if !ok {
			orphans++
			continue
		}
		ps.UserID = userID

		bucket, ok := history[userID]
		if !ok {
			bucket = make(map[int64]*core.PurchaseSet)
			history[userID] = bucket
		}
		bucket[orderID] = ps
	}

	return history, orphans
}
