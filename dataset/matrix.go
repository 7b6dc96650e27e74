package dataset

import "github.com/rushteam/shoprec/core"

// BuildMatrix 把每个用户的全部 PurchaseSet 归约为购买矩阵的一行：
// 单元格是该用户对该商品的历史累计购买量。
//
// 不变式：matrix[user][product] == 该用户所有 PurchaseSet 中该商品数量之和；
// 缺失单元格表示从未购买。
// UserHistory 此时已不可变，本函数是纯函数，无副作用。
func BuildMatrix(history core.UserHistory) core.BuyingMatrix {
	matrix := make(core.BuyingMatrix, len(history))

	for userID, orders := range history {
		row := make(map[int64]float64)
		for _, ps := range orders {
			for productID, quantity := range ps.Items {
				row[productID] += float64(quantity)
			}
		}
		matrix[userID] = row
	}

	return matrix
}
