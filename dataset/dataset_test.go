package dataset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/shoprec/core"
)

func TestAggregate(t *testing.T) {
	items := []core.OrderItem{
		{OrderID: 1, ProductID: 101, Quantity: 2},
		{OrderID: 1, ProductID: 101, Quantity: 3}, // 同订单同商品，数量累加
		{OrderID: 1, ProductID: 102, Quantity: 1},
		{OrderID: 2, ProductID: 102, Quantity: 4},
	}

	sets, products, err := Aggregate(items, true)
	require.NoError(t, err)

	require.Len(t, sets, 2)
	assert.Equal(t, int64(5), sets[1].Items[101])
	assert.Equal(t, int64(1), sets[1].Items[102])
	assert.Equal(t, int64(4), sets[2].Items[102])
	assert.Equal(t, int64(1), sets[1].OrderID)

	assert.Equal(t, 2, products.Cardinality())
	assert.True(t, products.Contains(101))
	assert.True(t, products.Contains(102))
}

func TestAggregateCommutative(t *testing.T) {
	items := []core.OrderItem{
		{OrderID: 1, ProductID: 101, Quantity: 2},
		{OrderID: 1, ProductID: 101, Quantity: 3},
		{OrderID: 1, ProductID: 102, Quantity: 1},
		{OrderID: 2, ProductID: 101, Quantity: 7},
		{OrderID: 3, ProductID: 103, Quantity: 1},
		{OrderID: 3, ProductID: 103, Quantity: 1},
	}
	orders := []core.OrderMeta{
		{OrderID: 1, UserID: 10},
		{OrderID: 2, UserID: 10},
		{OrderID: 3, UserID: 20},
	}

	build := func(in []core.OrderItem) core.BuyingMatrix {
		sets, _, err := Aggregate(in, true)
		require.NoError(t, err)
		history, _ := AttachUsers(sets, orders)
		return BuildMatrix(history)
	}

	want := build(items)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]core.OrderItem, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, build(shuffled))
	}
}

func TestAggregateStrictQuantity(t *testing.T) {
	tests := []struct {
		name    string
		items   []core.OrderItem
		strict  bool
		wantErr bool
	}{
		{
			name:    "negative quantity rejected",
			items:   []core.OrderItem{{OrderID: 1, ProductID: 101, Quantity: -1}},
			strict:  true,
			wantErr: true,
		},
		{
			name:    "zero quantity rejected",
			items:   []core.OrderItem{{OrderID: 1, ProductID: 101, Quantity: 0}},
			strict:  true,
			wantErr: true,
		},
		{
			name:    "negative quantity passed through in lenient mode",
			items:   []core.OrderItem{{OrderID: 1, ProductID: 101, Quantity: -1}},
			strict:  false,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Aggregate(tt.items, tt.strict)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, core.IsInvalidInput(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAttachUsers(t *testing.T) {
	sets, _, err := Aggregate([]core.OrderItem{
		{OrderID: 1, ProductID: 101, Quantity: 1},
		{OrderID: 2, ProductID: 102, Quantity: 1},
		{OrderID: 3, ProductID: 103, Quantity: 1}, // 没有元信息的孤儿订单
	}, true)
	require.NoError(t, err)

	history, orphans := AttachUsers(sets, []core.OrderMeta{
		{OrderID: 1, UserID: 10},
		{OrderID: 2, UserID: 10},
	})

	assert.Equal(t, 1, orphans)
	require.Len(t, history, 1)
	require.Len(t, history[10], 2)

	// 不变式：桶里每个 PurchaseSet 的 UserID 等于桶的 key
	for orderID, ps := range history[10] {
		assert.Equal(t, int64(10), ps.UserID)
		assert.Equal(t, orderID, ps.OrderID)
	}
}

func TestBuildMatrix(t *testing.T) {
	// 场景：orders=[{1,10}], items=[{1,A,2},{1,A,3},{1,B,1}] → matrix[10] == {A:5, B:1}
	sets, _, err := Aggregate([]core.OrderItem{
		{OrderID: 1, ProductID: 101, Quantity: 2},
		{OrderID: 1, ProductID: 101, Quantity: 3},
		{OrderID: 1, ProductID: 102, Quantity: 1},
	}, true)
	require.NoError(t, err)

	history, orphans := AttachUsers(sets, []core.OrderMeta{{OrderID: 1, UserID: 10}})
	require.Zero(t, orphans)

	matrix := BuildMatrix(history)
	require.Len(t, matrix, 1)
	assert.Equal(t, map[int64]float64{101: 5, 102: 1}, matrix[10])

	// 缺失单元格表示从未购买，而不是存零
	_, ok := matrix[10][103]
	assert.False(t, ok)
}

func TestBuildMatrixAccumulatesAcrossOrders(t *testing.T) {
	sets, _, err := Aggregate([]core.OrderItem{
		{OrderID: 1, ProductID: 101, Quantity: 2},
		{OrderID: 2, ProductID: 101, Quantity: 3},
		{OrderID: 2, ProductID: 102, Quantity: 1},
	}, true)
	require.NoError(t, err)

	history, _ := AttachUsers(sets, []core.OrderMeta{
		{OrderID: 1, UserID: 10},
		{OrderID: 2, UserID: 10},
	})
	matrix := BuildMatrix(history)

	// 不变式：单元格等于该用户全部订单中该商品数量之和
	assert.Equal(t, map[int64]float64{101: 5, 102: 1}, matrix[10])
}
