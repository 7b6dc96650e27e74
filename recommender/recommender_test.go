package recommender

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/shoprec/core"
	"github.com/rushteam/shoprec/dataset"
)

// buildModel 用订单数据走一遍真实的训练数据变换，产出测试模型。
func buildModel(t *testing.T, items []core.OrderItem, orders []core.OrderMeta) *core.Model {
	t.Helper()
	sets, products, err := dataset.Aggregate(items, true)
	require.NoError(t, err)
	history, _ := dataset.AttachUsers(sets, orders)
	return &core.Model{
		Products:  products,
		Histories: history,
		Matrix:    dataset.BuildMatrix(history),
	}
}

// slopeOneModel 的购买矩阵：
//
//	u1: A=1 B=2
//	u2: A=2 B=4 C=6
//	u3: A=3 C=3
func slopeOneModel(t *testing.T) *core.Model {
	return buildModel(t,
		[]core.OrderItem{
			{OrderID: 11, ProductID: 101, Quantity: 1},
			{OrderID: 11, ProductID: 102, Quantity: 2},
			{OrderID: 12, ProductID: 101, Quantity: 2},
			{OrderID: 12, ProductID: 102, Quantity: 4},
			{OrderID: 12, ProductID: 103, Quantity: 6},
			{OrderID: 13, ProductID: 101, Quantity: 3},
			{OrderID: 13, ProductID: 103, Quantity: 3},
		},
		[]core.OrderMeta{
			{OrderID: 11, UserID: 1},
			{OrderID: 12, UserID: 2},
			{OrderID: 13, UserID: 3},
		},
	)
}

func TestParseAlgorithm(t *testing.T) {
	for _, algo := range []Algorithm{Popularity, SlopeOne, PreprocessedSlopeOne, OrderBased} {
		got, err := ParseAlgorithm(string(algo))
		require.NoError(t, err)
		assert.Equal(t, algo, got)
	}

	_, err := ParseAlgorithm("does_not_exist")
	require.Error(t, err)
	assert.True(t, core.IsInvalidInput(err))
}

func TestBuildAllCoversRegisteredAlgorithms(t *testing.T) {
	model := slopeOneModel(t)
	recs := BuildAll(model)
	for _, algo := range Algorithms() {
		require.Contains(t, recs, algo)
		assert.NotEmpty(t, recs[algo].Name())
	}
}

func TestPopularityScores(t *testing.T) {
	model := slopeOneModel(t)
	rec := &PopularityRecommender{model: model}

	scores, err := rec.Score(context.Background(), &core.RecommendContext{UserID: 1})
	require.NoError(t, err)

	// A: 1+2+3, B: 2+4, C: 6+3
	assert.Equal(t, map[int64]float64{101: 6, 102: 6, 103: 9}, scores)

	// 与用户无关：匿名请求产出相同分数
	anon, err := rec.Score(context.Background(), &core.RecommendContext{})
	require.NoError(t, err)
	assert.Equal(t, scores, anon)
}

func TestSlopeOneScore(t *testing.T) {
	model := slopeOneModel(t)
	rec := &SlopeOneRecommender{model: model}

	scores, err := rec.Score(context.Background(), &core.RecommendContext{
		UserID: 1,
		Cart:   []core.CartItem{{ProductID: 101, Quantity: 1}},
	})
	require.NoError(t, err)

	// 唯一候选是 C：
	// dev(C,A) = ((6-2)+(3-3))/2 = 2, card 2
	// dev(C,B) = (6-4)/1 = 2, card 1
	// p = ((2+1)*2 + (2+2)*1) / 3 = 10/3
	require.Len(t, scores, 1)
	assert.InDelta(t, 10.0/3.0, scores[103], 1e-9)
}

func TestSlopeOneAnonymousFallsBackToPopularity(t *testing.T) {
	model := slopeOneModel(t)
	rec := &SlopeOneRecommender{model: model}

	scores, err := rec.Score(context.Background(), &core.RecommendContext{UserID: core.AnonymousUser})
	require.NoError(t, err)
	assert.Equal(t, popularityScores(model), scores)

	// 未知用户同样退化
	scores, err = rec.Score(context.Background(), &core.RecommendContext{UserID: 999})
	require.NoError(t, err)
	assert.Equal(t, popularityScores(model), scores)
}

func TestPreprocessedSlopeOneMatchesRaw(t *testing.T) {
	model := slopeOneModel(t)

	raw := &SlopeOneRecommender{model: model}
	pre := &PreprocessedSlopeOneRecommender{model: model}
	require.NoError(t, pre.Preprocess(context.Background()))

	for _, userID := range []int64{1, 2, 3, 999, core.AnonymousUser} {
		rctx := &core.RecommendContext{
			UserID: userID,
			Cart:   []core.CartItem{{ProductID: 101, Quantity: 1}},
		}
		rawScores, err := raw.Score(context.Background(), rctx)
		require.NoError(t, err)
		preScores, err := pre.Score(context.Background(), rctx)
		require.NoError(t, err)

		require.Len(t, preScores, len(rawScores), "user %d", userID)
		for id, want := range rawScores {
			assert.InDelta(t, want, preScores[id], 1e-9, "user %d product %d", userID, id)
		}
	}
}

func TestOrderBasedScore(t *testing.T) {
	// 订单：o1={A,B} o2={A,C} o3={B,C,D}
	model := buildModel(t,
		[]core.OrderItem{
			{OrderID: 1, ProductID: 101, Quantity: 1},
			{OrderID: 1, ProductID: 102, Quantity: 1},
			{OrderID: 2, ProductID: 101, Quantity: 1},
			{OrderID: 2, ProductID: 103, Quantity: 1},
			{OrderID: 3, ProductID: 102, Quantity: 1},
			{OrderID: 3, ProductID: 103, Quantity: 1},
			{OrderID: 3, ProductID: 104, Quantity: 1},
		},
		[]core.OrderMeta{
			{OrderID: 1, UserID: 1},
			{OrderID: 2, UserID: 2},
			{OrderID: 3, UserID: 3},
		},
	)
	rec := &OrderBasedRecommender{model: model}

	scores, err := rec.Score(context.Background(), &core.RecommendContext{
		Cart: []core.CartItem{{ProductID: 101, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[int64]float64{102: 1, 103: 1}, scores)

	// 与订单重叠越多权重越高；购物车商品本身不计分
	scores, err = rec.Score(context.Background(), &core.RecommendContext{
		Cart: []core.CartItem{{ProductID: 101, Quantity: 1}, {ProductID: 102, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[int64]float64{103: 2, 104: 1}, scores)
}

func TestScoreDoesNotMutateModel(t *testing.T) {
	model := slopeOneModel(t)
	wantMatrix := map[int64]float64{101: 1, 102: 2}

	for _, rec := range BuildAll(model) {
		if p, ok := rec.(Preprocessor); ok {
			require.NoError(t, p.Preprocess(context.Background()))
		}
		_, err := rec.Score(context.Background(), &core.RecommendContext{
			UserID: 1,
			Cart:   []core.CartItem{{ProductID: 101, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	assert.Equal(t, wantMatrix, model.Matrix[1])
	assert.Equal(t, 3, model.Products.Cardinality())
}
