package core

// Item 是推荐链路中的候选承载结构：商品 ID 加打分变体给出的分数。
// 打分产出 ScoreMap 后转为 []*Item 进入过滤/排序/截断链。
type Item struct {
	ID    int64
	Score float64
}

// ItemsFromScores 把 ScoreMap 展开为候选列表。顺序不保证，由下游排序节点决定。
func ItemsFromScores(scores map[int64]float64) []*Item {
	out := make([]*Item, 0, len(scores))
	for id, score := range scores {
		out = append(out, &Item{ID: id, Score: score})
	}
	return out
}
