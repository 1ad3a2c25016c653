package nlp

import (
	"context"
	"fmt"
	"math"

	"github.com/cloudwego/eino/components/embedding"
)

// CosineSimilarity 计算两个向量的余弦相似度
// 任一向量为零向量或维度不一致时返回0
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EmbeddingSimilarity 基于Embedder实现SimilarityProvider
type EmbeddingSimilarity struct {
	embedder embedding.Embedder
}

// NewEmbeddingSimilarity 创建基于句向量的相似度计算器
func NewEmbeddingSimilarity(embedder embedding.Embedder) (*EmbeddingSimilarity, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder不能为nil")
	}
	return &EmbeddingSimilarity{embedder: embedder}, nil
}

// Similarity 对两段文本各取一次句向量并计算余弦相似度
func (s *EmbeddingSimilarity) Similarity(ctx context.Context, a, b string) (float64, error) {
	vectors, err := s.embedder.EmbedStrings(ctx, []string{a, b})
	if err != nil {
		return 0, fmt.Errorf("获取句向量失败: %w", err)
	}
	if len(vectors) < 2 {
		return 0, fmt.Errorf("句向量数量不足: 期望2个, 实际%d个", len(vectors))
	}
	return CosineSimilarity(vectors[0], vectors[1]), nil
}
