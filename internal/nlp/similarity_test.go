package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/config"
)

// TestCosineSimilarity 验证余弦相似度的基本性质
func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"相同向量", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"正交向量", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"相反向量", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"零向量", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"维度不一致", []float64{1, 2}, []float64{1, 2, 3}, 0.0},
		{"空向量", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineSimilarity(tt.a, tt.b), 1e-9, "余弦相似度计算结果与预期不符")
		})
	}
}

// TestEmbeddingSimilarityAgainstMockServer 验证完整的embed+cosine流程
func TestEmbeddingSimilarityAgainstMockServer(t *testing.T) {
	// 模拟OpenAI兼容的embedding endpoint，对两段文本返回固定向量
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method, "embedding请求应为POST")
		require.Contains(t, r.Header.Get("Authorization"), "Bearer ", "应携带Bearer鉴权头")

		resp := AliyunOpenAIEmbeddingResponse{
			Object: "list",
			Data: []AliyunOpenAIDataEntry{
				{Object: "embedding", Embedding: []float64{1, 0, 0}, Index: 0},
				{Object: "embedding", Embedding: []float64{0.6, 0.8, 0}, Index: 1},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	embedder, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err, "创建Embedder不应失败")

	sim, err := NewEmbeddingSimilarity(embedder)
	require.NoError(t, err)

	score, err := sim.Similarity(context.Background(), "resume text", "jd text")
	require.NoError(t, err, "相似度计算不应失败")
	// (1,0,0)·(0.6,0.8,0) = 0.6
	assert.InDelta(t, 0.6, score, 1e-9, "余弦相似度应为0.6")
}

// TestAliyunEmbedderEmptyInput 空输入应直接返回空结果而不发起请求
func TestAliyunEmbedderEmptyInput(t *testing.T) {
	embedder, err := NewAliyunEmbedder("test-key", config.EmbeddingConfig{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	vectors, err := embedder.EmbedStrings(context.Background(), nil)
	require.NoError(t, err, "空输入不应报错")
	assert.Empty(t, vectors, "空输入应返回空向量列表")
}
