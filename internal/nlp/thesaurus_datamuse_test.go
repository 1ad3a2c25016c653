package nlp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/config"
)

// TestDatamuseSynonyms 验证同义词查询的请求参数与响应解析
func TestDatamuseSynonyms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words", r.URL.Path, "请求路径应为/words")
		assert.Equal(t, "javascript", r.URL.Query().Get("rel_syn"), "rel_syn参数与预期不符")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"word":"js","score":100},{"word":"ecmascript","score":90}]`))
	}))
	defer server.Close()

	thesaurus, err := NewDatamuseThesaurus(config.ThesaurusConfig{BaseURL: server.URL})
	require.NoError(t, err)

	synonyms, err := thesaurus.Synonyms(context.Background(), "javascript")
	require.NoError(t, err, "同义词查询不应失败")
	assert.Equal(t, []string{"js", "ecmascript"}, synonyms, "同义词列表与预期不符")
}

// TestDatamuseSynonymsEmptyWord 空词直接返回空结果
func TestDatamuseSynonymsEmptyWord(t *testing.T) {
	thesaurus, err := NewDatamuseThesaurus(config.ThesaurusConfig{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	synonyms, err := thesaurus.Synonyms(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, synonyms, "空词应返回空同义词列表")
}
