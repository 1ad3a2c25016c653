package processor

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

// stubExtractor 返回预设文本的PDF提取器
type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return s.text, map[string]interface{}{"page_count": 1}, nil
}

func (s *stubExtractor) ExtractFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	return s.ExtractFromFile(ctx, uri)
}

func (s *stubExtractor) ExtractFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	return s.ExtractFromFile(ctx, uri)
}

// memoryCache 进程内备忘实现, 用于验证缓存路径
type memoryCache struct {
	mu    sync.Mutex
	store map[string]*types.ParseResult
	gets  int
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{store: make(map[string]*types.ParseResult)}
}

func (m *memoryCache) Get(ctx context.Context, fingerprint string) (*types.ParseResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	r, ok := m.store[fingerprint]
	return r, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, fingerprint string, result *types.ParseResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.store[fingerprint] = result
	return nil
}

func writeTempPDF(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

const sampleResumeText = `John Doe
Software Engineer
john.doe@email.com

EXPERIENCE
Senior Engineer | Acme Corp | 2019-2022
Built the billing platform

SKILLS
Python, SQL, AWS
`

func TestParseFilePipeline(t *testing.T) {
	path := writeTempPDF(t, "resume.pdf", 128)
	p := NewResumeProcessor(WithPDFExtractor(&stubExtractor{text: sampleResumeText}))

	result, err := p.ParseFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", result.Resume.PersonalInfo.Name, "姓名来自开头行启发式")
	assert.Equal(t, "john.doe@email.com", result.Resume.PersonalInfo.Email)
	require.NotEmpty(t, result.Resume.Experience)
	assert.Equal(t, "Acme Corp", result.Resume.Experience[0].Company)
	assert.Contains(t, result.Resume.Skills, "Python")
	assert.Contains(t, result.Metadata.SectionsFound, types.SectionSkills)
	assert.Equal(t, 1, result.Metadata.PageCount)
	assert.Equal(t, "resume.pdf", result.Metadata.SourceFile)
	assert.False(t, result.Metadata.FromCache)
}

func TestParseFileValidation(t *testing.T) {
	p := NewResumeProcessor(WithPDFExtractor(&stubExtractor{text: "x"}), WithMaxFileSizeMB(1))

	_, err := p.ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err, "不存在的文件应立即报错")

	notPDF := writeTempPDF(t, "resume.docx", 16)
	_, err = p.ParseFile(context.Background(), notPDF)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "仅支持PDF")

	tooBig := writeTempPDF(t, "big.pdf", 2*1024*1024)
	_, err = p.ParseFile(context.Background(), tooBig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "文件过大")
}

func TestParseTextMemoization(t *testing.T) {
	cache := newMemoryCache()
	p := NewResumeProcessor(WithParseCache(cache))

	first, err := p.ParseText(context.Background(), sampleResumeText, "a.pdf")
	require.NoError(t, err)
	assert.False(t, first.Metadata.FromCache)
	assert.Equal(t, 1, cache.sets)

	second, err := p.ParseText(context.Background(), sampleResumeText, "b.pdf")
	require.NoError(t, err)
	assert.True(t, second.Metadata.FromCache, "相同内容应命中备忘层")
	assert.Equal(t, 1, cache.sets, "命中后不应重复写入")
	assert.Equal(t, first.Resume, second.Resume)
}

// TestParseTextNopCacheDefault 默认备忘实现永不命中但不影响解析
func TestParseTextNopCacheDefault(t *testing.T) {
	p := NewResumeProcessor()

	for i := 0; i < 2; i++ {
		result, err := p.ParseText(context.Background(), sampleResumeText, "a.pdf")
		require.NoError(t, err)
		assert.False(t, result.Metadata.FromCache)
	}
}

func TestParseBatchIsolatesFailures(t *testing.T) {
	good := writeTempPDF(t, "good.pdf", 64)
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	p := NewResumeProcessor(
		WithPDFExtractor(&stubExtractor{text: sampleResumeText}),
		WithBatchConcurrency(2),
	)

	batch := p.ParseBatch(context.Background(), []string{good, missing})

	assert.Equal(t, 2, batch.Summary.TotalFiles)
	assert.Equal(t, 1, batch.Summary.Successful)
	assert.Equal(t, 1, batch.Summary.Failed)
	assert.Contains(t, batch.Results, good)
	assert.Contains(t, batch.Errors, missing)
}

func TestParseBatchExtractorError(t *testing.T) {
	path := writeTempPDF(t, "broken.pdf", 64)
	p := NewResumeProcessor(WithPDFExtractor(&stubExtractor{err: errors.New("corrupt stream")}))

	batch := p.ParseBatch(context.Background(), []string{path})

	assert.Zero(t, batch.Summary.Successful)
	assert.Contains(t, batch.Errors[path], "corrupt stream")
}

func TestFingerprintStable(t *testing.T) {
	assert.Equal(t, Fingerprint("hello"), Fingerprint("hello"))
	assert.NotEqual(t, Fingerprint("hello"), Fingerprint("hello "))
	assert.Len(t, Fingerprint(strings.Repeat("x", 1000)), 32, "MD5十六进制指纹长度固定")
}
