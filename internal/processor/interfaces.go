package processor

import (
	"context"
	"io"

	"resume-match-go/internal/types"
)

// PDFExtractor PDF文本提取能力, 实现方对不可读文件返回可区分的错误
type PDFExtractor interface {
	// ExtractFromFile 从PDF文件提取文本和元数据
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)

	// ExtractFromBytes 从字节流提取文本和元数据
	ExtractFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error)

	// ExtractFromReader 从io.Reader提取文本和元数据
	ExtractFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error)
}

// ParseCache 解析结果的备忘层, 以文档内容指纹为键
// Get未命中时返回(nil, false, nil), 缓存故障不应阻断解析流程
type ParseCache interface {
	Get(ctx context.Context, fingerprint string) (*types.ParseResult, bool, error)
	Set(ctx context.Context, fingerprint string, result *types.ParseResult) error
}

// NopParseCache 默认的空备忘实现: 永不命中, 写入直接丢弃
type NopParseCache struct{}

func (NopParseCache) Get(ctx context.Context, fingerprint string) (*types.ParseResult, bool, error) {
	return nil, false, nil
}

func (NopParseCache) Set(ctx context.Context, fingerprint string, result *types.ParseResult) error {
	return nil
}
