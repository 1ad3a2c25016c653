package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"

	"resume-match-go/internal/logger"
)

const pdfExtractTimeout = 30 * time.Second

// EinoPDFTextExtractor 使用 Eino PDF Parser 提取简历文本
type EinoPDFTextExtractor struct {
	parser *pdf.PDFParser
}

// NewEinoPDFTextExtractor 初始化 Eino PDF 文本提取器
// 配置为不按页面分割, 整份文档作为连续文本返回
func NewEinoPDFTextExtractor(ctx context.Context) (*EinoPDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}
	return &EinoPDFTextExtractor{parser: p}, nil
}

// ExtractFromFile 从PDF文件提取纯文本和解析元数据
// 文件不可读或解析无结果时返回可区分的错误
func (e *EinoPDFTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("打开PDF文件失败 %s: %w", filePath, err)
	}
	defer file.Close()

	extraMeta := map[string]interface{}{
		"source_file_path": filePath,
		"extraction_time":  time.Now().Format(time.RFC3339),
	}
	return e.ExtractFromReader(ctx, file, filePath, extraMeta)
}

// ExtractFromBytes 从内存中的PDF字节流提取文本, 供上传接口直接使用
func (e *EinoPDFTextExtractor) ExtractFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	return e.ExtractFromReader(ctx, bytes.NewReader(data), uri, nil)
}

// ExtractFromReader 从 io.Reader 中提取文本
func (e *EinoPDFTextExtractor) ExtractFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	if extraMeta == nil {
		extraMeta = make(map[string]interface{})
	}

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(ctx, pdfExtractTimeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader,
		einoParser.WithURI(uri),
		einoParser.WithExtraMeta(extraMeta),
	)
	duration := time.Since(startTime)
	if err != nil {
		return "", extraMeta, fmt.Errorf("PDF解析失败 %s: %w", uri, err)
	}
	if len(docs) == 0 {
		return "", extraMeta, fmt.Errorf("PDF解析无结果: %s", uri)
	}

	// 合并所有文档内容, 分页符交给清洗阶段剔除
	var fullContent string
	for i, doc := range docs {
		fullContent += doc.Content
		if i < len(docs)-1 {
			fullContent += "\n\n--- Page Break (inferred) ---\n\n"
		}
	}

	metadata := make(map[string]interface{})
	if docs[0].MetaData != nil {
		metadata = docs[0].MetaData
	}
	for k, v := range extraMeta {
		metadata[k] = v
	}
	metadata["page_count"] = len(docs)
	metadata["processing_duration_ms"] = duration.Milliseconds()
	metadata["text_length"] = len(fullContent)

	logger.Ctx(ctx).Debug().
		Str("uri", uri).
		Int("chars", len(fullContent)).
		Dur("duration", duration).
		Msg("PDF文本提取完成")

	return fullContent, metadata, nil
}
