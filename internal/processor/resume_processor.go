package processor

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"
)

// Option 处理器选项函数
type Option func(*ResumeProcessor)

// WithPDFExtractor 注入PDF提取器
func WithPDFExtractor(extractor PDFExtractor) Option {
	return func(p *ResumeProcessor) {
		p.pdfExtractor = extractor
	}
}

// WithParseCache 注入解析结果备忘层
func WithParseCache(cache ParseCache) Option {
	return func(p *ResumeProcessor) {
		p.cache = cache
	}
}

// WithCleaner 注入文本清洗器
func WithCleaner(cleaner *parser.TextCleaner) Option {
	return func(p *ResumeProcessor) {
		p.cleaner = cleaner
	}
}

// WithEntityExtractor 注入实体抽取器
func WithEntityExtractor(extractor *parser.EntityExtractor) Option {
	return func(p *ResumeProcessor) {
		p.entityExtractor = extractor
	}
}

// WithMaxFileSizeMB 设置允许的最大文件大小
func WithMaxFileSizeMB(mb int) Option {
	return func(p *ResumeProcessor) {
		if mb > 0 {
			p.maxFileSizeMB = mb
		}
	}
}

// WithBatchConcurrency 设置批量解析的并发度
func WithBatchConcurrency(n int) Option {
	return func(p *ResumeProcessor) {
		if n > 0 {
			p.batchConcurrency = n
		}
	}
}

// ResumeProcessor 简历解析流水线: 提取 -> 清洗 -> 切分 -> 实体抽取
// 组件构造后只读, 多个goroutine可并发调用Parse
type ResumeProcessor struct {
	pdfExtractor    PDFExtractor
	cleaner         *parser.TextCleaner
	entityExtractor *parser.EntityExtractor
	cache           ParseCache

	maxFileSizeMB    int
	batchConcurrency int
}

// NewResumeProcessor 构建处理器, 未注入的组件使用默认实现
func NewResumeProcessor(opts ...Option) *ResumeProcessor {
	p := &ResumeProcessor{
		cleaner:          parser.NewTextCleaner(false),
		entityExtractor:  parser.NewEntityExtractor(nil, nil),
		cache:            NopParseCache{},
		maxFileSizeMB:    10,
		batchConcurrency: 4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile 解析单个PDF简历文件
// 输入错误立即返回; 解析子步骤的降级在各组件内部处理
func (p *ResumeProcessor) ParseFile(ctx context.Context, filePath string) (*types.ParseResult, error) {
	startTime := time.Now()

	if err := p.validateInput(filePath); err != nil {
		return nil, err
	}

	if p.pdfExtractor == nil {
		return nil, fmt.Errorf("未配置PDF提取器")
	}

	text, meta, err := p.pdfExtractor.ExtractFromFile(ctx, filePath)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("file", filePath).Msg("PDF文本提取失败")
		return nil, fmt.Errorf("提取PDF文本失败: %w", err)
	}

	result, err := p.ParseText(ctx, text, filePath)
	if err != nil {
		return nil, err
	}

	if pageCount, ok := meta["page_count"].(int); ok {
		result.Metadata.PageCount = pageCount
	}
	result.Metadata.SourceFile = filepath.Base(filePath)
	result.Metadata.ProcessingTimeMS = time.Since(startTime).Milliseconds()
	return result, nil
}

// ParseBytes 解析内存中的PDF字节流, 供上传接口使用
func (p *ResumeProcessor) ParseBytes(ctx context.Context, data []byte, name string) (*types.ParseResult, error) {
	startTime := time.Now()

	if len(data) == 0 {
		return nil, fmt.Errorf("文件内容为空")
	}
	if sizeMB := float64(len(data)) / 1024 / 1024; sizeMB > float64(p.maxFileSizeMB) {
		return nil, fmt.Errorf("文件过大: %.1fMB > %dMB", sizeMB, p.maxFileSizeMB)
	}
	if p.pdfExtractor == nil {
		return nil, fmt.Errorf("未配置PDF提取器")
	}

	text, meta, err := p.pdfExtractor.ExtractFromBytes(ctx, data, name)
	if err != nil {
		return nil, fmt.Errorf("提取PDF文本失败: %w", err)
	}

	result, err := p.ParseText(ctx, text, name)
	if err != nil {
		return nil, err
	}
	if pageCount, ok := meta["page_count"].(int); ok {
		result.Metadata.PageCount = pageCount
	}
	result.Metadata.SourceFile = name
	result.Metadata.ProcessingTimeMS = time.Since(startTime).Milliseconds()
	return result, nil
}

// ParseText 对已提取的文本执行清洗/切分/实体抽取
// 以文本MD5为指纹查询备忘层, 命中则直接返回缓存结果
func (p *ResumeProcessor) ParseText(ctx context.Context, text, sourceName string) (*types.ParseResult, error) {
	fingerprint := Fingerprint(text)

	if cached, hit, err := p.cache.Get(ctx, fingerprint); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("读取解析缓存失败, 继续执行解析")
	} else if hit && cached != nil {
		cached.Metadata.FromCache = true
		logger.Ctx(ctx).Debug().Str("fingerprint", fingerprint).Msg("解析缓存命中")
		return cached, nil
	}

	cleaned := p.cleaner.Clean(text)
	sections := p.cleaner.ExtractSections(cleaned)
	resume := p.entityExtractor.Extract(ctx, cleaned, sections)

	sectionsFound := make([]string, 0, len(sections))
	for name := range sections {
		sectionsFound = append(sectionsFound, name)
	}

	result := &types.ParseResult{
		Resume: resume,
		Metadata: types.ParseMetadata{
			SourceFile:    sourceName,
			ParserVersion: constants.ParserVersion,
			SectionsFound: sectionsFound,
			SectionStats:  p.cleaner.SectionSummary(sections),
		},
	}

	if err := p.cache.Set(ctx, fingerprint, result); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("写入解析缓存失败")
	}

	return result, nil
}

// ParseBatch 并发解析多个PDF文件
// 每个文件相互独立, 单个失败不影响整批; 错误按文件路径归集
func (p *ResumeProcessor) ParseBatch(ctx context.Context, filePaths []string) *types.BatchResult {
	batch := &types.BatchResult{
		Results: make(map[string]*types.ParseResult),
		Errors:  make(map[string]string),
		Summary: types.BatchSummary{TotalFiles: len(filePaths)},
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.batchConcurrency)

	for _, filePath := range filePaths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := p.ParseFile(ctx, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				batch.Errors[path] = err.Error()
				logger.Ctx(ctx).Error().Err(err).Str("file", path).Msg("批量解析: 单文件失败")
				return
			}
			batch.Results[path] = result
		}(filePath)
	}
	wg.Wait()

	batch.Summary.Successful = len(batch.Results)
	batch.Summary.Failed = len(batch.Errors)
	return batch
}

// validateInput 输入校验: 存在性/扩展名/大小
func (p *ResumeProcessor) validateInput(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("文件不存在或不可读: %s: %w", filePath, err)
	}
	if !strings.EqualFold(filepath.Ext(filePath), ".pdf") {
		return fmt.Errorf("仅支持PDF文件: %s", filePath)
	}
	if sizeMB := float64(info.Size()) / 1024 / 1024; sizeMB > float64(p.maxFileSizeMB) {
		return fmt.Errorf("文件过大: %.1fMB > %dMB", sizeMB, p.maxFileSizeMB)
	}
	return nil
}

// Fingerprint 文档内容指纹, 作为备忘层的键
func Fingerprint(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
