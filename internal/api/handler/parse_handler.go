package handler

import (
	"bytes"
	"context"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"
)

// ParseHandler 简历解析处理器，协调PDF上传的解析与归档流程
type ParseHandler struct {
	processor *processor.ResumeProcessor
	storage   *storage.Storage         // 可为nil
	evals     *storage.EvaluationStore // 可为nil，归档登记用
}

// NewParseHandler 创建解析处理器
func NewParseHandler(proc *processor.ResumeProcessor, store *storage.Storage) *ParseHandler {
	h := &ParseHandler{
		processor: proc,
		storage:   store,
	}
	if store != nil && store.MySQL != nil {
		h.evals = storage.NewEvaluationStore(store.MySQL)
	}
	return h
}

// HandleParse 解析上传的PDF简历并尽力归档原始文件
func (h *ParseHandler) HandleParse(ctx context.Context, filename string, data []byte) (*types.ParseResult, error) {
	result, err := h.processor.ParseBytes(ctx, data, filename)
	if err != nil {
		return nil, err
	}

	h.archiveOriginal(ctx, filename, data)
	return result, nil
}

// archiveOriginal 把原始文件存入对象存储并登记，失败只记日志不影响解析结果
func (h *ParseHandler) archiveOriginal(ctx context.Context, filename string, data []byte) {
	if h.storage == nil || h.storage.MinIO == nil {
		return
	}

	fingerprint := processor.Fingerprint(string(data))
	objectKey, err := h.storage.MinIO.UploadOriginal(ctx, fingerprint, filename,
		bytes.NewReader(data), int64(len(data)), "application/pdf")
	if err != nil {
		logger.Warn().
			Err(err).
			Str("filename", filename).
			Msg("归档原始简历到MinIO失败")
		return
	}

	if h.evals == nil {
		return
	}
	archive := &models.ResumeArchive{
		Fingerprint:  fingerprint,
		OriginalName: filename,
		ObjectKey:    objectKey,
		Bucket:       h.storage.MinIO.OriginalsBucket(),
		SizeBytes:    int64(len(data)),
		ContentType:  "application/pdf",
	}
	if err := h.evals.SaveArchive(ctx, archive); err != nil {
		logger.Warn().
			Err(err).
			Str("object_key", objectKey).
			Msg("登记归档记录失败")
	}
}
