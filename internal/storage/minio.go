package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"resume-match-go/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// UploadOriginal 上传原始简历文件，返回对象键
	UploadOriginal(ctx context.Context, fingerprint, originalName string, reader io.Reader, fileSize int64, contentType string) (string, error)

	// DownloadOriginal 下载原始简历文件
	DownloadOriginal(ctx context.Context, objectKey string) ([]byte, error)

	// GetPresignedURL 获取预签名下载URL
	GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)

	// DeleteOriginal 删除原始简历文件
	DeleteOriginal(ctx context.Context, objectKey string) error
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能
type MinIO struct {
	client          *minio.Client
	cfg             *config.MinIOConfig
	originalsBucket string
	logger          *log.Logger
}

// NewMinIO 创建MinIO客户端
func NewMinIO(cfg *config.MinIOConfig, logger *log.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	logger.Printf("[MinIO] Initializing MinIO client with endpoint: %s, originalsBucket: %s", cfg.Endpoint, cfg.OriginalsBucket)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Printf("[MinIO] Initialization failed: %v", err)
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	originalsBucket := cfg.OriginalsBucket
	if originalsBucket == "" {
		originalsBucket = "resume-originals"
	}

	m := &MinIO{
		client:          client,
		cfg:             cfg,
		originalsBucket: originalsBucket,
		logger:          logger,
	}

	// 确保存储桶存在
	if err := m.ensureBucketExists(originalsBucket, cfg.Location); err != nil {
		logger.Printf("[MinIO] Failed to ensure bucket %s exists: %v", originalsBucket, err)
		return nil, fmt.Errorf("确保原始简历存储桶 %s 存在失败: %w", originalsBucket, err)
	}

	// 设置生命周期规则
	if cfg.OriginalFileExpireDays > 0 {
		if err := m.setupBucketLifecycle(context.Background(), originalsBucket, "expire-originals", cfg.OriginalFileExpireDays); err != nil {
			logger.Printf("[MinIO] Warning: Failed to set up lifecycle rules: %v", err)
		}
	}

	logger.Printf("[MinIO] Client initialized successfully for endpoint: %s", cfg.Endpoint)
	return m, nil
}

// ensureBucketExists 确保存储桶存在
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	exists, err := m.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		m.logger.Printf("[MinIO] Bucket %s does not exist, attempting to create...", bucketName)
		err = m.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
		m.logger.Printf("[MinIO] Bucket %s created successfully.", bucketName)
	}
	return nil
}

// setupBucketLifecycle 为指定存储桶设置生命周期规则
func (m *MinIO) setupBucketLifecycle(ctx context.Context, bucketName, ruleID string, expiryDays int) error {
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:     ruleID,
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expiryDays),
			},
		},
	}

	if err := m.client.SetBucketLifecycle(ctx, bucketName, lc); err != nil {
		m.logger.Printf("[MinIO] Error setting lifecycle for bucket %s: %v", bucketName, err)
		return err
	}
	m.logger.Printf("[MinIO] Lifecycle rule %s set for bucket %s (%d days).", ruleID, bucketName, expiryDays)
	return nil
}

// originalObjectKey 按指纹组织对象路径，保留原始扩展名
func originalObjectKey(fingerprint, originalName string) string {
	ext := path.Ext(originalName)
	if ext == "" {
		ext = ".pdf"
	}
	return fmt.Sprintf("originals/%s/%s%s", fingerprint[:2], fingerprint, ext)
}

// UploadOriginal 上传原始简历文件，返回对象键
func (m *MinIO) UploadOriginal(ctx context.Context, fingerprint, originalName string, reader io.Reader, fileSize int64, contentType string) (string, error) {
	if len(fingerprint) < 2 {
		return "", fmt.Errorf("文件指纹无效: %q", fingerprint)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := originalObjectKey(fingerprint, originalName)
	m.logger.Printf("[MinIO] Uploading original: ObjectKey=%s, Size=%d, ContentType=%s", objectKey, fileSize, contentType)

	info, err := m.client.PutObject(ctx, m.originalsBucket, objectKey, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": originalName,
			"fingerprint":   fingerprint,
		},
	})
	if err != nil {
		return "", fmt.Errorf("上传原始文件到 %s/%s 失败: %w", m.originalsBucket, objectKey, err)
	}

	m.logger.Printf("[MinIO] Upload completed: %s (etag=%s, size=%d)", objectKey, info.ETag, info.Size)
	return objectKey, nil
}

// DownloadOriginal 下载原始简历文件
func (m *MinIO) DownloadOriginal(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.originalsBucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 失败: %w", m.originalsBucket, objectKey, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s/%s 内容失败: %w", m.originalsBucket, objectKey, err)
	}
	return data, nil
}

// GetPresignedURL 获取预签名下载URL
func (m *MinIO) GetPresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	u, err := m.client.PresignedGetObject(ctx, m.originalsBucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return u.String(), nil
}

// DeleteOriginal 删除原始简历文件
func (m *MinIO) DeleteOriginal(ctx context.Context, objectKey string) error {
	if err := m.client.RemoveObject(ctx, m.originalsBucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("删除对象 %s/%s 失败: %w", m.originalsBucket, objectKey, err)
	}
	return nil
}

// OriginalsBucket 返回原始文件存储桶名称
func (m *MinIO) OriginalsBucket() string {
	return m.originalsBucket
}
