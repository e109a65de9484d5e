package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/config"
)

// ObjectStorage 对象存储接口。
// 排序服务只读头像，上传和删除由账号服务负责。
type ObjectStorage interface {
	// PresignPhotoURL 按配置的有效期为头像对象生成预签名URL
	PresignPhotoURL(ctx context.Context, objectKey string) (string, error)
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能
type MinIO struct {
	client       *minio.Client
	cfg          *config.MinIOConfig
	photosBucket string
	logger       *log.Logger
}

// NewMinIO 创建MinIO客户端
func NewMinIO(cfg *config.MinIOConfig, logger *log.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	logger.Printf("[MinIO] Initializing MinIO client with endpoint: %s, photosBucket: %s", cfg.Endpoint, cfg.PhotosBucket)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Printf("[MinIO] Initialization failed: %v", err)
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	photosBucket := cfg.PhotosBucket
	if photosBucket == "" {
		photosBucket = "candidate-photos" // 默认值
	}

	m := &MinIO{
		client:       client,
		cfg:          cfg,
		photosBucket: photosBucket,
		logger:       logger,
	}

	// 确保存储桶存在
	if err := m.ensureBucketExists(photosBucket, cfg.Location); err != nil {
		logger.Printf("[MinIO] Failed to ensure photos bucket %s exists: %v", photosBucket, err)
		return nil, fmt.Errorf("确保头像存储桶 %s 存在失败: %w", photosBucket, err)
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

// presignGetURL 为对象生成预签名下载URL
func (m *MinIO) presignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := m.client.PresignedGetObject(ctx, m.photosBucket, objectName, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("生成对象 %s/%s 的预签名URL失败: %w", m.photosBucket, objectName, err)
	}
	return presignedURL.String(), nil
}

// PresignPhotoURL 按配置的有效期为头像对象生成预签名URL。
// objectKey为空表示候选人没有头像，返回空串而不是错误。
func (m *MinIO) PresignPhotoURL(ctx context.Context, objectKey string) (string, error) {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return "", nil
	}

	expireMinutes := m.cfg.PresignExpireMinutes
	if expireMinutes <= 0 {
		expireMinutes = 60 // 默认1小时
	}
	return m.presignGetURL(ctx, objectKey, time.Duration(expireMinutes)*time.Minute)
}
