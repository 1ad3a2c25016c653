package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// API鉴权配置
	Auth AuthConfig `yaml:"auth"`

	// 上传限制配置
	Upload UploadConfig `yaml:"upload"`

	// 文本清洗配置
	Cleaner CleanerConfig `yaml:"cleaner"`

	// 技能匹配配置
	Matcher MatcherConfig `yaml:"matcher"`

	// 打分器配置
	Scorer ScorerConfig `yaml:"scorer"`

	// 阿里云API配置（Embedding与NLU）
	Aliyun AliyunConfig `yaml:"aliyun"`

	// 同义词扩展配置
	Thesaurus ThesaurusConfig `yaml:"thesaurus"`

	// 批量处理配置
	Processor ProcessorConfig `yaml:"processor"`

	// Redis配置（解析结果缓存，可选）
	Redis RedisConfig `yaml:"redis"`

	// MySQL配置（评估历史，可选）
	MySQL MySQLConfig `yaml:"mysql"`

	// MinIO配置（原始文件归档，可选）
	MinIO MinIOConfig `yaml:"minio"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// ServerConfig 定义服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080" or "0.0.0.0:8080"
}

// AuthConfig API鉴权配置
type AuthConfig struct {
	APIKey string `yaml:"api_key"` // X-API-Key请求头的期望值，为空时关闭鉴权
}

// UploadConfig 上传限制配置
type UploadConfig struct {
	MaxFileSizeMB int `yaml:"max_file_size_mb"` // 单个上传文件的最大体积(MB)
}

// CleanerConfig 文本清洗配置
type CleanerConfig struct {
	// EnableOCRFixes 是否启用OCR混淆字符修复（孤立l→I、孤立0→O、词中l→I）
	// 该修复会误伤含"l"/"0"的正常词，默认关闭
	EnableOCRFixes bool `yaml:"enable_ocr_fixes"`
}

// MatcherConfig 技能匹配配置
type MatcherConfig struct {
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"` // 模糊匹配阈值(0-100)，默认85
}

// ScorerConfig 打分器配置
type ScorerConfig struct {
	// CriticalSkills 高权重关键技能列表，为空时使用内置默认列表
	CriticalSkills []string `yaml:"critical_skills"`
}

// AliyunConfig 阿里云API配置
type AliyunConfig struct {
	APIKey    string          `yaml:"api_key"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	NLU       NLUConfig       `yaml:"nlu"`
}

// EmbeddingConfig Aliyun Embedding specific configuration
type EmbeddingConfig struct {
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	BaseURL    string `yaml:"base_url"`
}

// NLUConfig 阿里云NLU服务配置（命名实体识别/分词/词性标注）
type NLUConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 请求超时(秒)
}

// ThesaurusConfig 同义词服务配置
type ThesaurusConfig struct {
	Enabled        bool   `yaml:"enabled"`         // 关闭时规范化仅使用静态同义词表
	BaseURL        string `yaml:"base_url"`        // 例如 "https://api.datamuse.com"
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 请求超时(秒)
}

// ProcessorConfig 批量处理配置
type ProcessorConfig struct {
	BatchConcurrency int `yaml:"batch_concurrency"` // 批量解析的并发worker数
}

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	// 缓存过期时间
	ParseCacheTTLHours int `yaml:"parse_cache_ttl_hours"` // 解析结果缓存过期时间(小时)
}

// MySQLConfig MySQL配置结构
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// 连接池设置
	MaxIdleConns int `yaml:"max_idle_conns"` // 最大空闲连接数
	MaxOpenConns int `yaml:"max_open_conns"` // 最大打开连接数
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"` // 连接最大生命周期(分钟)
	// 超时设置
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"` // 连接超时(秒)
	// 日志设置
	LogLevel int `yaml:"log_level"` // GORM日志级别(1-4)
}

// MinIOConfig MinIO配置结构
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	// 原始简历存储桶
	OriginalsBucket string `yaml:"originalsBucket"`
	Location        string `yaml:"location"` // 可选，存储桶区域
	// 对象生命周期管理
	OriginalFileExpireDays int `yaml:"original_file_expire_days"` // 原始文件过期天数
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 如果未指定配置文件路径，则尝试在默认位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-match", "config.yaml"),
		}

		// 可执行文件所在目录及其上级
		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths,
				filepath.Join(execDir, "config.yaml"),
				filepath.Join(execDir, "..", "config.yaml"),
			)
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 仍找不到配置文件时：测试环境返回默认配置，其余情况使用默认路径
		if configPath == "" {
			if inTestEnvironment() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	// 检查文件是否存在
	if _, err := os.Stat(configPath); err != nil {
		if inTestEnvironment() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	// 读取并解析配置文件
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := createDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	}
	if envKey := os.Getenv("API_HEADER"); envKey != "" {
		config.Auth.APIKey = envKey
	}
	if envAddr := os.Getenv("SERVER_ADDRESS"); envAddr != "" {
		config.Server.Address = envAddr
	}
	if envAddr := os.Getenv("REDIS_ADDRESS"); envAddr != "" {
		config.Redis.Address = envAddr
	}
}

// inTestEnvironment 检测当前是否运行在go test中
func inTestEnvironment() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// createDefaultConfig 构建带合理默认值的配置
func createDefaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.Address = ":8080"
	cfg.Upload.MaxFileSizeMB = 10
	cfg.Cleaner.EnableOCRFixes = false
	cfg.Matcher.FuzzyThreshold = 85
	cfg.Processor.BatchConcurrency = 4

	cfg.Aliyun.Embedding.Model = "text-embedding-v3"
	cfg.Aliyun.Embedding.Dimensions = 1024
	cfg.Aliyun.Embedding.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	cfg.Aliyun.NLU.TimeoutSeconds = 10

	cfg.Thesaurus.Enabled = false
	cfg.Thesaurus.BaseURL = "https://api.datamuse.com"
	cfg.Thesaurus.TimeoutSeconds = 5

	cfg.Redis.PoolSize = 10
	cfg.Redis.MinIdleConns = 2
	cfg.Redis.DialTimeoutSeconds = 5
	cfg.Redis.ReadTimeoutSeconds = 3
	cfg.Redis.WriteTimeoutSeconds = 3
	cfg.Redis.ParseCacheTTLHours = 24

	cfg.MySQL.MaxIdleConns = 5
	cfg.MySQL.MaxOpenConns = 20
	cfg.MySQL.ConnMaxLifetimeMinutes = 60
	cfg.MySQL.ConnectTimeoutSeconds = 10
	cfg.MySQL.LogLevel = 2

	cfg.MinIO.OriginalFileExpireDays = 90

	cfg.Logger.Level = "info"
	cfg.Logger.Format = "json"

	return cfg
}

// GetDuration 解析时长字符串，解析失败时返回默认值
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
