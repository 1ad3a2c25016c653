package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQL 提供关系数据库功能
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL客户端
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	// 构建DSN，添加超时设置
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds)

	// 配置GORM日志级别
	var logLevel logger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = logger.Silent
	case 2:
		logLevel = logger.Error
	case 3:
		logLevel = logger.Warn
	case 4:
		logLevel = logger.Info
	default:
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // 禁用自动外键创建
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true, // 开启预编译语句缓存
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	// 设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	m := &MySQL{
		db:  db,
		cfg: cfg,
	}

	// 使用 GORM 的 AutoMigrate 功能自动迁移表结构
	if err := m.autoMigrateSchema(); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("自动迁移数据库结构失败: %w", err)
	}

	log.Println("成功连接到MySQL并自动迁移数据库结构")
	return m, nil
}

// autoMigrateSchema 使用GORM自动迁移数据库表结构
func (m *MySQL) autoMigrateSchema() error {
	// 迁移阶段关闭SQL日志打印
	silentDB := m.db.Session(&gorm.Session{Logger: m.db.Logger.LogMode(logger.Silent)})

	err := silentDB.AutoMigrate(
		&models.ScoreEvaluation{},
		&models.ResumeArchive{},
	)
	if err != nil {
		return fmt.Errorf("GORM自动迁移失败: %w", err)
	}
	return nil
}

// DB 返回GORM数据库连接实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return sqlDB.Close()
}

// Ping 检查数据库连接
func (m *MySQL) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// EvaluationStore 打分报告持久化
type EvaluationStore struct {
	mysql *MySQL
}

// NewEvaluationStore 创建评估存储
func NewEvaluationStore(m *MySQL) *EvaluationStore {
	return &EvaluationStore{mysql: m}
}

// SaveEvaluation 持久化一次打分结果及建议，返回生成的评估ID
func (s *EvaluationStore) SaveEvaluation(ctx context.Context, resumeFP, jdFP string, report *types.ScoreReport, suggestions []string) (string, error) {
	if report == nil {
		return "", fmt.Errorf("打分报告不能为空")
	}

	record := &models.ScoreEvaluation{
		EvaluationID:       uuid.NewString(),
		ResumeFingerprint:  resumeFP,
		JDFingerprint:      jdFP,
		FinalScore:         report.FinalScore,
		SemanticScore:      report.SemanticScore,
		SkillMatchScore:    report.SkillMatchScore,
		CriticalMatchScore: report.CriticalMatchScore,
		LengthScore:        report.LengthScore,
		MatchedSkillsJSON:  models.MustJSON(report.MatchedSkills),
		MissingSkillsJSON:  models.MustJSON(report.MissingSkills),
		SkillScoresJSON:    models.MustJSON(report.SkillScores),
		SuggestionsJSON:    models.MustJSON(suggestions),
		ParserVersion:      constants.ParserVersion,
	}

	if err := s.mysql.db.WithContext(ctx).Create(record).Error; err != nil {
		return "", fmt.Errorf("保存评估记录失败: %w", err)
	}
	return record.EvaluationID, nil
}

// GetEvaluation 按ID查询评估记录
func (s *EvaluationStore) GetEvaluation(ctx context.Context, evaluationID string) (*models.ScoreEvaluation, error) {
	var record models.ScoreEvaluation
	err := s.mysql.db.WithContext(ctx).
		Where("evaluation_id = ?", evaluationID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListEvaluations 按创建时间倒序分页查询评估记录
func (s *EvaluationStore) ListEvaluations(ctx context.Context, limit, offset int) ([]models.ScoreEvaluation, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.mysql.db.WithContext(ctx).Model(&models.ScoreEvaluation{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计评估记录失败: %w", err)
	}

	var records []models.ScoreEvaluation
	err := s.mysql.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询评估记录失败: %w", err)
	}
	return records, total, nil
}

// SaveArchive 登记一条原始文件归档记录
func (s *EvaluationStore) SaveArchive(ctx context.Context, archive *models.ResumeArchive) error {
	if archive == nil {
		return fmt.Errorf("归档记录不能为空")
	}
	if archive.ArchiveID == "" {
		archive.ArchiveID = uuid.NewString()
	}
	return s.mysql.db.WithContext(ctx).Create(archive).Error
}
