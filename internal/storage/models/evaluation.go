package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ScoreEvaluation 一次简历与JD匹配评估的持久化记录
type ScoreEvaluation struct {
	EvaluationID       string         `gorm:"type:char(36);primaryKey"`
	ResumeFingerprint  string         `gorm:"type:char(32);index:idx_evaluations_resume_fp"`
	JDFingerprint      string         `gorm:"type:char(32);index:idx_evaluations_jd_fp"`
	FinalScore         float64        `gorm:"type:decimal(5,2)"`
	SemanticScore      float64        `gorm:"type:decimal(5,2)"`
	SkillMatchScore    float64        `gorm:"type:decimal(5,2)"`
	CriticalMatchScore float64        `gorm:"type:decimal(5,2)"`
	LengthScore        float64        `gorm:"type:decimal(5,2)"`
	MatchedSkillsJSON  datatypes.JSON `gorm:"type:json"`
	MissingSkillsJSON  datatypes.JSON `gorm:"type:json"`
	SkillScoresJSON    datatypes.JSON `gorm:"type:json"`
	SuggestionsJSON    datatypes.JSON `gorm:"type:json"`
	ParserVersion      string         `gorm:"type:varchar(32)"`
	CreatedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_evaluations_created_at"`
	UpdatedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ScoreEvaluation) TableName() string {
	return "score_evaluations"
}

// ResumeArchive 原始简历文件在对象存储中的登记表
type ResumeArchive struct {
	ArchiveID    string    `gorm:"type:char(36);primaryKey"`
	Fingerprint  string    `gorm:"type:char(32);uniqueIndex:idx_archives_fingerprint_unique"`
	OriginalName string    `gorm:"type:varchar(255)"`
	ObjectKey    string    `gorm:"type:varchar(512);not null"`
	Bucket       string    `gorm:"type:varchar(100);not null"`
	SizeBytes    int64     `gorm:"type:bigint"`
	ContentType  string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
}

func (ResumeArchive) TableName() string {
	return "resume_archives"
}

// MustJSON 将任意值序列化为datatypes.JSON，序列化失败时返回"null"
func MustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(data)
}
