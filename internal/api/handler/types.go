package handler

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrStoreUnavailable 请求了需要数据库的能力但MySQL未配置
var ErrStoreUnavailable = errors.New("evaluation store is not configured")

// EvaluationSummary 历史评估记录的响应条目
type EvaluationSummary struct {
	EvaluationID       string          `json:"evaluation_id"`
	ResumeFingerprint  string          `json:"resume_fingerprint"`
	JDFingerprint      string          `json:"jd_fingerprint"`
	FinalScore         float64         `json:"final_score"`
	SemanticScore      float64         `json:"semantic_score"`
	SkillMatchScore    float64         `json:"skill_match_score"`
	CriticalMatchScore float64         `json:"critical_match_score"`
	LengthScore        float64         `json:"length_score"`
	MatchedSkills      json.RawMessage `json:"matched_skills"`
	MissingSkills      json.RawMessage `json:"missing_skills"`
	Suggestions        json.RawMessage `json:"suggestions"`
	ParserVersion      string          `json:"parser_version"`
	CreatedAt          time.Time       `json:"created_at"`
}

// EvaluationListResponse 历史评估列表响应
type EvaluationListResponse struct {
	Total int64               `json:"total"`
	Items []EvaluationSummary `json:"items"`
}
