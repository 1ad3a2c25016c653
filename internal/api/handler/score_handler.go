package handler

import (
	"context"
	"encoding/json"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/scorer"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"
)

// ScoreHandler 打分处理器，负责协调简历与JD的匹配评估流程
type ScoreHandler struct {
	scorer  *scorer.ATSScorer
	storage *storage.Storage         // 可为nil，持久化与缓存按组件降级
	evals   *storage.EvaluationStore // 可为nil
}

// NewScoreHandler 创建打分处理器
func NewScoreHandler(atsScorer *scorer.ATSScorer, store *storage.Storage) *ScoreHandler {
	h := &ScoreHandler{
		scorer:  atsScorer,
		storage: store,
	}
	if store != nil && store.MySQL != nil {
		h.evals = storage.NewEvaluationStore(store.MySQL)
	}
	return h
}

// ScoreResponse 打分接口响应
type ScoreResponse struct {
	EvaluationID string            `json:"evaluation_id,omitempty"`
	ATSResults   types.ScoreReport `json:"ats_results"`
	Suggestions  []string          `json:"suggestions"`
}

// HandleScore 执行一次简历与JD的匹配评估。
// 打分本身不依赖任何存储组件; 报告缓存与评估落库均为尽力而为。
func (h *ScoreHandler) HandleScore(ctx context.Context, resumeText, jdText string) (*ScoreResponse, error) {
	report := h.scorer.Score(ctx, resumeText, jdText)
	suggestions := scorer.GenerateSuggestions(report)

	resumeFP := processor.Fingerprint(resumeText)
	jdFP := processor.Fingerprint(jdText)

	resp := &ScoreResponse{
		ATSResults:  report,
		Suggestions: suggestions,
	}

	// 缓存打分报告
	if h.storage != nil && h.storage.Redis != nil {
		if err := h.storage.Redis.SetScoreReport(ctx, resumeFP, jdFP, &report); err != nil {
			logger.Warn().
				Err(err).
				Str("resume_fp", resumeFP).
				Str("jd_fp", jdFP).
				Msg("缓存打分报告失败")
		}
	}

	// 落库评估记录
	if h.evals != nil {
		evaluationID, err := h.evals.SaveEvaluation(ctx, resumeFP, jdFP, &report, suggestions)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("resume_fp", resumeFP).
				Msg("保存评估记录失败")
		} else {
			resp.EvaluationID = evaluationID
		}
	}

	logger.Ctx(ctx).Info().
		Float64("final_score", report.FinalScore).
		Int("matched_skills", len(report.MatchedSkills)).
		Int("missing_skills", len(report.MissingSkills)).
		Msg("完成一次匹配评估")

	return resp, nil
}

// ListEvaluations 按创建时间倒序分页返回历史评估记录
func (h *ScoreHandler) ListEvaluations(ctx context.Context, limit, offset int) (*EvaluationListResponse, error) {
	if h.evals == nil {
		return nil, ErrStoreUnavailable
	}
	records, total, err := h.evals.ListEvaluations(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]EvaluationSummary, 0, len(records))
	for _, rec := range records {
		items = append(items, newEvaluationSummary(rec))
	}
	return &EvaluationListResponse{
		Total: total,
		Items: items,
	}, nil
}

// newEvaluationSummary 把落库记录转成接口返回结构
// datatypes.JSON列按原始JSON透传, 避免二次反序列化
func newEvaluationSummary(rec models.ScoreEvaluation) EvaluationSummary {
	return EvaluationSummary{
		EvaluationID:       rec.EvaluationID,
		ResumeFingerprint:  rec.ResumeFingerprint,
		JDFingerprint:      rec.JDFingerprint,
		FinalScore:         rec.FinalScore,
		SemanticScore:      rec.SemanticScore,
		SkillMatchScore:    rec.SkillMatchScore,
		CriticalMatchScore: rec.CriticalMatchScore,
		LengthScore:        rec.LengthScore,
		MatchedSkills:      json.RawMessage(rec.MatchedSkillsJSON),
		MissingSkills:      json.RawMessage(rec.MissingSkillsJSON),
		Suggestions:        json.RawMessage(rec.SuggestionsJSON),
		ParserVersion:      rec.ParserVersion,
		CreatedAt:          rec.CreatedAt,
	}
}
