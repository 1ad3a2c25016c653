package handler

import (
	"encoding/json"
	"testing"
	"time"

	"resume-match-go/internal/storage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewEvaluationSummary 落库记录的JSON列应原样透传到接口结构
func TestNewEvaluationSummary(t *testing.T) {
	rec := models.ScoreEvaluation{
		EvaluationID:       "eval-1",
		ResumeFingerprint:  "fp-resume",
		JDFingerprint:      "fp-jd",
		FinalScore:         82.5,
		SemanticScore:      70,
		SkillMatchScore:    90,
		CriticalMatchScore: 100,
		LengthScore:        60,
		MatchedSkillsJSON:  models.MustJSON([]string{"python", "sql"}),
		MissingSkillsJSON:  models.MustJSON([]string{"aws"}),
		SuggestionsJSON:    models.MustJSON([]string{"补充AWS相关经验"}),
		ParserVersion:      "1.0.0",
		CreatedAt:          time.Now(),
	}

	summary := newEvaluationSummary(rec)

	assert.Equal(t, "eval-1", summary.EvaluationID)
	assert.Equal(t, 82.5, summary.FinalScore)

	var matched []string
	require.NoError(t, json.Unmarshal(summary.MatchedSkills, &matched))
	assert.Equal(t, []string{"python", "sql"}, matched)

	var missing []string
	require.NoError(t, json.Unmarshal(summary.MissingSkills, &missing))
	assert.Equal(t, []string{"aws"}, missing)

	// 整体序列化时JSON列不应被二次转义
	body, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"matched_skills":["python","sql"]`)
}
