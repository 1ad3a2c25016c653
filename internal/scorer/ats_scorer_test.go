package scorer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/matcher"
	"resume-match-go/internal/nlp"
	"resume-match-go/internal/types"
)

// 关键词只走模式提取, 全大写词即关键词, 便于精确控制技能集合
func patternOnlyExtractor() *matcher.KeywordExtractor {
	return matcher.NewKeywordExtractor(nil, nil)
}

func TestScoreScenario(t *testing.T) {
	scorer := NewATSScorer(&nlp.StaticSimilarity{Value: 0.9}, patternOnlyExtractor(), 85, nil)

	report := scorer.Score(context.Background(), "PYTHON SQL", "PYTHON SQL AWS")

	assert.Equal(t, 3, report.TotalJDSkills)
	assert.Equal(t, 2, report.TotalResumeSkills)
	assert.Equal(t, []string{"python", "sql"}, report.MatchedSkills)
	assert.Equal(t, []string{"aws"}, report.MissingSkills)
	assert.InDelta(t, 66.67, report.SkillMatchScore, 0.01)
	assert.InDelta(t, 66.67, report.CriticalMatchScore, 0.01, "三个关键技能命中两个")
	assert.InDelta(t, 90, report.SemanticScore, 0.01)

	// 最终分 = 0.40*semantic + 0.35*skill + 0.20*critical + 0.05*length
	expected := 0.40*report.SemanticScore + 0.35*report.SkillMatchScore +
		0.20*report.CriticalMatchScore + 0.05*report.LengthScore
	assert.InDelta(t, expected, report.FinalScore, 0.02)
}

// TestScoreDegenerateCases 除零情形的退化规则
func TestScoreDegenerateCases(t *testing.T) {
	scorer := NewATSScorer(&nlp.StaticSimilarity{Value: 0.5}, patternOnlyExtractor(), 85, nil)

	// JD为空: 技能匹配0分, 关键技能视为满分, 篇幅分母兜底到100
	report := scorer.Score(context.Background(), "PYTHON developer resume text", "")
	assert.Zero(t, report.SkillMatchScore)
	assert.Equal(t, 100.0, report.CriticalMatchScore)
	assert.GreaterOrEqual(t, report.LengthScore, 0.0)
	assert.LessOrEqual(t, report.LengthScore, 100.0)

	// JD不要求任何关键技能
	report = scorer.Score(context.Background(), "PYTHON", "HTML CSS")
	assert.Equal(t, 100.0, report.CriticalMatchScore)
}

// TestSemanticScoreClamped 语义分截断到[0,100]
func TestSemanticScoreClamped(t *testing.T) {
	negative := NewATSScorer(&nlp.StaticSimilarity{Value: -0.4}, patternOnlyExtractor(), 85, nil)
	report := negative.Score(context.Background(), "PYTHON", "PYTHON")
	assert.Equal(t, 0.0, report.SemanticScore)

	oversized := NewATSScorer(&nlp.StaticSimilarity{Value: 1.3}, patternOnlyExtractor(), 85, nil)
	report = oversized.Score(context.Background(), "PYTHON", "PYTHON")
	assert.Equal(t, 100.0, report.SemanticScore)
}

// TestSemanticScoreDegradesOnError 嵌入能力不可用时语义分按0处理
func TestSemanticScoreDegradesOnError(t *testing.T) {
	scorer := NewATSScorer(&nlp.StaticSimilarity{Err: errors.New("embedding down")}, patternOnlyExtractor(), 85, nil)

	report := scorer.Score(context.Background(), "PYTHON", "PYTHON")
	assert.Zero(t, report.SemanticScore)
	assert.NotZero(t, report.FinalScore, "其余分项不受影响")
}

func TestScoreRangesInvariant(t *testing.T) {
	scorer := NewATSScorer(&nlp.StaticSimilarity{Value: 0.73}, patternOnlyExtractor(), 85, nil)

	longResume := strings.Repeat("PYTHON DOCKER engineer ", 120)
	report := scorer.Score(context.Background(), longResume, "PYTHON KAFKA SQL")

	for name, v := range map[string]float64{
		"semantic": report.SemanticScore,
		"skill":    report.SkillMatchScore,
		"critical": report.CriticalMatchScore,
		"length":   report.LengthScore,
		"final":    report.FinalScore,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 100.0, name)
	}
}

func TestGenerateSuggestions(t *testing.T) {
	report := types.ScoreReport{
		FinalScore:         55,
		SemanticScore:      60,
		CriticalMatchScore: 50,
		MissingSkills:      []string{"terraform", "aws", "kafka", "go", "rust", "scala", "elixir"},
	}

	suggestions := GenerateSuggestions(report)

	require.Len(t, suggestions, 4)
	assert.Contains(t, suggestions[0], "CRITICAL")
	assert.Contains(t, suggestions[1], "ADD MISSING SKILLS")
	assert.Contains(t, suggestions[1], "aws, elixir, go, kafka, rust", "缺失技能按字典序取前五个")
	assert.Contains(t, suggestions[2], "CONTENT ALIGNMENT")
	assert.Contains(t, suggestions[3], "CRITICAL SKILLS")
}

func TestGenerateSuggestionsGoodScore(t *testing.T) {
	report := types.ScoreReport{FinalScore: 92, SemanticScore: 88, CriticalMatchScore: 95}

	suggestions := GenerateSuggestions(report)

	require.Len(t, suggestions, 1)
	assert.Contains(t, suggestions[0], "GOOD")
}

func TestGenerateSuggestionsModerate(t *testing.T) {
	report := types.ScoreReport{FinalScore: 78, SemanticScore: 75, CriticalMatchScore: 85}

	suggestions := GenerateSuggestions(report)
	require.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions[0], "MODERATE")
}
