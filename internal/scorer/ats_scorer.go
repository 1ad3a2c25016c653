package scorer

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/nlp"
	"resume-match-go/internal/types"
)

// DefaultCriticalSkills 高权重技能固定表, 对最终得分影响不成比例地大
var DefaultCriticalSkills = []string{
	"python", "java", "javascript", "react", "sql", "aws", "docker", "kubernetes",
}

// ATSScorer 多因子ATS兼容性打分器
// 语义相似度 + 技能匹配率 + 关键技能匹配率 + 篇幅比例, 按固定权重加权
type ATSScorer struct {
	similarity     nlp.SimilarityProvider
	keywords       *matcher.KeywordExtractor
	fuzzyThreshold float64
	criticalSkills map[string]struct{}
}

// NewATSScorer 构建打分器
// criticalSkills为空时使用默认关键技能表
func NewATSScorer(similarity nlp.SimilarityProvider, keywords *matcher.KeywordExtractor, fuzzyThreshold float64, criticalSkills []string) *ATSScorer {
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = constants.DefaultFuzzyThreshold
	}
	if len(criticalSkills) == 0 {
		criticalSkills = DefaultCriticalSkills
	}
	critical := make(map[string]struct{}, len(criticalSkills))
	for _, skill := range criticalSkills {
		critical[strings.ToLower(skill)] = struct{}{}
	}
	return &ATSScorer{
		similarity:     similarity,
		keywords:       keywords,
		fuzzyThreshold: fuzzyThreshold,
		criticalSkills: critical,
	}
}

// Score 计算一对简历与JD文本的完整评分报告
// 各分项先单独计算再加权; 除零情形按退化规则处理, 不向外抛错
func (s *ATSScorer) Score(ctx context.Context, resumeText, jdText string) types.ScoreReport {
	semanticScore := s.semanticScore(ctx, resumeText, jdText)

	resumeSkills := s.keywords.ExtractKeywords(ctx, resumeText)
	jdSkills := s.keywords.ExtractKeywords(ctx, jdText)
	matched, skillScores, missing := matcher.FuzzyMatch(resumeSkills, jdSkills, s.fuzzyThreshold)

	// JD未提取到任何技能时技能匹配得0分
	var skillMatchScore float64
	if len(jdSkills) > 0 {
		skillMatchScore = float64(len(matched)) / float64(len(jdSkills)) * 100
	}

	criticalMatchScore := s.criticalScore(resumeSkills, jdSkills)
	lengthScore := lengthScore(resumeText, jdText)

	finalScore := semanticScore*constants.WeightSemantic +
		skillMatchScore*constants.WeightSkillMatch +
		criticalMatchScore*constants.WeightCriticalMatch +
		lengthScore*constants.WeightLength

	return types.ScoreReport{
		SemanticScore:      round2(semanticScore),
		SkillMatchScore:    round2(skillMatchScore),
		CriticalMatchScore: round2(criticalMatchScore),
		LengthScore:        round2(lengthScore),
		FinalScore:         round2(finalScore),
		MatchedSkills:      sortedKeys(matched),
		MissingSkills:      sortedKeys(missing),
		SkillScores:        skillScores,
		TotalJDSkills:      len(jdSkills),
		TotalResumeSkills:  len(resumeSkills),
	}
}

// semanticScore 余弦相似度放大到百分制并截断到[0,100]
// 嵌入能力不可用时降级为0分并记录告警
func (s *ATSScorer) semanticScore(ctx context.Context, resumeText, jdText string) float64 {
	if s.similarity == nil {
		return 0
	}
	cos, err := s.similarity.Similarity(ctx, resumeText, jdText)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("语义相似度计算失败, 该分项按0分处理")
		return 0
	}
	score := cos * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// criticalScore JD不含任何关键技能时视为trivially satisfied, 得满分
func (s *ATSScorer) criticalScore(resumeSkills, jdSkills map[string]struct{}) float64 {
	jdCritical := intersect(jdSkills, s.criticalSkills)
	if len(jdCritical) == 0 {
		return 100
	}
	resumeCritical := intersect(resumeSkills, s.criticalSkills)
	hit := 0
	for skill := range jdCritical {
		if _, ok := resumeCritical[skill]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(jdCritical)) * 100
}

// lengthScore 简历与JD的词数比例分, 过短或过长都会被惩罚
// JD词数为0时分母按100兜底, 比例上限2.0
func lengthScore(resumeText, jdText string) float64 {
	resumeWords := len(strings.Fields(resumeText))
	jdWords := len(strings.Fields(jdText))

	denominator := jdWords
	if denominator < 100 {
		denominator = 100
	}
	ratio := math.Min(float64(resumeWords)/float64(denominator), 2.0)
	return math.Max(0, 100-math.Abs(1-ratio)*50)
}

// GenerateSuggestions 从评分报告推导改进建议, 纯函数
func GenerateSuggestions(report types.ScoreReport) []string {
	var suggestions []string

	switch {
	case report.FinalScore < 70:
		suggestions = append(suggestions, "CRITICAL: ATS score is below recommended threshold (70%)")
	case report.FinalScore < 85:
		suggestions = append(suggestions, "MODERATE: ATS score has room for improvement")
	default:
		suggestions = append(suggestions, "GOOD: ATS score is competitive")
	}

	if len(report.MissingSkills) > 0 {
		top := make([]string, len(report.MissingSkills))
		copy(top, report.MissingSkills)
		sort.Strings(top)
		if len(top) > 5 {
			top = top[:5]
		}
		suggestions = append(suggestions, fmt.Sprintf("ADD MISSING SKILLS: %s", strings.Join(top, ", ")))
	}

	if report.SemanticScore < 70 {
		suggestions = append(suggestions, "IMPROVE CONTENT ALIGNMENT: Use more keywords from the job description")
	}

	if report.CriticalMatchScore < 80 {
		suggestions = append(suggestions, "HIGHLIGHT CRITICAL SKILLS: Emphasize key technical skills more prominently")
	}

	return suggestions
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
