package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-match-go/internal/nlp"
)

func TestExtractKeywordsCombinesSources(t *testing.T) {
	tagger := &nlp.StaticTagger{
		Ents: []nlp.Entity{
			{Text: "Acme Corp", Label: nlp.LabelOrg},
			{Text: "Berlin", Label: nlp.LabelGPE},
		},
		Phrases: []string{"distributed systems", "a very long noun phrase here", "ok"},
		Toks: []nlp.Token{
			{Text: "scalable", Lemma: "scalable", POS: "ADJ", IsAlpha: true},
			{Text: "the", Lemma: "the", POS: "DET", IsAlpha: true, IsStop: true},
			{Text: "services", Lemma: "service", POS: "NOUN", IsAlpha: true},
			{Text: "ran", Lemma: "run", POS: "VERB", IsAlpha: true},
		},
	}
	extractor := NewKeywordExtractor(nil, tagger)

	keywords := extractor.ExtractKeywords(context.Background(), "Scalable services with python3 at NASA")

	assert.Contains(t, keywords, "acme corp", "组织实体应进入关键词")
	assert.Contains(t, keywords, "berlin")
	assert.Contains(t, keywords, "distributed systems", "三个词以内的名词短语应保留")
	assert.NotContains(t, keywords, "a very long noun phrase here", "超过三个词的名词短语应排除")
	assert.NotContains(t, keywords, "ok", "过短的名词短语应排除")
	assert.Contains(t, keywords, "scalable")
	assert.Contains(t, keywords, "service", "名词取词元形式")
	assert.NotContains(t, keywords, "the", "停用词应排除")
	assert.NotContains(t, keywords, "run", "动词不参与关键词")
	assert.Contains(t, keywords, "python3", "版本号样式的技术词应保留")
	assert.Contains(t, keywords, "nasa", "全大写缩写词转为小写保留")
}

// TestExtractKeywordsTaggerFailure NER不可用时仍能做纯模式提取
func TestExtractKeywordsTaggerFailure(t *testing.T) {
	tagger := &nlp.StaticTagger{Err: errors.New("nlu down")}
	extractor := NewKeywordExtractor(nil, tagger)

	keywords := extractor.ExtractKeywords(context.Background(), "built with vue2.7 and GRPC")

	assert.Contains(t, keywords, "vue2.7")
	assert.Contains(t, keywords, "grpc")
}

func TestExtractKeywordsEmptyText(t *testing.T) {
	extractor := NewKeywordExtractor(nil, &nlp.StaticTagger{})
	assert.Empty(t, extractor.ExtractKeywords(context.Background(), "   "))
}

// TestFuzzyMatchScenario JD技能{python,sql,aws}对简历技能{python,sql}
func TestFuzzyMatchScenario(t *testing.T) {
	resumeSkills := map[string]struct{}{"python": {}, "sql": {}}
	jdSkills := map[string]struct{}{"python": {}, "sql": {}, "aws": {}}

	matched, scores, missing := FuzzyMatch(resumeSkills, jdSkills, 85)

	assert.Equal(t, map[string]struct{}{"python": {}, "sql": {}}, matched)
	assert.Equal(t, map[string]struct{}{"aws": {}}, missing)
	assert.InDelta(t, 100, scores["python"], 0.01)
	assert.InDelta(t, 100, scores["sql"], 0.01)
}

// TestFuzzyMatchNearMiss 轻微拼写差异应落入阈值之内, 词序差异不影响匹配
func TestFuzzyMatchNearMiss(t *testing.T) {
	resumeSkills := map[string]struct{}{"pythonn": {}, "learning machine": {}}
	jdSkills := map[string]struct{}{"python": {}, "machine learning": {}, "fortran": {}}

	matched, scores, missing := FuzzyMatch(resumeSkills, jdSkills, 85)

	assert.Contains(t, matched, "python")
	assert.GreaterOrEqual(t, scores["python"], 85.0)
	assert.Contains(t, matched, "machine learning", "词序无关相似度应视为等价")
	assert.Contains(t, missing, "fortran")
}

// TestFuzzyMatchEmptyResume 空简历技能集合时全部JD技能都缺失
func TestFuzzyMatchEmptyResume(t *testing.T) {
	jdSkills := map[string]struct{}{"python": {}}

	matched, _, missing := FuzzyMatch(nil, jdSkills, 85)

	assert.Empty(t, matched)
	assert.Equal(t, map[string]struct{}{"python": {}}, missing)
}

// TestFuzzyMatchInvariants matched是JD集合的子集且每个分数不低于阈值
func TestFuzzyMatchInvariants(t *testing.T) {
	resumeSkills := map[string]struct{}{"golang": {}, "redis cluster": {}, "terraform": {}}
	jdSkills := map[string]struct{}{"go": {}, "cluster redis": {}, "kafka": {}, "terraform": {}}
	const threshold = 85.0

	matched, scores, missing := FuzzyMatch(resumeSkills, jdSkills, threshold)

	for skill := range matched {
		_, inJD := jdSkills[skill]
		assert.True(t, inJD, "匹配结果必须是JD技能的子集")
		assert.GreaterOrEqual(t, scores[skill], threshold, "匹配分数必须不低于阈值")
		_, inMissing := missing[skill]
		assert.False(t, inMissing, "同一技能不能同时出现在matched和missing中")
	}
	assert.Len(t, matched, len(jdSkills)-len(missing))
}
