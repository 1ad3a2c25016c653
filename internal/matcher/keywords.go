package matcher

import (
	"context"
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/nlp"
	"resume-match-go/internal/parser"
)

var (
	techVersionPattern = regexp.MustCompile(`\b[a-zA-Z]+[0-9]+(?:\.[0-9]+)*\b`)
	acronymPattern     = regexp.MustCompile(`\b[A-Z]{2,}\b`)
)

// 参与关键词提取的实体标签与词性
var (
	keywordEntityLabels = map[nlp.EntityLabel]struct{}{
		nlp.LabelOrg:     {},
		nlp.LabelProduct: {},
		nlp.LabelPerson:  {},
		nlp.LabelGPE:     {},
	}
	keywordPOSTags = map[string]struct{}{
		"NOUN":  {},
		"PROPN": {},
		"ADJ":   {},
	}
)

// KeywordExtractor 从自由文本中提取技能关键词集合
// 文本先做同义词归一化, 再综合NER实体/名词短语/词性过滤后的单词/版本号/缩写词
type KeywordExtractor struct {
	normalizer *parser.TextNormalizer
	tagger     nlp.Tagger
}

// NewKeywordExtractor 构建关键词提取器
func NewKeywordExtractor(normalizer *parser.TextNormalizer, tagger nlp.Tagger) *KeywordExtractor {
	return &KeywordExtractor{normalizer: normalizer, tagger: tagger}
}

// ExtractKeywords 返回去重后的关键词集合, NER失败时降级为纯模式提取
func (k *KeywordExtractor) ExtractKeywords(ctx context.Context, text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	if strings.TrimSpace(text) == "" {
		return keywords
	}

	normalized := text
	if k.normalizer != nil {
		normalized = k.normalizer.Normalize(text)
	}

	if k.tagger != nil {
		entities, err := k.tagger.Entities(ctx, normalized)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("关键词提取: NER实体调用失败")
		}
		for _, ent := range entities {
			if _, ok := keywordEntityLabels[ent.Label]; ok {
				keywords[strings.ToLower(strings.TrimSpace(ent.Text))] = struct{}{}
			}
		}

		phrases, err := k.tagger.NounPhrases(ctx, normalized)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("关键词提取: 名词短语调用失败")
		}
		for _, phrase := range phrases {
			if len(strings.Fields(phrase)) <= 3 && len(phrase) > 2 {
				keywords[strings.ToLower(strings.TrimSpace(phrase))] = struct{}{}
			}
		}

		tokens, err := k.tagger.Tokens(ctx, normalized)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("关键词提取: 词性标注调用失败")
		}
		for _, token := range tokens {
			if !token.IsAlpha || token.IsStop || len(token.Text) <= 2 {
				continue
			}
			if _, ok := keywordPOSTags[token.POS]; !ok {
				continue
			}
			lemma := token.Lemma
			if lemma == "" {
				lemma = token.Text
			}
			keywords[strings.ToLower(lemma)] = struct{}{}
		}
	}

	// 版本号样式的技术词, 如 python3 / vue2.7
	for _, m := range techVersionPattern.FindAllString(strings.ToLower(text), -1) {
		keywords[m] = struct{}{}
	}

	// 全大写缩写词
	for _, m := range acronymPattern.FindAllString(text, -1) {
		keywords[strings.ToLower(m)] = struct{}{}
	}

	return keywords
}

// FuzzyMatch 用词序无关相似度把JD技能集合与简历技能集合对齐
// 返回的matched是jdSkills的子集; 每个匹配元素记录其最佳分数; 其余为missing
func FuzzyMatch(resumeSkills, jdSkills map[string]struct{}, threshold float64) (matched map[string]struct{}, scores map[string]float64, missing map[string]struct{}) {
	matched = make(map[string]struct{})
	scores = make(map[string]float64)
	missing = make(map[string]struct{})

	choices := make([]string, 0, len(resumeSkills))
	for skill := range resumeSkills {
		choices = append(choices, skill)
	}

	for jdSkill := range jdSkills {
		best := 0
		for _, choice := range choices {
			if s := fuzzy.TokenSortRatio(jdSkill, choice); s > best {
				best = s
			}
		}
		if len(choices) > 0 && float64(best) >= threshold {
			matched[jdSkill] = struct{}{}
			scores[jdSkill] = float64(best)
		} else {
			missing[jdSkill] = struct{}{}
		}
	}

	return matched, scores, missing
}
