package parser

import (
	"context"
	"strings"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/nlp"
)

// 同义词扩展的限制参数, 用于抑制过于宽泛的通用词
const (
	maxThesaurusTerms = 3
	minSynonymLength  = 3
	maxCanonicalWords = 2
)

// 通用词停用表, 这些同义词对技能归一化没有区分度
var genericSynonymStoplist = map[string]struct{}{
	"use":  {},
	"work": {},
	"go":   {},
	"run":  {},
}

// TextNormalizer 把文本中的技能别名归一化为规范写法
// 反向查找表在构造时一次性建立, 之后只读
type TextNormalizer struct {
	termToCanonical map[string]string
}

// NewTextNormalizer 构建归一化器
// thesaurus 可为nil; 提供时只对不超过两个词的规范词做同义词扩展,
// 每个规范词最多追加三个同义词, 过短或过于通用的词被过滤
func NewTextNormalizer(ctx context.Context, synonyms SkillSynonyms, thesaurus nlp.Thesaurus) *TextNormalizer {
	lookup := make(map[string]string)

	for canonical, aliases := range synonyms {
		all := make(map[string]struct{}, len(aliases)+1)
		all[canonical] = struct{}{}
		for _, alias := range aliases {
			all[alias] = struct{}{}
		}

		if thesaurus != nil && len(strings.Fields(canonical)) <= maxCanonicalWords {
			extra, err := thesaurus.Synonyms(ctx, canonical)
			if err != nil {
				logger.Warn().Err(err).Str("term", canonical).Msg("同义词扩展失败, 跳过该词")
			} else {
				added := 0
				for _, syn := range extra {
					if added >= maxThesaurusTerms {
						break
					}
					syn = strings.ToLower(strings.TrimSpace(syn))
					if len(syn) < minSynonymLength {
						continue
					}
					if _, generic := genericSynonymStoplist[syn]; generic {
						continue
					}
					if _, exists := all[syn]; exists {
						continue
					}
					all[syn] = struct{}{}
					added++
				}
			}
		}

		for term := range all {
			lookup[strings.ToLower(term)] = canonical
		}
	}

	return &TextNormalizer{termToCanonical: lookup}
}

// Normalize 逐词替换: 按空白切分, 去掉每个词的非词字符,
// 命中反向查找表则替换为规范写法, 否则保留清洗后的词
// 词序不变, 输出为小写
func (n *TextNormalizer) Normalize(text string) string {
	words := strings.Fields(strings.ToLower(text))
	normalized := make([]string, 0, len(words))

	for _, word := range words {
		clean := nonWordPattern.ReplaceAllString(word, "")
		if canonical, ok := n.termToCanonical[clean]; ok {
			normalized = append(normalized, canonical)
		} else {
			normalized = append(normalized, clean)
		}
	}

	return strings.Join(normalized, " ")
}
