package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-match-go/internal/nlp"
)

func TestNormalizeReplacesAliases(t *testing.T) {
	synonyms := SkillSynonyms{
		"javascript": {"js", "ecmascript"},
		"kubernetes": {"k8s"},
	}
	normalizer := NewTextNormalizer(context.Background(), synonyms, nil)

	got := normalizer.Normalize("Expert in JS and K8s, shipped ECMAScript apps")
	assert.Equal(t, "expert in javascript and kubernetes shipped javascript apps", got, "别名应替换为规范写法")
}

// TestNormalizePreservesOrderAndCase 词序不变, 输出小写, 未命中的词仅去掉标点
func TestNormalizePreservesOrderAndCase(t *testing.T) {
	normalizer := NewTextNormalizer(context.Background(), SkillSynonyms{}, nil)

	got := normalizer.Normalize("Built REST-ful APIs, fast!")
	assert.Equal(t, "built restful apis fast", got)
}

func TestNormalizeWithThesaurusExpansion(t *testing.T) {
	thesaurus := &nlp.StaticThesaurus{Mapping: map[string][]string{
		// 过短或过于通用的同义词应被过滤, 只留下有效扩展
		"javascript": {"scripting", "js", "go", "use", "a1", "frontend scripting", "extra one", "extra two"},
	}}
	synonyms := SkillSynonyms{"javascript": {}}
	normalizer := NewTextNormalizer(context.Background(), synonyms, thesaurus)

	got := normalizer.Normalize("loves scripting daily")
	assert.Equal(t, "loves javascript daily", got, "词库扩展出的同义词应折叠到规范词")

	// use在通用词停用表内, 不应被归一化
	assert.Equal(t, "use", normalizer.Normalize("use"))
	// go只有两个字符, 不应被归一化
	assert.Equal(t, "go", normalizer.Normalize("go"))
}

// TestNormalizeExpansionOnlyForShortTerms 超过两个词的规范词不做词库扩展
func TestNormalizeExpansionOnlyForShortTerms(t *testing.T) {
	thesaurus := &nlp.StaticThesaurus{Mapping: map[string][]string{
		"continuous integration pipeline": {"assembly line"},
	}}
	synonyms := SkillSynonyms{"continuous integration pipeline": {}}
	normalizer := NewTextNormalizer(context.Background(), synonyms, thesaurus)

	got := normalizer.Normalize("assembly")
	assert.Equal(t, "assembly", got, "长规范词不应触发词库扩展")
}
