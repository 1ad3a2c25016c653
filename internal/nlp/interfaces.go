package nlp

import "context"

// EntityLabel 命名实体标签词汇表
type EntityLabel string

const (
	// LabelPerson 人名
	LabelPerson EntityLabel = "PERSON"
	// LabelOrg 组织机构
	LabelOrg EntityLabel = "ORG"
	// LabelGPE 地缘政治实体（城市/国家等）
	LabelGPE EntityLabel = "GPE"
	// LabelLoc 其他地点
	LabelLoc EntityLabel = "LOC"
	// LabelProduct 产品/技术名
	LabelProduct EntityLabel = "PRODUCT"
)

// Entity 一次NER调用返回的单个实体
type Entity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
	Start int         `json:"start"` // 在原文中的字符偏移
}

// Token 词法分析结果中的单个词条
type Token struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`    // 词元形式
	POS     string `json:"pos"`      // 词性: NOUN, PROPN, ADJ, VERB...
	IsStop  bool   `json:"is_stop"`  // 是否停用词
	IsAlpha bool   `json:"is_alpha"` // 是否纯字母
}

// Tagger 命名实体识别与词法分析能力（外部模型，黑盒）
// 任一方法失败时调用方按"降级"处理：记录警告并当作空结果继续
type Tagger interface {
	// Entities 返回文本中的命名实体
	Entities(ctx context.Context, text string) ([]Entity, error)
	// NounPhrases 返回名词短语
	NounPhrases(ctx context.Context, text string) ([]string, error)
	// Tokens 返回带词性标注的词条序列
	Tokens(ctx context.Context, text string) ([]Token, error)
}

// Thesaurus 同义词查询能力，仅用于短的规范技能词条的扩展
type Thesaurus interface {
	// Synonyms 返回词的同义词集合
	Synonyms(ctx context.Context, word string) ([]string, error)
}

// SimilarityProvider 语义相似度能力
// 返回两段文本句向量的余弦相似度，数学上在[-1,1]
type SimilarityProvider interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}
