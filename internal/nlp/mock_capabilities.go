package nlp

import "context"

// 本文件提供各外部能力的静态实现，用于测试和无外部服务的离线场景

// StaticTagger 返回预置结果的Tagger实现
type StaticTagger struct {
	Ents    []Entity
	Phrases []string
	Toks    []Token
	Err     error
}

// Entities 返回预置实体
func (s *StaticTagger) Entities(ctx context.Context, text string) ([]Entity, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Ents, nil
}

// NounPhrases 返回预置名词短语
func (s *StaticTagger) NounPhrases(ctx context.Context, text string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Phrases, nil
}

// Tokens 返回预置词条
func (s *StaticTagger) Tokens(ctx context.Context, text string) ([]Token, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Toks, nil
}

// StaticThesaurus 返回固定映射的同义词实现
type StaticThesaurus struct {
	Mapping map[string][]string
	Err     error
}

// Synonyms 查询固定映射
func (s *StaticThesaurus) Synonyms(ctx context.Context, word string) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Mapping[word], nil
}

// StaticSimilarity 返回固定相似度值的实现
type StaticSimilarity struct {
	Value float64
	Err   error
}

// Similarity 返回固定值
func (s *StaticSimilarity) Similarity(ctx context.Context, a, b string) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Value, nil
}
