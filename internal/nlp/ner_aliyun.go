package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"resume-match-go/internal/config"
)

// AliyunNLUTagger 通过阿里云NLU兼容服务实现Tagger接口
// 单次请求可同时取回实体、名词短语与词法标注
type AliyunNLUTagger struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewAliyunNLUTagger 创建NLU客户端
func NewAliyunNLUTagger(apiKey string, cfg config.NLUConfig) (*AliyunNLUTagger, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("NLU服务地址不能为空")
	}

	timeout := 10 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &AliyunNLUTagger{
		apiKey:     apiKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.New(os.Stderr, "[AliyunNLU] ", log.LstdFlags),
	}, nil
}

// nluRequest NLU请求结构
type nluRequest struct {
	Text  string   `json:"text"`
	Tasks []string `json:"tasks"` // "ner" / "chunk" / "pos"
}

// nluResponse NLU响应结构
type nluResponse struct {
	Entities []Entity  `json:"entities,omitempty"`
	Phrases  []string  `json:"phrases,omitempty"`
	Tokens   []Token   `json:"tokens,omitempty"`
	Error    *nluError `json:"error,omitempty"`
}

// nluError API级别错误
type nluError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Entities 返回文本中的命名实体
func (t *AliyunNLUTagger) Entities(ctx context.Context, text string) ([]Entity, error) {
	resp, err := t.analyze(ctx, text, []string{"ner"})
	if err != nil {
		return nil, err
	}
	return resp.Entities, nil
}

// NounPhrases 返回名词短语
func (t *AliyunNLUTagger) NounPhrases(ctx context.Context, text string) ([]string, error) {
	resp, err := t.analyze(ctx, text, []string{"chunk"})
	if err != nil {
		return nil, err
	}
	return resp.Phrases, nil
}

// Tokens 返回带词性标注的词条序列
func (t *AliyunNLUTagger) Tokens(ctx context.Context, text string) ([]Token, error) {
	resp, err := t.analyze(ctx, text, []string{"pos"})
	if err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

// analyze 执行一次NLU请求
func (t *AliyunNLUTagger) analyze(ctx context.Context, text string, tasks []string) (*nluResponse, error) {
	if text == "" {
		return &nluResponse{}, nil
	}

	jsonData, err := json.Marshal(nluRequest{Text: text, Tasks: tasks})
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.logger.Printf("NLU API call failed: status=%d body=%.200s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("NLU API调用失败, 状态码: %d", resp.StatusCode)
	}

	var parsed nluResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("NLU API返回错误: %s (code=%s)", parsed.Error.Message, parsed.Error.Code)
	}

	return &parsed, nil
}
