package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"resume-match-go/internal/config"
)

// DatamuseThesaurus 基于Datamuse的同义词查询实现
// 接口文档: https://www.datamuse.com/api/ (rel_syn查询)
type DatamuseThesaurus struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewDatamuseThesaurus 创建Datamuse同义词客户端
func NewDatamuseThesaurus(cfg config.ThesaurusConfig) (*DatamuseThesaurus, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.datamuse.com"
	}

	timeout := 5 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &DatamuseThesaurus{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.New(os.Stderr, "[Thesaurus] ", log.LstdFlags),
	}, nil
}

// datamuseWord Datamuse响应中的单个词条
type datamuseWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Synonyms 返回词的同义词集合
func (d *DatamuseThesaurus) Synonyms(ctx context.Context, word string) ([]string, error) {
	if word == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/words?rel_syn=%s&max=10", d.baseURL, url.QueryEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		d.logger.Printf("synonym lookup failed: word=%s status=%d", word, resp.StatusCode)
		return nil, fmt.Errorf("同义词查询失败, 状态码: %d", resp.StatusCode)
	}

	var words []datamuseWord
	if err := json.Unmarshal(body, &words); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}

	synonyms := make([]string, 0, len(words))
	for _, w := range words {
		if w.Word != "" {
			synonyms = append(synonyms, w.Word)
		}
	}
	return synonyms, nil
}
