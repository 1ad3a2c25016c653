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

	"github.com/cloudwego/eino/components/embedding"

	"resume-match-go/internal/config"
)

// AliyunEmbedder 实现 embedding.Embedder 接口
// 通过阿里云OpenAI兼容endpoint获取句向量
type AliyunEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

// NewAliyunEmbedder 创建新的阿里云Embedder (using OpenAI compatible endpoint)
func NewAliyunEmbedder(apiKey string, embeddingCfg config.EmbeddingConfig) (*AliyunEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := embeddingCfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}

	return &AliyunEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: embeddingCfg.Dimensions,
		httpClient: &http.Client{},
		baseURL:    baseURL,
		logger:     log.New(os.Stderr, "[AliyunEmbedder] ", log.LstdFlags),
	}, nil
}

// GetDimensions 返回嵌入器配置的维度
func (a *AliyunEmbedder) GetDimensions() int {
	return a.dimensions
}

// AliyunOpenAIEmbeddingRequest 阿里云Embedding请求结构 (OpenAI compatible)
type AliyunOpenAIEmbeddingRequest struct {
	Input          interface{} `json:"input"` // string or []string
	Model          string      `json:"model"`
	Dimensions     int         `json:"dimensions,omitempty"`
	EncodingFormat string      `json:"encoding_format,omitempty"`
}

// AliyunOpenAIEmbeddingResponse 阿里云Embedding响应结构 (OpenAI compatible)
type AliyunOpenAIEmbeddingResponse struct {
	Object string                  `json:"object"`
	Data   []AliyunOpenAIDataEntry `json:"data"`
	Model  string                  `json:"model"`
	Usage  AliyunOpenAIUsage       `json:"usage"`
	ID     string                  `json:"id,omitempty"`
	Error  *AliyunOpenAIError      `json:"error,omitempty"`
}

// AliyunOpenAIDataEntry part of the response
type AliyunOpenAIDataEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// AliyunOpenAIUsage part of the response
type AliyunOpenAIUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// AliyunOpenAIError for API-level errors returned with 200 OK
type AliyunOpenAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// EmbedStrings 批量获取文本向量
func (a *AliyunEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	options := &embedding.Options{}
	embedding.GetCommonOptions(options, opts...)

	effectiveModel := a.model
	if options.Model != nil && *options.Model != "" {
		effectiveModel = *options.Model
	}

	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	var inputBody interface{}
	if len(texts) == 1 {
		inputBody = texts[0]
	} else {
		inputBody = texts
	}

	reqBody := AliyunOpenAIEmbeddingRequest{
		Input: inputBody,
		Model: effectiveModel,
	}
	if a.dimensions > 0 {
		reqBody.Dimensions = a.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError AliyunOpenAIError
		detailedError := fmt.Errorf("API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
		// 尝试从body中解析更详细的错误信息
		if json.Unmarshal(body, &apiError) == nil && apiError.Message != "" {
			detailedError = fmt.Errorf("API调用失败, 状态码: %d, 类型: %s, 错误: %s, Code: %s",
				resp.StatusCode, apiError.Type, apiError.Message, apiError.Code)
		}
		a.logger.Printf("API call failed: %v", detailedError)
		return nil, detailedError
	}

	var parsedResp AliyunOpenAIEmbeddingResponse
	if err := json.Unmarshal(body, &parsedResp); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}

	// API级别错误可能随200返回
	if parsedResp.Error != nil && parsedResp.Error.Message != "" {
		return nil, fmt.Errorf("API返回错误: 类型=%s, 消息='%s', Code=%s",
			parsedResp.Error.Type, parsedResp.Error.Message, parsedResp.Error.Code)
	}

	outputEmbeddings := make([][]float64, len(parsedResp.Data))
	for i, dataEntry := range parsedResp.Data {
		outputEmbeddings[i] = dataEntry.Embedding
	}

	a.logger.Printf("Embedded %d texts, prompt tokens: %d", len(texts), parsedResp.Usage.PromptTokens)
	return outputEmbeddings, nil
}
