package storage

import (
	"encoding/json"
	"testing"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/storage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginalObjectKey(t *testing.T) {
	key := originalObjectKey("d41d8cd98f00b204e9800998ecf8427e", "resume.pdf")
	assert.Equal(t, "originals/d4/d41d8cd98f00b204e9800998ecf8427e.pdf", key, "对象键应按指纹前缀分桶并保留扩展名")

	// 无扩展名时默认按pdf归档
	key = originalObjectKey("d41d8cd98f00b204e9800998ecf8427e", "resume")
	assert.Equal(t, "originals/d4/d41d8cd98f00b204e9800998ecf8427e.pdf", key)
}

func TestGetParseCacheTTL(t *testing.T) {
	r := &Redis{config: &config.RedisConfig{ParseCacheTTLHours: 48}}
	assert.Equal(t, 48*time.Hour, r.GetParseCacheTTL())

	// 未配置时回退到默认TTL
	r = &Redis{config: &config.RedisConfig{}}
	assert.Equal(t, constants.DefaultParseCacheTTL, r.GetParseCacheTTL())
}

func TestMustJSONRoundTrip(t *testing.T) {
	data := models.MustJSON([]string{"python", "sql"})

	var skills []string
	require.NoError(t, json.Unmarshal(data, &skills))
	assert.Equal(t, []string{"python", "sql"}, skills)

	// 不可序列化的值退化为JSON null
	assert.Equal(t, "null", string(models.MustJSON(make(chan int))))
}
