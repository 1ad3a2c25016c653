package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"空值", "", ""},
		{"单字符", "a", "*"},
		{"双字符", "张三", "张*"},
		{"三字符", "王小明", "王*明"},
		{"邮箱", "myemail@example.com", "my***************om"},
		{"电话", "13812345678", "13*******78"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskPII(tt.input), "掩码结果与预期不符")
		})
	}
}

func TestSafeAttributeValueMasksSensitiveNames(t *testing.T) {
	masked := SafeAttributeValue("candidate_email", "john@example.com", DefaultMaxLength)
	assert.NotContains(t, masked, "john", "敏感字段值不应保留明文")

	// 非敏感字段只做截断
	plain := SafeAttributeValue("section", "experience", DefaultMaxLength)
	assert.Equal(t, "experience", plain)
}

func TestTruncateStringKeepsEnds(t *testing.T) {
	long := strings.Repeat("a", 100) + strings.Repeat("b", 100)
	out := TruncateString(long, 21)

	assert.LessOrEqual(t, len([]rune(out)), 21)
	assert.Contains(t, out, "...")
	assert.True(t, strings.HasPrefix(out, "a"), "应保留开头")
	assert.True(t, strings.HasSuffix(out, "b"), "应保留结尾")

	// 不超长时原样返回
	assert.Equal(t, "short", TruncateString("short", 10))
}

func TestSafeResumeContent(t *testing.T) {
	long := strings.Repeat("resume text ", 40)
	out := SafeResumeContent(long)
	assert.LessOrEqual(t, len([]rune(out)), MaxResumeLength)
}
