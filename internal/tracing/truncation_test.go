package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10), "未超长的字符串原样返回")

	long := strings.Repeat("a", 50) + strings.Repeat("b", 50)
	truncated := TruncateString(long, 20)
	assert.LessOrEqual(t, len(truncated), 20+3)
	assert.Contains(t, truncated, "...", "截断后应带省略号")
}

func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("a"))
	assert.Equal(t, "a*", MaskPII("ab"))

	masked := MaskPII("myemail@example.com")
	assert.Equal(t, "my", masked[:2])
	assert.Equal(t, "om", masked[len(masked)-2:])
	assert.NotContains(t, masked, "@", "邮箱主体必须被掩码")
}

func TestSafeAttributeValueMasksSensitiveName(t *testing.T) {
	masked := SafeAttributeValue("user_email", "someone@example.com", DefaultMaxLength)
	assert.NotContains(t, masked, "@example.com")

	plain := SafeAttributeValue("db.statement", "SELECT 1", DefaultMaxLength)
	assert.Equal(t, "SELECT 1", plain, "非敏感属性不做掩码")
}

func TestSafeRedisKeyTruncates(t *testing.T) {
	key := "app:match:result:" + strings.Repeat("x", 200)
	safe := SafeRedisKey(key)
	assert.LessOrEqual(t, len(safe), MaxRedisLength+3)
}
