package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchLocationExact(t *testing.T) {
	assert.Equal(t, float64(100), MatchLocation("Palestine", "Palestine"))
	assert.Equal(t, float64(100), MatchLocation("  palestine ", "Palestine"), "大小写与首尾空白不应影响精确匹配")
}

func TestMatchLocationContainment(t *testing.T) {
	assert.Equal(t, float64(70), MatchLocation("United States", "US"), "首字母缩写应落在包含档")
	assert.Equal(t, float64(70), MatchLocation("South Korea", "Korea"), "子串包含应得70分")
	assert.Equal(t, float64(70), MatchLocation("UK", "United Kingdom"), "缩写匹配必须双向生效")
}

func TestMatchLocationSharedWord(t *testing.T) {
	assert.Equal(t, float64(50), MatchLocation("Korea Town Office", "Republic Korea"), "共享有效词应得50分")
}

func TestMatchLocationNoOverlap(t *testing.T) {
	assert.Zero(t, MatchLocation("Egypt", "Japan"))
}

func TestMatchLocationEmptyInputs(t *testing.T) {
	assert.Zero(t, MatchLocation("", "Palestine"))
	assert.Zero(t, MatchLocation("Palestine", ""))
}
