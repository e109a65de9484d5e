package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchExperienceBaseTiers(t *testing.T) {
	// 岗位级别含senior且基础档位达标时直接返回档位
	assert.Equal(t, float64(100), MatchExperience("Senior Engineer", 85, 0))
	assert.Equal(t, float64(75), MatchExperience("Senior Engineer", 65, 0))
}

func TestMatchExperienceSeniorPenalty(t *testing.T) {
	// 基础档位不足75时降半
	assert.Equal(t, float64(25), MatchExperience("Senior Engineer", 45, 0))
	assert.Equal(t, float64(12.5), MatchExperience("Lead Developer", 10, 0))
}

func TestMatchExperienceSeniorCapped(t *testing.T) {
	// 场次加分可以把中间值推过100，senior分支必须封顶
	assert.Equal(t, float64(100), MatchExperience("Principal Engineer", 90, 12))
}

func TestMatchExperienceMidTier(t *testing.T) {
	assert.Equal(t, float64(50), MatchExperience("Mid-level Developer", 45, 0))
	// 基础档位25不足50时乘0.7
	assert.Equal(t, float64(17.5), MatchExperience("Intermediate Developer", 20, 0))
}

func TestMatchExperienceJuniorPenalty(t *testing.T) {
	assert.Equal(t, float64(25), MatchExperience("Junior Developer", 20, 0))
	// 基础档位超过75时乘0.8
	assert.Equal(t, float64(80), MatchExperience("Entry Level", 85, 0))
}

func TestMatchExperienceInterviewCountBonus(t *testing.T) {
	assert.Equal(t, float64(85), MatchExperience("Senior Engineer", 65, 10), "10场以上加10分")
	assert.Equal(t, float64(80), MatchExperience("Senior Engineer", 65, 5), "5场以上加5分")
}

func TestMatchExperienceNeutralDefault(t *testing.T) {
	// 岗位级别未识别时固定返回50，与候选人强弱无关
	assert.Equal(t, float64(50), MatchExperience("", 95, 20))
	assert.Equal(t, float64(50), MatchExperience("wizard", 5, 0))
}
