package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSimilaritySymmetry(t *testing.T) {
	cases := [][2]string{
		{"backend developer with golang experience", "golang backend engineer"},
		{"frontend react developer", "data scientist"},
		{"", "anything"},
		{"one two three", "three two one"},
	}
	for _, c := range cases {
		assert.Equal(t, TextSimilarity(c[0], c[1]), TextSimilarity(c[1], c[0]),
			"相似度必须满足对称性: %q vs %q", c[0], c[1])
	}
}

func TestTextSimilarityIdenticalTexts(t *testing.T) {
	assert.Equal(t, float64(100), TextSimilarity("senior backend engineer", "senior backend engineer"))
}

func TestTextSimilarityEmptyInputs(t *testing.T) {
	assert.Zero(t, TextSimilarity("", "backend engineer"))
	assert.Zero(t, TextSimilarity("backend engineer", ""))
	// 只剩短词时有效词集为空
	assert.Zero(t, TextSimilarity("a an to", "is of in"))
}

func TestTextSimilarityDropsShortTokens(t *testing.T) {
	// "go"长度为2被丢弃，两边只剩"backend"一个共享词
	score := TextSimilarity("go backend", "go backend")
	assert.Equal(t, float64(100), score)

	score = TextSimilarity("go backend", "go frontend")
	assert.Zero(t, score)
}

func TestTextSimilarityJaccard(t *testing.T) {
	// 交集{backend} 并集{backend, engineer, developer} → 33
	assert.Equal(t, float64(33), TextSimilarity("backend engineer", "backend developer"))
}
