package matching

import (
	"sort"
	"strings"

	"github.com/yamamahashayer/Minterviewer-sub004/internal/types"
)

// synonymPair 展开后的(规范词, 同义子串)二元组
type synonymPair struct {
	canonical string
	synonym   string
}

// SkillNormalizer 把自由文本技能标签折叠为规范小写词。
// 同义词表来自配置，构造后只读，可被多个goroutine并发使用。
type SkillNormalizer struct {
	pairs []synonymPair
}

// NewSkillNormalizer 从同义词表构建归一化器。
// 匹配按同义词长度从长到短进行，保证"nodejs"优先命中node.js
// 而不是被更短的"js"抢先折叠成javascript；同长度按字典序，
// 使结果与map遍历顺序无关。
func NewSkillNormalizer(table map[string][]string) *SkillNormalizer {
	pairs := make([]synonymPair, 0, len(table)*2)
	for canonical, synonyms := range table {
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if canonical == "" {
			continue
		}
		for _, syn := range synonyms {
			syn = strings.ToLower(strings.TrimSpace(syn))
			if syn == "" {
				continue
			}
			pairs = append(pairs, synonymPair{canonical: canonical, synonym: syn})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if len(pairs[i].synonym) != len(pairs[j].synonym) {
			return len(pairs[i].synonym) > len(pairs[j].synonym)
		}
		if pairs[i].synonym != pairs[j].synonym {
			return pairs[i].synonym < pairs[j].synonym
		}
		return pairs[i].canonical < pairs[j].canonical
	})

	return &SkillNormalizer{pairs: pairs}
}

// Normalize 把单个技能标签折叠为规范词。
// 未命中同义词表时原样返回小写去空格后的标签。
func (n *SkillNormalizer) Normalize(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return ""
	}
	for _, p := range n.pairs {
		if strings.Contains(label, p.synonym) {
			return p.canonical
		}
	}
	return label
}

// NormalizeAll 归一化一组标签，去重并保持首次出现的顺序
func (n *SkillNormalizer) NormalizeAll(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		token := n.Normalize(label)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

// NormalizeEntries 归一化候选人技能条目，只取名称，熟练度不参与匹配
func (n *SkillNormalizer) NormalizeEntries(entries []types.SkillEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Name)
	}
	return n.NormalizeAll(labels)
}
