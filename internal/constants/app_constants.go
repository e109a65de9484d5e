package constants

import "time"

const (
	// DefaultEngineVersion 当前匹配引擎版本，写入事件和日志便于排查
	DefaultEngineVersion = "1.0"

	// JobSnapshotCacheDuration 岗位快照缓存有效期
	JobSnapshotCacheDuration = 24 * time.Hour

	// DefaultSuggestionLimit 未显式指定limit时返回的建议条数
	DefaultSuggestionLimit = 20
	// MaxSuggestionLimit 单次请求允许返回的最大建议条数
	MaxSuggestionLimit = 100
)
