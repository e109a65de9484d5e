package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// MatchModulePrefix 匹配模块
	MatchModulePrefix = "match"
	// JobModulePrefix 岗位模块
	JobModulePrefix = "job"

	// EntityResult 排序结果实体
	EntityResult = "result"
	// EntityLock 分布式锁实体
	EntityLock = "lock"
	// EntitySnapshot 快照实体
	EntitySnapshot = "snapshot"

	// KeyMatchResult 排序结果缓存 (STRING, JSON序列化的建议列表)
	// 格式: app:match:result:{orgID}:{jobID}
	KeyMatchResult = AppPrefix + ":" + MatchModulePrefix + ":" + EntityResult + ":%s:%s"

	// KeyMatchLock 排序计算分布式锁 (STRING)
	// 格式: app:match:lock:{orgID}:{jobID}
	KeyMatchLock = AppPrefix + ":" + MatchModulePrefix + ":" + EntityLock + ":%s:%s"

	// KeyJobSnapshot 岗位快照缓存 (STRING, JSON)
	// 格式: app:job:snapshot:{jobID}
	KeyJobSnapshot = AppPrefix + ":" + JobModulePrefix + ":" + EntitySnapshot + ":%s"
)
