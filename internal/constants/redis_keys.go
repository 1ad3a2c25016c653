package constants

import "time"

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "resume_match"

	// ParseModulePrefix 解析模块
	ParseModulePrefix = "parse"
	// ScoreModulePrefix 打分模块
	ScoreModulePrefix = "score"

	// EntityResult 解析结果实体
	EntityResult = "result"
	// EntityReport 打分报告实体
	EntityReport = "report"

	// KeyParseResult 解析结果缓存 (STRING, JSON编码)
	// 格式: resume_match:parse:result:{md5}
	KeyParseResult = AppPrefix + ":" + ParseModulePrefix + ":" + EntityResult + ":%s"

	// KeyScoreReport 打分报告缓存 (STRING, JSON编码)
	// 格式: resume_match:score:report:{resume_md5}:{jd_md5}
	KeyScoreReport = AppPrefix + ":" + ScoreModulePrefix + ":" + EntityReport + ":%s:%s"
)

// 缓存过期时间
const (
	// DefaultParseCacheTTL 解析结果缓存的默认过期时间
	DefaultParseCacheTTL = 24 * time.Hour
)
