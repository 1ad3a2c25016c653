package constants

// 应用级常量
const (
	// ParserVersion 当前启发式解析器版本，写入解析元数据与持久化记录
	ParserVersion = "1.0.0"

	// DefaultFuzzyThreshold 模糊匹配默认阈值（0-100分制）
	DefaultFuzzyThreshold = 85

	// MaxSkillNameLength 技能候选词的最大合理长度，超过视为非技能文本
	MaxSkillNameLength = 50

	// MinSectionLength 有效章节正文的最小字符数
	MinSectionLength = 5

	// NameSearchWindow 姓名实体的启发式窗口：偏移量小于该值的PERSON实体才视为候选姓名
	NameSearchWindow = 200
)

// 打分权重，四项之和恒为1.00
const (
	WeightSemantic      = 0.40
	WeightSkillMatch    = 0.35
	WeightCriticalMatch = 0.20
	WeightLength        = 0.05
)
