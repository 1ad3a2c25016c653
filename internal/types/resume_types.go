package types

// Sections 表示切分后的简历章节映射：章节名 -> 章节正文
// 键唯一；同名章节在切分阶段已按空行拼接合并
type Sections map[string]string

// 固定的章节名称词汇表。启发式识别出的动态章节使用小写下划线slug作为键
const (
	SectionHeader         = "header"
	SectionName           = "name"
	SectionContactInfo    = "contact_info"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionLanguages      = "languages"
	SectionAchievements   = "achievements"
	SectionInterests      = "interests"
	SectionReferences     = "references"
	SectionVolunteer      = "volunteer"
	// SectionContent 当文本中找不到任何可识别的章节标题时，整份文档归入此键
	SectionContent = "content"
	// SectionOther 空文本的退化结果
	SectionOther = "other"
)

// PersonalInfo 候选人联系信息
// 所有字段各自独立可选：空字符串表示"未检测到"，不是错误
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Education 教育经历条目
type Education struct {
	Institution  string `json:"institution,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	GPA          string `json:"gpa,omitempty"`
}

// Experience 工作经历条目
type Experience struct {
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Project 项目经历条目
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

// ResumeDocument 结构化简历记录，由实体抽取器自底向上构建
// 构建完成后视为不可变；所有字段均可缺省
type ResumeDocument struct {
	PersonalInfo   PersonalInfo `json:"personal_info"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
	Languages      []string     `json:"languages"`
	Projects       []Project    `json:"projects"`
	Summary        string       `json:"summary,omitempty"`
}

// ScoreReport 一次简历与JD匹配的打分结果
// 各分项均在[0,100]；final_score为固定权重线性组合0.40/0.35/0.20/0.05
// 每次评估独立计算，无状态
type ScoreReport struct {
	SemanticScore      float64            `json:"semantic_score"`
	SkillMatchScore    float64            `json:"skill_match_score"`
	CriticalMatchScore float64            `json:"critical_match_score"`
	LengthScore        float64            `json:"length_score"`
	FinalScore         float64            `json:"final_score"`
	MatchedSkills      []string           `json:"matched_skills"`
	MissingSkills      []string           `json:"missing_skills"`
	SkillScores        map[string]float64 `json:"skill_scores"`
	TotalJDSkills      int                `json:"total_jd_skills"`
	TotalResumeSkills  int                `json:"total_resume_skills"`
}

// SectionStats 单个章节的统计信息，用于解析响应中的摘要
type SectionStats struct {
	CharCount  int  `json:"char_count"`
	WordCount  int  `json:"word_count"`
	LineCount  int  `json:"line_count"`
	HasBullets bool `json:"has_bullets"`
	HasDates   bool `json:"has_dates"`
}

// ParseMetadata 单次解析的元信息
type ParseMetadata struct {
	SourceFile       string                  `json:"source_file,omitempty"`
	PageCount        int                     `json:"page_count,omitempty"`
	ProcessingTimeMS int64                   `json:"processing_time_ms"`
	ParserVersion    string                  `json:"parser_version"`
	SectionsFound    []string                `json:"sections_found"`
	SectionStats     map[string]SectionStats `json:"section_stats,omitempty"`
	FromCache        bool                    `json:"from_cache"`
}

// ParseResult 解析流水线的完整输出
type ParseResult struct {
	Resume   ResumeDocument `json:"resume_data"`
	Metadata ParseMetadata  `json:"metadata"`
}

// BatchSummary 批量解析的汇总统计
type BatchSummary struct {
	TotalFiles int `json:"total_files"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BatchResult 批量解析结果：成功与失败按文档路径隔离，单个文档失败不影响整批
type BatchResult struct {
	Results map[string]*ParseResult `json:"results"`
	Errors  map[string]string       `json:"errors"`
	Summary BatchSummary            `json:"summary"`
}
