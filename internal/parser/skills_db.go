package parser

import (
	"regexp"
	"strings"
	"sync"

	"resume-match-go/internal/constants"
)

// SkillsDatabase 技能库, 按类别维护已知技能及其别名的反向索引
// 构造后只读, 可被多个goroutine并发使用
type SkillsDatabase struct {
	categories map[string][]string
	variations map[string]string
}

var (
	defaultSkillsDB     *SkillsDatabase
	defaultSkillsDBOnce sync.Once
)

// DefaultSkillsDatabase 返回进程级共享的技能库实例, 惰性构造
func DefaultSkillsDatabase() *SkillsDatabase {
	defaultSkillsDBOnce.Do(func() {
		defaultSkillsDB = NewSkillsDatabase(defaultSkillCategories())
	})
	return defaultSkillsDB
}

// NewSkillsDatabase 根据类别表构造技能库, 测试时可注入自定义类别
func NewSkillsDatabase(categories map[string][]string) *SkillsDatabase {
	db := &SkillsDatabase{
		categories: categories,
		variations: make(map[string]string),
	}
	for _, skills := range categories {
		for _, skill := range skills {
			db.variations[strings.ToLower(skill)] = skill
			switch skill {
			case "JavaScript":
				db.variations["js"] = skill
			case "TypeScript":
				db.variations["ts"] = skill
			case "Python":
				db.variations["python3"] = skill
			case "Kubernetes":
				db.variations["k8s"] = skill
			case "PostgreSQL":
				db.variations["postgres"] = skill
			}
		}
	}
	return db
}

func defaultSkillCategories() map[string][]string {
	return map[string][]string{
		"programming_languages": {
			"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust",
			"Ruby", "PHP", "Swift", "Kotlin", "Scala", "R", "MATLAB", "Perl",
			"Objective-C", "Dart", "Elixir", "Haskell", "Julia", "Clojure",
		},
		"web_technologies": {
			"React", "Angular", "Vue.js", "Node.js", "Express.js", "Django",
			"Flask", "Spring Boot", "ASP.NET", "Laravel", "Rails", "FastAPI",
			"Next.js", "Nuxt.js", "Svelte", "GraphQL", "REST API", "WebSocket",
		},
		"databases": {
			"MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch",
			"Cassandra", "Neo4j", "DynamoDB", "SQLite", "Oracle", "SQL Server",
			"MariaDB", "CouchDB", "InfluxDB", "Amazon RDS",
		},
		"cloud_platforms": {
			"AWS", "Azure", "Google Cloud", "GCP", "Heroku", "DigitalOcean",
			"Kubernetes", "Docker", "Terraform", "CloudFormation", "Ansible",
			"Jenkins", "GitLab CI", "GitHub Actions", "CircleCI",
		},
		"data_science": {
			"Machine Learning", "Deep Learning", "NLP", "Computer Vision",
			"TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "NumPy",
			"Matplotlib", "Seaborn", "Jupyter", "Apache Spark", "Hadoop",
			"Tableau", "Power BI", "Apache Kafka", "Apache Airflow",
		},
		"mobile_development": {
			"React Native", "Flutter", "Android", "iOS", "Xamarin",
			"Ionic", "Cordova", "Unity", "Unreal Engine",
		},
		"soft_skills": {
			"Leadership", "Communication", "Problem Solving", "Team Work",
			"Project Management", "Agile", "Scrum", "Critical Thinking",
			"Analytical Thinking", "Creativity", "Adaptability",
		},
	}
}

var (
	jsFrameworkPattern   = regexp.MustCompile(`(?i)\b(\w+)\.js\b`)
	apacheProjectPattern = regexp.MustCompile(`(?i)\bApache\s+(\w+)\b`)
	sqlVariantPattern    = regexp.MustCompile(`(?i)\b(\w+)SQL\b`)
)

// ExtractSkills 从文本中提取已知技能, 返回去重后的原始写法列表
func (db *SkillsDatabase) ExtractSkills(text string) []string {
	if text == "" {
		return nil
	}
	textLower := strings.ToLower(text)
	found := make(map[string]struct{})

	// 直接子串匹配别名表
	for alias, original := range db.variations {
		if strings.Contains(textLower, alias) {
			found[original] = struct{}{}
		}
	}

	// 框架类模式补充匹配, 只保留库中已知的技术名
	for _, m := range jsFrameworkPattern.FindAllStringSubmatch(text, -1) {
		candidate := m[1] + ".js"
		if canon, ok := db.variations[strings.ToLower(candidate)]; ok {
			found[canon] = struct{}{}
		}
	}
	for _, pattern := range []*regexp.Regexp{apacheProjectPattern, sqlVariantPattern} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if canon, ok := db.variations[strings.ToLower(m[0])]; ok {
				found[canon] = struct{}{}
			}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	return skills
}

// ExtractSkillCandidates 对分隔符拆分出的候选词逐个识别技能
// 超长候选视为不合理的技能名直接丢弃
func (db *SkillsDatabase) ExtractSkillCandidates(candidates []string) []string {
	found := make(map[string]struct{})
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || len(candidate) >= constants.MaxSkillNameLength {
			continue
		}
		for _, skill := range db.ExtractSkills(candidate) {
			found[skill] = struct{}{}
		}
	}
	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	return skills
}
