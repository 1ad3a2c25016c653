package parser

import "sync"

// SkillSynonyms 规范技能词到其别名列表的静态映射
// 键为规范写法, 值为应当折叠到该规范写法的同义词
type SkillSynonyms map[string][]string

var (
	defaultSynonyms     SkillSynonyms
	defaultSynonymsOnce sync.Once
)

// DefaultSkillSynonyms 返回进程级共享的同义词表, 惰性构造且构造后只读
func DefaultSkillSynonyms() SkillSynonyms {
	defaultSynonymsOnce.Do(func() {
		defaultSynonyms = SkillSynonyms{
			"javascript":       {"js", "ecmascript", "es6", "es2015"},
			"typescript":       {"ts"},
			"python":           {"python3", "py"},
			"java":             {"jdk", "jvm"},
			"c++":              {"cpp", "cplusplus"},
			"c#":               {"csharp", "dotnet c#"},
			"golang":           {"go"},
			"kubernetes":       {"k8s", "kube"},
			"docker":           {"containerization", "containers"},
			"aws":              {"amazon web services", "ec2", "s3"},
			"gcp":              {"google cloud", "google cloud platform"},
			"azure":            {"microsoft azure"},
			"postgresql":       {"postgres", "psql"},
			"mysql":            {"my sql"},
			"mongodb":          {"mongo"},
			"redis":            {"redis cache"},
			"react":            {"reactjs", "react.js"},
			"angular":          {"angularjs", "angular.js"},
			"vue":              {"vuejs", "vue.js"},
			"node.js":          {"nodejs", "node"},
			"machine learning": {"ml"},
			"deep learning":    {"dl", "neural networks"},
			"nlp":              {"natural language processing"},
			"ci/cd":            {"continuous integration", "continuous delivery", "cicd"},
			"rest":             {"restful", "rest api"},
			"sql":              {"structured query language"},
			"devops":           {"dev ops"},
			"microservices":    {"micro services", "micro-services"},
			"agile":            {"scrum", "kanban"},
			"git":              {"github", "gitlab", "version control"},
		}
	})
	return defaultSynonyms
}
