package parser

import "regexp"

// 简历解析使用的预编译正则集合
// 大小写不敏感与锚定语义与各提取器的约定保持一致
var (
	emailPattern    = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?1?[-.\s]?)?(\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})`)
	linkedinPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/(?:in|pub)/[\w\-]+/?`)
	githubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w\-]+/?`)

	// 日期模式按优先级排列, 年份区间拆成两个捕获组
	monthYearPattern = regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}\b`)
	slashDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	yearRangePattern = regexp.MustCompile(`(?i)\b(\d{4})\s*[-–—]\s*(\d{4}|Present|Current|Now)\b`)
	bareYearPattern  = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	degreePattern = regexp.MustCompile(`(?i)\b(?:Bachelor|Master|PhD|Ph\.D|MBA|MS|BS|BA|MA|M\.S\.|B\.S\.|B\.A\.|M\.A\.)(?:\s+(?:of|in|degree))?\s+[\w\s&,-]+`)
	gpaPattern    = regexp.MustCompile(`(?i)(?:GPA|Grade Point Average)[\s:]*(\d+\.?\d*)\s*(?:/\s*\d+\.?\d*)?`)

	urlPattern = regexp.MustCompile(`https?://[^\s]+`)

	// 分块边界: 行首条件代替原有的前瞻切分
	educationBoundary  = regexp.MustCompile(`^\w`)
	experienceBoundary = regexp.MustCompile(`(?i)^\w.*(?:\bat\b|@|\|)|^\w.*\d{4}`)
	projectBoundary    = regexp.MustCompile(`^\w.*:|^\w.*[-–—]`)

	// 经历首行: 职位 分隔符 公司 [| 地点]
	positionCompanyPattern = regexp.MustCompile(`(?i)^(.+?)\s+(?:at|@|\||[-–—])\s+(.+?)(?:\s*\|\s*(.+?))?$`)

	bulletPattern    = regexp.MustCompile(`[•◦▪▫‣⁃*\-]`)
	delimiterPattern = regexp.MustCompile(`[,;|\n]`)

	acronymPattern     = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	techVersionPattern = regexp.MustCompile(`\b[a-zA-Z]+[0-9]+(?:\.[0-9]+)*\b`)

	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// contactPatterns 用于判定某行是否包含联系方式, 也用于合成contact_info小节
var contactPatterns = map[string]*regexp.Regexp{
	"email":    emailPattern,
	"phone":    phonePattern,
	"linkedin": linkedinPattern,
	"github":   githubPattern,
}

// sectionHeaderPatterns 规范小节名到其标题行正则列表的固定映射
var sectionHeaderPatterns = map[string][]*regexp.Regexp{
	"contact_info": {
		regexp.MustCompile(`(?i)^\s*contact\s*(?:info|information)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*personal\s*(?:info|information|details)?\s*:?\s*$`),
	},
	"summary": {
		regexp.MustCompile(`(?i)^\s*(?:professional\s+|executive\s+)?summary\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*(?:career\s+)?(?:summary|overview)\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*profile\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*about\s*(?:me)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*objective\s*:?\s*$`),
	},
	"experience": {
		regexp.MustCompile(`(?i)^\s*(?:work\s+|professional\s+)?experience\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*employment\s*(?:history)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*work\s*(?:history)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*career\s*(?:history)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*positions?\s*(?:held)?\s*:?\s*$`),
	},
	"education": {
		regexp.MustCompile(`(?i)^\s*education\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*educational\s*(?:background|qualifications?)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*academic\s*(?:background)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*qualifications?\s*:?\s*$`),
	},
	"skills": {
		regexp.MustCompile(`(?i)^\s*(?:technical\s+|key\s+)?skills?\s*(?:and\s+competencies)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*(?:core\s+)?competencies\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*expertise\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*technologies?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*technical\s*(?:knowledge|expertise)?\s*:?\s*$`),
	},
	"projects": {
		regexp.MustCompile(`(?i)^\s*(?:key\s+|notable\s+)?projects?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*project\s*(?:experience|work)?\s*:?\s*$`),
	},
	"certifications": {
		regexp.MustCompile(`(?i)^\s*(?:professional\s+)?certifications?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*certificates?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*licenses?\s*(?:and\s+certifications?)?\s*:?\s*$`),
	},
	"achievements": {
		regexp.MustCompile(`(?i)^\s*achievements?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*accomplishments?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*awards?\s*(?:and\s+achievements?)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*honors?\s*(?:and\s+awards?)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*recognition\s*:?\s*$`),
	},
	"languages": {
		regexp.MustCompile(`(?i)^\s*languages?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*language\s*(?:skills|proficiency)?\s*:?\s*$`),
	},
	"interests": {
		regexp.MustCompile(`(?i)^\s*interests?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*hobbies?\s*(?:and\s+interests?)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*personal\s*interests?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*activities?\s*:?\s*$`),
	},
	"references": {
		regexp.MustCompile(`(?i)^\s*(?:professional\s*)?references?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*references?\s*available\s*(?:upon\s+request)?\s*:?\s*$`),
	},
	"volunteer": {
		regexp.MustCompile(`(?i)^\s*volunteer\s*(?:experience|work)?\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*volunteering\s*:?\s*$`),
		regexp.MustCompile(`(?i)^\s*community\s*(?:service|involvement)?\s*:?\s*$`),
	},
}
