package parser

import (
	"regexp"
	"strings"
	"unicode"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

// 清洗阶段使用的模式
var (
	pageMarkerPattern  = regexp.MustCompile(`(?i)---\s*page(?:\s+break)?[^\n-]*---`)
	resumeNoisePattern = regexp.MustCompile(`(?i)\bresume of\s+|curriculum vitae`)
	ellipsisRunPattern = regexp.MustCompile(`\.{3,}`)
	dashRunPattern     = regexp.MustCompile(`-{4,}`)
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
	horizSpacePattern  = regexp.MustCompile(`[ \t]+`)
	numericLinePattern = regexp.MustCompile(`^\d+$`)

	ocrIsolatedL    = regexp.MustCompile(`\bl\b`)
	ocrIsolatedZero = regexp.MustCompile(`\b0\b`)
	ocrMidWordL     = regexp.MustCompile(`(\w)l(\w)`)

	boldHeaderPattern = regexp.MustCompile(`^\*\*(.+)\*\*$`)
	underlineChars    = "=-_*"
)

var unicodeReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	" ", " ",
)

// TextCleaner 简历文本清洗与章节切分器
// 无内部可变状态, 可并发使用
type TextCleaner struct {
	enableOCRFixes bool
}

// NewTextCleaner 构建清洗器
// OCR修正是已知会误伤正常单词的粗糙启发式, 默认关闭
func NewTextCleaner(enableOCRFixes bool) *TextCleaner {
	return &TextCleaner{enableOCRFixes: enableOCRFixes}
}

// Clean 清洗原始简历文本
// 默认配置下对输出再次调用是不动点: Clean(Clean(t)) == Clean(t)
func (c *TextCleaner) Clean(text string) string {
	if text == "" {
		return ""
	}

	text = pageMarkerPattern.ReplaceAllString(text, "")
	text = resumeNoisePattern.ReplaceAllString(text, "")
	text = unicodeReplacer.Replace(text)

	if c.enableOCRFixes {
		text = c.fixOCRErrors(text)
	}

	// 压缩连续标点
	text = ellipsisRunPattern.ReplaceAllString(text, "...")
	text = dashRunPattern.ReplaceAllString(text, "---")

	// 逐行规整空白并丢弃独立的数字行(多为残留页码)
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(horizSpacePattern.ReplaceAllString(line, " "))
		if numericLinePattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// fixOCRErrors 常见OCR混淆修正: 孤立l->I, 孤立0->O, 词中l->I
// 注意词中替换不是不动点, 只在显式开启时参与清洗
func (c *TextCleaner) fixOCRErrors(text string) string {
	text = ocrIsolatedL.ReplaceAllString(text, "I")
	text = ocrIsolatedZero.ReplaceAllString(text, "O")
	text = ocrMidWordL.ReplaceAllString(text, "${1}I${2}")
	return text
}

// ExtractSections 把清洗后的文本切分为命名章节
// 找不到任何可识别标题时整篇折叠为单一content章节
func (c *TextCleaner) ExtractSections(text string) types.Sections {
	sections := make(types.Sections)
	if text == "" {
		sections[types.SectionOther] = ""
		return sections
	}

	// 先从开头几行尝试提取候选人姓名
	if name := c.extractNameFromHeader(text); name != "" {
		sections[types.SectionName] = name
	}

	lines := strings.Split(text, "\n")
	currentSection := types.SectionHeader
	var content []string

	flush := func() {
		if len(content) == 0 || currentSection == "" {
			return
		}
		body := strings.TrimSpace(strings.Join(content, "\n"))
		if len(body) < constants.MinSectionLength {
			return
		}
		if existing, ok := sections[currentSection]; ok {
			sections[currentSection] = existing + "\n\n" + body
		} else {
			sections[currentSection] = body
		}
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		// 空行保留为章节内部的空行
		if line == "" {
			if len(content) > 0 {
				content = append(content, "")
			}
			continue
		}

		var next string
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}

		sectionName := c.matchSectionHeader(line)
		if sectionName == "" && c.looksLikeHeader(line, next) {
			sectionName = slugifyHeader(line)
		}

		if sectionName != "" {
			// 紧跟的下划线行随标题一起消耗
			if next != "" && isUnderline(next) {
				i++
			}

			flush()
			currentSection = sectionName
			content = nil

			// 标题行冒号后的内联内容作为新章节的开头
			if idx := strings.Index(line, ":"); idx >= 0 {
				if inline := strings.TrimSpace(line[idx+1:]); inline != "" {
					content = append(content, inline)
				}
			}
			continue
		}

		content = append(content, line)
	}
	flush()

	// 没切出任何真实章节时整篇归入content
	// header是扫描起始的兜底段, name来自开头行启发式, 都不算结构
	structural := 0
	for key := range sections {
		if key != types.SectionHeader && key != types.SectionName {
			structural++
		}
	}
	if structural == 0 {
		delete(sections, types.SectionHeader)
		sections[types.SectionContent] = strings.TrimSpace(text)
	}

	c.attachContactInfo(sections)

	return sections
}

// matchSectionHeader 判定一行是否是固定词表中的章节标题, 返回规范章节名
func (c *TextCleaner) matchSectionHeader(line string) string {
	line = strings.TrimSpace(line)
	if len(line) < 2 || len(line) > 50 {
		return ""
	}

	for name, patterns := range sectionHeaderPatterns {
		for _, p := range patterns {
			if p.MatchString(line) {
				return name
			}
		}
	}

	// 加粗风格标题, 如 **EXPERIENCE**
	if m := boldHeaderPattern.FindStringSubmatch(line); m != nil {
		return c.matchSectionHeader(m[1])
	}

	return ""
}

// looksLikeHeader 次级启发式: 不在固定词表中但形似章节标题的短行
func (c *TextCleaner) looksLikeHeader(line, next string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 3 || len(line) > 40 {
		return false
	}

	// 含联系方式或逗号枚举的行不视为标题
	for _, p := range contactPatterns {
		if p.MatchString(line) {
			return false
		}
	}
	if strings.Contains(line, ",") {
		return false
	}

	words := strings.Fields(line)
	if len(words) <= 4 {
		titleCased := 0
		for _, w := range words {
			r := []rune(w)[0]
			if unicode.IsUpper(r) {
				titleCased++
			}
		}
		if float64(titleCased) >= float64(len(words))*0.7 {
			return true
		}
		if isAllUpper(line) {
			return true
		}
	}

	if strings.HasSuffix(line, ":") {
		return true
	}

	// 下一行是下划线说明当前行是被强调的标题
	if next != "" && len(next)*2 >= len(line) && isUnderline(next) {
		return true
	}

	return false
}

// extractNameFromHeader 在前5行内寻找2到4个全字母且首字母大写的词组成的行
func (c *TextCleaner) extractNameFromHeader(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		hasContact := false
		for _, p := range contactPatterns {
			if p.MatchString(line) {
				hasContact = true
				break
			}
		}
		if hasContact {
			continue
		}

		if c.matchSectionHeader(line) != "" {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		valid := true
		for _, w := range words {
			if !isAlpha(w) || !unicode.IsUpper([]rune(w)[0]) {
				valid = false
				break
			}
		}
		if valid {
			return line
		}
	}

	return ""
}

// attachContactInfo 在全部章节正文中搜索联系方式并合成contact_info章节
// 电话号码只保留数字和加号
func (c *TextCleaner) attachContactInfo(sections types.Sections) {
	values := make([]string, 0, len(sections))
	for _, body := range sections {
		values = append(values, body)
	}
	allText := strings.Join(values, " ")

	var entries []string
	for _, kind := range []string{"email", "phone", "linkedin", "github"} {
		pattern := contactPatterns[kind]
		if kind == "phone" {
			if m := pattern.FindStringSubmatch(allText); m != nil {
				digits := strings.Map(func(r rune) rune {
					if r == '+' || (r >= '0' && r <= '9') {
						return r
					}
					return -1
				}, m[2])
				entries = append(entries, "phone: "+digits)
			}
			continue
		}
		if m := pattern.FindString(allText); m != "" {
			entries = append(entries, kind+": "+m)
		}
	}

	if len(entries) > 0 {
		sections[types.SectionContactInfo] = strings.Join(entries, "\n")
	}
}

// SectionSummary 统计各章节的规模与特征
func (c *TextCleaner) SectionSummary(sections types.Sections) map[string]types.SectionStats {
	summary := make(map[string]types.SectionStats, len(sections))
	for name, body := range sections {
		summary[name] = types.SectionStats{
			CharCount:  len(body),
			WordCount:  len(strings.Fields(body)),
			LineCount:  len(strings.Split(body, "\n")),
			HasBullets: strings.ContainsAny(body, "•*"),
			HasDates:   bareYearPattern.MatchString(body),
		}
	}
	return summary
}

// slugifyHeader 把启发式识别的标题行转成lower_snake_case章节名
// 超过30个字符的slug视为无效
func slugifyHeader(line string) string {
	clean := nonWordPattern.ReplaceAllString(line, "")
	clean = strings.ToLower(strings.TrimSpace(clean))
	clean = multiSpacePattern.ReplaceAllString(clean, "_")
	if clean == "" || len(clean) > 30 {
		return ""
	}
	return clean
}

func isUnderline(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if !strings.ContainsRune(underlineChars, r) {
			return false
		}
	}
	return true
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
