package parser

import (
	"context"
	"regexp"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/nlp"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

// 证书关键词, 命中任意一个的行被原样收录为证书条目
var certKeywords = []string{
	"certified", "certification", "certificate", "license", "credential",
	"aws", "google cloud", "azure", "pmp", "cissp", "comptia",
}

// 语言名固定表, 针对全文做大小写不敏感的子串匹配
var knownLanguages = []string{
	"English", "Spanish", "French", "German", "Chinese", "Japanese",
	"Korean", "Arabic", "Russian", "Portuguese", "Italian", "Dutch",
	"Hindi", "Bengali", "Mandarin", "Cantonese",
}

// EntityExtractor 从清洗后的文本与章节映射中抽取结构化简历记录
// 模式匹配负责联系方式与日期, 外部NER能力负责人名机构名等实体
type EntityExtractor struct {
	tagger   nlp.Tagger
	skillsDB *SkillsDatabase
}

// NewEntityExtractor 构建实体抽取器, skillsDB为nil时使用默认技能库
func NewEntityExtractor(tagger nlp.Tagger, skillsDB *SkillsDatabase) *EntityExtractor {
	if skillsDB == nil {
		skillsDB = DefaultSkillsDatabase()
	}
	return &EntityExtractor{tagger: tagger, skillsDB: skillsDB}
}

// Extract 自底向上构建ResumeDocument
// 任一子步骤的NER调用失败都降级为空结果并记录告警, 不中断整个流水线
func (e *EntityExtractor) Extract(ctx context.Context, text string, sections types.Sections) types.ResumeDocument {
	doc := types.ResumeDocument{}

	doc.PersonalInfo = e.extractPersonalInfo(ctx, text)
	if doc.PersonalInfo.Name == "" {
		// NER不可用或未识别到人名时, 退回章节切分的开头行启发式
		doc.PersonalInfo.Name = sections[types.SectionName]
	}

	if education, ok := sections[types.SectionEducation]; ok {
		doc.Education = e.extractEducation(ctx, education)
	}
	if experience, ok := sections[types.SectionExperience]; ok {
		doc.Experience = e.extractExperience(ctx, experience)
	}
	if skills, ok := sections[types.SectionSkills]; ok {
		doc.Skills = e.extractSkills(skills)
	} else {
		// 没有技能章节时退回全文扫描
		doc.Skills = e.skillsDB.ExtractSkills(text)
	}
	if summary, ok := sections[types.SectionSummary]; ok {
		doc.Summary = summary
	}

	doc.Certifications = extractCertifications(text)
	doc.Languages = extractLanguages(text)
	doc.Projects = e.extractProjects(sections[types.SectionProjects])

	return doc
}

// extractPersonalInfo 联系方式走固定正则, 姓名与地点走NER
func (e *EntityExtractor) extractPersonalInfo(ctx context.Context, text string) types.PersonalInfo {
	info := types.PersonalInfo{
		Email:    emailPattern.FindString(text),
		LinkedIn: linkedinPattern.FindString(text),
		GitHub:   githubPattern.FindString(text),
	}
	if m := phonePattern.FindString(text); m != "" {
		info.Phone = strings.TrimSpace(m)
	}

	entities := e.entities(ctx, text)
	for _, ent := range entities {
		// 姓名通常出现在文档开头附近
		if ent.Label == nlp.LabelPerson && info.Name == "" && ent.Start < constants.NameSearchWindow {
			info.Name = ent.Text
		}
		if (ent.Label == nlp.LabelGPE || ent.Label == nlp.LabelLoc) && info.Location == "" {
			info.Location = ent.Text
		}
	}

	return info
}

func (e *EntityExtractor) extractEducation(ctx context.Context, educationText string) []types.Education {
	if educationText == "" {
		return nil
	}

	var result []types.Education
	for _, block := range splitBlocks(educationText, educationBoundary) {
		if len(strings.TrimSpace(block)) < 10 {
			continue
		}

		edu := types.Education{}
		if m := degreePattern.FindString(block); m != "" {
			edu.Degree = strings.TrimSpace(m)
		}
		if m := gpaPattern.FindStringSubmatch(block); m != nil {
			edu.GPA = m[1]
		}
		for _, ent := range e.entities(ctx, block) {
			if ent.Label == nlp.LabelOrg {
				edu.Institution = ent.Text
				break
			}
		}

		dates := ExtractDates(block)
		applyDates(dates, &edu.StartDate, &edu.EndDate)

		if edu.Institution != "" || edu.Degree != "" {
			result = append(result, edu)
		}
	}

	return result
}

func (e *EntityExtractor) extractExperience(ctx context.Context, experienceText string) []types.Experience {
	if experienceText == "" {
		return nil
	}

	var result []types.Experience
	for _, block := range splitBlocks(experienceText, experienceBoundary) {
		block = strings.TrimSpace(block)
		if len(block) < 20 {
			continue
		}

		exp := types.Experience{}
		lines := strings.Split(block, "\n")
		firstLine := strings.TrimSpace(lines[0])

		if m := positionCompanyPattern.FindStringSubmatch(firstLine); m != nil {
			exp.Position = strings.TrimSpace(m[1])
			exp.Company = strings.TrimSpace(m[2])
			if m[3] != "" {
				exp.Location = strings.TrimSpace(m[3])
			}
		} else {
			// 首行不符合固定格式时用NER找机构名, 之前的文本当作职位
			for _, ent := range e.entities(ctx, firstLine) {
				if ent.Label == nlp.LabelOrg {
					exp.Company = ent.Text
					if pos := strings.Index(firstLine, ent.Text); pos > 0 {
						exp.Position = strings.TrimSpace(firstLine[:pos])
					}
					break
				}
			}
		}

		dates := ExtractDates(block)
		applyDates(dates, &exp.StartDate, &exp.EndDate)

		if len(lines) > 1 {
			exp.Description = strings.TrimSpace(strings.Join(lines[1:], "\n"))
		}

		if exp.Company != "" || exp.Position != "" {
			result = append(result, exp)
		}
	}

	return result
}

// extractSkills 技能章节整体识别一遍, 再按分隔符拆分逐项识别一遍, 取并集
func (e *EntityExtractor) extractSkills(skillsText string) []string {
	if skillsText == "" {
		return nil
	}

	found := make(map[string]struct{})
	for _, skill := range e.skillsDB.ExtractSkills(skillsText) {
		found[skill] = struct{}{}
	}

	cleaned := bulletPattern.ReplaceAllString(skillsText, "")
	candidates := delimiterPattern.Split(cleaned, -1)
	for _, skill := range e.skillsDB.ExtractSkillCandidates(candidates) {
		found[skill] = struct{}{}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	return skills
}

func (e *EntityExtractor) extractProjects(projectsText string) []types.Project {
	if projectsText == "" {
		return nil
	}

	var result []types.Project
	for _, block := range splitBlocks(projectsText, projectBoundary) {
		block = strings.TrimSpace(block)
		if len(block) < 20 {
			continue
		}

		lines := strings.Split(block, "\n")
		firstLine := strings.TrimSpace(lines[0])

		project := types.Project{}
		if idx := strings.Index(firstLine, ":"); idx >= 0 {
			project.Name = strings.TrimSpace(firstLine[:idx])
		} else if idx := strings.IndexAny(firstLine, "-–—"); idx >= 0 {
			project.Name = strings.TrimSpace(firstLine[:idx])
		} else {
			project.Name = firstLine
		}

		if len(lines) > 1 {
			project.Description = strings.TrimSpace(strings.Join(lines[1:], "\n"))
		}

		project.Technologies = e.skillsDB.ExtractSkills(block)
		project.URL = urlPattern.FindString(block)

		if project.Name != "" {
			result = append(result, project)
		}
	}

	return result
}

// entities 调用外部NER能力, 失败时降级为空实体列表
func (e *EntityExtractor) entities(ctx context.Context, text string) []nlp.Entity {
	if e.tagger == nil || text == "" {
		return nil
	}
	entities, err := e.tagger.Entities(ctx, text)
	if err != nil {
		logger.Ctx(ctx).Warn().
			Err(err).
			Str("text_sample", tracing.SafeResumeContent(text)).
			Msg("NER调用失败, 按无实体处理")
		return nil
	}
	return entities
}

func extractCertifications(text string) []string {
	var certifications []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 10 || len(line) >= 100 {
			continue
		}
		lower := strings.ToLower(line)
		for _, keyword := range certKeywords {
			if strings.Contains(lower, keyword) {
				certifications = append(certifications, line)
				break
			}
		}
	}
	return certifications
}

func extractLanguages(text string) []string {
	var languages []string
	lower := strings.ToLower(text)
	for _, lang := range knownLanguages {
		if strings.Contains(lower, strings.ToLower(lang)) {
			languages = append(languages, lang)
		}
	}
	return languages
}

// ExtractDates 按优先级提取日期, 年份区间拆为起止两个条目, 结果保序去重
func ExtractDates(text string) []string {
	var dates []string
	seen := make(map[string]struct{})
	add := func(d string) {
		if d == "" {
			return
		}
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	for _, m := range yearRangePattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
		add(m[2])
	}
	for _, m := range monthYearPattern.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range slashDatePattern.FindAllString(text, -1) {
		add(m)
	}

	return dates
}

// applyDates 约定: 一个日期只当作结束时间, 两个及以上取前两个作为起止
func applyDates(dates []string, start, end *string) {
	switch {
	case len(dates) >= 2:
		*start = dates[0]
		*end = dates[1]
	case len(dates) == 1:
		*end = dates[0]
	}
}

// splitBlocks 以行首条件切块, 代替原有基于前瞻的正则切分
// 第一块无条件保留, 之后每遇到满足边界条件的行就开启新块
func splitBlocks(text string, boundary *regexp.Regexp) []string {
	lines := strings.Split(text, "\n")
	var blocks []string
	var current []string

	for i, line := range lines {
		if i > 0 && boundary.MatchString(line) && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return blocks
}
