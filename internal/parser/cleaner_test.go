package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

// TestCleanIdempotent 默认配置下清洗是不动点: 二次清洗不再改变文本
func TestCleanIdempotent(t *testing.T) {
	cleaner := NewTextCleaner(false)

	inputs := []string{
		"John Doe\n\n\n\nSoftware  Engineer\t\tBackend",
		"--- PAGE 1 ---\nExperience\n12\nBuilt stuff....\n--- PAGE 2 ---",
		"Resume of John Doe\n“quoted” — dashed text",
		"",
		"   \n  \n ",
	}

	for _, input := range inputs {
		once := cleaner.Clean(input)
		twice := cleaner.Clean(once)
		assert.Equal(t, once, twice, "清洗结果应当是不动点")
	}
}

func TestCleanRemovesNoise(t *testing.T) {
	cleaner := NewTextCleaner(false)

	text := "--- PAGE 1 ---\nJohn Doe\n42\nSenior   Engineer\n\n\n\nSkills"
	got := cleaner.Clean(text)

	assert.NotContains(t, got, "PAGE", "分页标记应被剔除")
	assert.NotContains(t, got, "42", "独立数字行应被剔除")
	assert.Contains(t, got, "Senior Engineer", "行内多余空白应被压缩")
	assert.NotContains(t, got, "\n\n\n", "连续空行应被压缩")
}

func TestCleanNormalizesUnicode(t *testing.T) {
	cleaner := NewTextCleaner(false)

	got := cleaner.Clean("‘hi’ “there” 2019–2022 end")
	assert.Equal(t, `'hi' "there" 2019-2022 end`, got, "弯引号与长破折号应归一为ASCII")
}

func TestCleanOCRFixesBehindFlag(t *testing.T) {
	// 默认关闭: 孤立的l保持原样
	assert.Equal(t, "l am here", NewTextCleaner(false).Clean("l am here"))

	// 开启后孤立l替换为I
	assert.Equal(t, "I am here", NewTextCleaner(true).Clean("l am here"))
}

// TestExtractSectionsEmpty 空文本退化为单一other章节
func TestExtractSectionsEmpty(t *testing.T) {
	cleaner := NewTextCleaner(false)

	sections := cleaner.ExtractSections("")
	assert.Equal(t, types.Sections{types.SectionOther: ""}, sections)
}

// TestExtractSectionsNoHeaders 无法识别任何标题时整篇归入content
func TestExtractSectionsNoHeaders(t *testing.T) {
	cleaner := NewTextCleaner(false)

	text := "just some plain prose without any structure\nand another ordinary line of prose here"
	sections := cleaner.ExtractSections(text)

	require.Len(t, sections, 1, "应当只有content一个章节")
	assert.Equal(t, text, sections[types.SectionContent])
}

// TestExtractSectionsNameOnlyCollapses 只提取到姓名而无标题时正文仍归入content
func TestExtractSectionsNameOnlyCollapses(t *testing.T) {
	cleaner := NewTextCleaner(false)

	text := "John Doe\nplain prose without a single recognizable heading\nyet another ordinary sentence"
	sections := cleaner.ExtractSections(text)

	assert.Equal(t, "John Doe", sections[types.SectionName])
	assert.Equal(t, text, sections[types.SectionContent], "无结构时整篇应归入content")
	assert.NotContains(t, sections, types.SectionHeader, "兜底header段不应泄漏到结果里")
}

// TestExtractSectionsSkillsHeader 标题行SKILLS之后的列表进入skills章节
func TestExtractSectionsSkillsHeader(t *testing.T) {
	cleaner := NewTextCleaner(false)

	sections := cleaner.ExtractSections("SKILLS\nPython, SQL, AWS")

	require.Contains(t, sections, types.SectionSkills)
	assert.Equal(t, "Python, SQL, AWS", sections[types.SectionSkills])
}

func TestExtractSectionsFullResume(t *testing.T) {
	cleaner := NewTextCleaner(false)

	resume := `John Doe
Software Engineer
john.doe@email.com | (555) 123-4567 | linkedin.com/in/johndoe

PROFESSIONAL SUMMARY
Experienced software engineer with 5+ years developing web applications.

EXPERIENCE
Senior Software Engineer | ABC Company | 2020-2023
Developed full-stack web applications using React and Node.js

EDUCATION
Bachelor of Science in Computer Science
University of Technology | 2018

SKILLS
Python, JavaScript, Java
`
	sections := cleaner.ExtractSections(resume)

	assert.Equal(t, "John Doe", sections[types.SectionName], "应从开头行提取候选人姓名")
	assert.Contains(t, sections, types.SectionSummary)
	assert.Contains(t, sections, types.SectionExperience)
	assert.Contains(t, sections, types.SectionEducation)
	assert.Contains(t, sections, types.SectionSkills)
	assert.Contains(t, sections[types.SectionExperience], "Senior Software Engineer | ABC Company")
}

// TestExtractSectionsContactInfo 联系方式被合成为contact_info章节, 电话只留数字
func TestExtractSectionsContactInfo(t *testing.T) {
	cleaner := NewTextCleaner(false)

	resume := "SUMMARY\nReach me at jane@corp.io or (555) 123-4567"
	sections := cleaner.ExtractSections(resume)

	require.Contains(t, sections, types.SectionContactInfo)
	contact := sections[types.SectionContactInfo]
	assert.Contains(t, contact, "email: jane@corp.io")
	assert.Contains(t, contact, "phone: 5551234567", "电话号码应只保留数字和加号")
}

func TestExtractSectionsMergesRepeatedHeaders(t *testing.T) {
	cleaner := NewTextCleaner(false)

	text := "EXPERIENCE\nfirst engineering role details\nEDUCATION\nsome university record\nEXPERIENCE\nsecond engineering role details"
	sections := cleaner.ExtractSections(text)

	assert.Contains(t, sections[types.SectionExperience], "first engineering role details")
	assert.Contains(t, sections[types.SectionExperience], "second engineering role details")
}

func TestExtractSectionsUnderlinedHeader(t *testing.T) {
	cleaner := NewTextCleaner(false)

	text := "Side Work\n---------\nbuilt a small game engine for fun"
	sections := cleaner.ExtractSections(text)

	require.Contains(t, sections, "side_work", "下划线标注的行应识别为动态章节")
	assert.Equal(t, "built a small game engine for fun", sections["side_work"])
	assert.NotContains(t, sections["side_work"], "---", "下划线行不应进入章节正文")
}

func TestExtractSectionsInlineContentAfterColon(t *testing.T) {
	cleaner := NewTextCleaner(false)

	sections := cleaner.ExtractSections("Hobbies: Chess Go Tennis\nplays in local club tournaments")

	require.Contains(t, sections, "hobbies_chess_go_tennis")
	assert.True(t, strings.HasPrefix(sections["hobbies_chess_go_tennis"], "Chess Go Tennis"), "冒号后的内联内容应作为章节开头")
}

func TestSectionSummary(t *testing.T) {
	cleaner := NewTextCleaner(false)

	sections := types.Sections{
		"experience": "• Built services in 2020\n• Shipped features",
		"skills":     "Python",
	}
	summary := cleaner.SectionSummary(sections)

	exp := summary["experience"]
	assert.Equal(t, 2, exp.LineCount)
	assert.True(t, exp.HasBullets)
	assert.True(t, exp.HasDates)

	sk := summary["skills"]
	assert.Equal(t, 1, sk.WordCount)
	assert.False(t, sk.HasDates)
}
