package resume

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/folio/pkg/profile"
	"github.com/artem13815/folio/pkg/project"
	"github.com/artem13815/folio/pkg/skill"
)

func fullFixture() (profile.Profile, []skill.Skill, []project.Project, Draft) {
	p := profile.Profile{
		ID:       uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		FullName: "Jane Doe",
		Headline: "Backend Engineer",
		Email:    "jane@example.com",
		Phone:    "+1 555 0100",
		Location: "Berlin",
		Website:  "https://jane.dev",
		GitHub:   "https://github.com/jane",
	}
	skills := []skill.Skill{{Name: "Go", Proficiency: 5}, {Name: "SQL"}}
	projects := []project.Project{{
		Title:       "Portfolio Site",
		Description: "Personal site",
		TechStack:   []string{"React", "Vite"},
		ProjectURL:  "https://jane.dev",
		GitHubURL:   "https://github.com/jane/site",
	}}
	d := Draft{
		Objective: "Build reliable systems.",
		Education: []Education{{School: "TU Berlin", Degree: "BSc", FieldOfStudy: "Computer Science", StartDate: "2012", EndDate: "2016"}},
		WorkExperience: []WorkExperience{
			{Company: "Acme", Position: "Engineer", StartDate: "2019"},
			{Company: "Initech", Position: "Intern", StartDate: "2016", EndDate: "2018", Description: "Reports"},
		},
	}
	return p, skills, projects, d
}

func TestGenerate_AllSections(t *testing.T) {
	p, s, pr, d := fullFixture()
	doc := Generate(p, s, pr, d)
	html := doc.HTML

	assert.Equal(t, "Jane Doe.html", doc.Filename)
	assert.Contains(t, html, "<title>Resume - Jane Doe</title>")
	assert.Contains(t, html, "<h1>Jane Doe</h1>")
	assert.Contains(t, html, "<p>Backend Engineer</p>")
	assert.Contains(t, html, "<span>jane@example.com</span> | <span>&#43;1 555 0100</span> | <span>Berlin</span>")
	assert.Contains(t, html, "Website: https://jane.dev")
	assert.NotContains(t, html, "LinkedIn:")
	assert.Contains(t, html, "Professional Summary")
	assert.Contains(t, html, `<div class="skill-item">Go (5/5)</div>`)
	assert.Contains(t, html, `<div class="skill-item">SQL</div>`)
	assert.Contains(t, html, "Engineer at Acme")
	assert.Contains(t, html, "2019 – Present")
	assert.Contains(t, html, "2016 – 2018")
	assert.Contains(t, html, "BSc in Computer Science – TU Berlin")
	assert.Contains(t, html, "2012 – 2016")
	assert.Contains(t, html, "<strong>Technologies:</strong> React, Vite")
	assert.Contains(t, html, `<a href="https://jane.dev">View Project</a> | <a href="https://github.com/jane/site">GitHub</a>`)

	// fixed section order
	order := []string{"<h1>", "contact-info\">", "Professional Summary", ">Skills<", "Work Experience", ">Education<", ">Projects<"}
	last := -1
	for _, marker := range order {
		i := strings.Index(html, marker)
		require.Greater(t, i, last, "marker %q out of order", marker)
		last = i
	}
}

func TestGenerate_IsDeterministicAndPure(t *testing.T) {
	p, s, pr, d := fullFixture()
	before := d.WorkExperience[0]
	a := Generate(p, s, pr, d)
	b := Generate(p, s, pr, d)
	assert.Equal(t, a, b)
	assert.Equal(t, before, d.WorkExperience[0])
	assert.Equal(t, []string{"React", "Vite"}, pr[0].TechStack)
}

func TestGenerate_SingleSkillScenario(t *testing.T) {
	p := profile.Profile{FullName: "Jane Doe"}
	doc := Generate(p, []skill.Skill{{Name: "Go", Proficiency: 4}}, nil, NewDraft())

	assert.Equal(t, 1, strings.Count(doc.HTML, `class="skill-item"`))
	assert.Contains(t, doc.HTML, `<div class="skill-item">Go (4/5)</div>`)
	assert.NotContains(t, doc.HTML, "Work Experience")
	assert.NotContains(t, doc.HTML, "Education")
	assert.NotContains(t, doc.HTML, "Professional Summary")
	assert.NotContains(t, doc.HTML, "Projects")
	assert.NotContains(t, doc.HTML, "contact-info\">")
}

func TestGenerate_EmptyProfileOmitsHeader(t *testing.T) {
	doc := Generate(profile.Profile{}, nil, nil, NewDraft())
	assert.NotContains(t, doc.HTML, `<div class="header">`)
	assert.Contains(t, doc.HTML, "<title>Resume - Resume</title>")
	assert.Equal(t, "resume.html", doc.Filename)
}

func TestGenerate_EducationGatedOnFirstRow(t *testing.T) {
	d := Draft{Education: []Education{{}, {School: "MIT", Degree: "PhD"}}}
	html := Generate(profile.Profile{FullName: "J D"}, nil, nil, d).HTML
	assert.NotContains(t, html, "Education")
	assert.NotContains(t, html, "MIT")

	d.Education = []Education{{School: "MIT", Degree: "PhD"}, {}, {School: "TU", Degree: "BSc"}}
	html = Generate(profile.Profile{FullName: "J D"}, nil, nil, d).HTML
	assert.Contains(t, html, "PhD – MIT")
	assert.Contains(t, html, "BSc – TU")
	assert.Equal(t, 2, strings.Count(html, " – MIT")+strings.Count(html, " – TU"))
}

func TestGenerate_WorkExperienceNeedsAnyCompany(t *testing.T) {
	d := Draft{WorkExperience: []WorkExperience{{Position: "Ghost"}, {Company: "Acme", Position: "Engineer"}}}
	html := Generate(profile.Profile{FullName: "J D"}, nil, nil, d).HTML
	assert.Contains(t, html, "Work Experience")
	assert.Contains(t, html, "Engineer at Acme")
	assert.NotContains(t, html, "Ghost")
}

func TestGenerate_EscapesUserText(t *testing.T) {
	p := profile.Profile{FullName: `<script>alert("x")</script>`}
	html := Generate(p, nil, nil, Draft{Objective: "a < b & c"}).HTML
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "a &lt; b &amp; c")
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2020 – 2021", dateRange("2020", "2021"))
	assert.Equal(t, "2020 – Present", dateRange(" 2020 ", ""))
	assert.Equal(t, "", dateRange("", ""))
	assert.Equal(t, "2021", dateRange("", "2021"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Jane Doe.html", Filename(profile.Profile{FullName: " Jane Doe "}))
	assert.Equal(t, "ab.html", Filename(profile.Profile{FullName: "a/b"}))
	assert.Equal(t, "resume.html", Filename(profile.Profile{FullName: "../"}))
	assert.Equal(t, "resume.html", Filename(profile.Profile{}))
}
