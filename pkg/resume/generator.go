package resume

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"strings"
	"unicode"

	"github.com/artem13815/folio/pkg/profile"
	"github.com/artem13815/folio/pkg/project"
	"github.com/artem13815/folio/pkg/skill"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const fallbackFilename = "resume"

// Document is the generated, self-contained resume.
type Document struct {
	Filename string `json:"filename"`
	HTML     string `json:"html"`
}

// input is what every section sees; it is built once per Generate call.
type input struct {
	Profile    profile.Profile
	Links      []link
	Contact    []string
	Objective  string
	Skills     []skillLine
	Experience []entry
	Education  []entry
	Projects   []projectEntry
}

type link struct{ Label, URL string }

type skillLine string

type entry struct {
	Title       string
	Dates       string
	Description string
}

type projectEntry struct {
	Title       string
	Description string
	TechStack   string
	ProjectURL  string
	GitHubURL   string
}

// section is one optional block of the document, emitted only when its predicate holds.
type section struct {
	name string
	when func(in *input) bool
}

var sections = []section{
	{"header", func(in *input) bool {
		return in.Profile.FullName != "" || in.Profile.Headline != "" || len(in.Links) > 0
	}},
	{"contact", func(in *input) bool { return len(in.Contact) > 0 }},
	{"summary", func(in *input) bool { return in.Objective != "" }},
	{"skills", func(in *input) bool { return len(in.Skills) > 0 }},
	{"experience", func(in *input) bool { return len(in.Experience) > 0 }},
	{"education", func(in *input) bool { return len(in.Education) > 0 }},
	{"projects", func(in *input) bool { return len(in.Projects) > 0 }},
}

// Generate merges the profile snapshot and the draft into one HTML document.
// It does no I/O, does not modify its arguments and is deterministic.
func Generate(p profile.Profile, skills []skill.Skill, projects []project.Project, d Draft) Document {
	in := buildInput(p, skills, projects, d)

	var body bytes.Buffer
	for _, s := range sections {
		if !s.when(in) {
			continue
		}
		// templates are parsed at init and their data is fixed; execution cannot fail
		_ = tmpl.ExecuteTemplate(&body, s.name, in)
	}

	title := "Resume"
	if in.Profile.FullName != "" {
		title = in.Profile.FullName
	}
	var doc bytes.Buffer
	_ = tmpl.ExecuteTemplate(&doc, "document", struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())})

	return Document{Filename: Filename(p), HTML: doc.String()}
}

// Filename derives the export file name from the full name, falling back to "resume.html".
func Filename(p profile.Profile) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, p.FullName)
	name = strings.Trim(strings.TrimSpace(name), ".")
	if name == "" {
		name = fallbackFilename
	}
	return name + ".html"
}

func buildInput(p profile.Profile, skills []skill.Skill, projects []project.Project, d Draft) *input {
	in := &input{Profile: trimProfile(p), Objective: strings.TrimSpace(d.Objective)}

	for _, l := range []link{{"Website", in.Profile.Website}, {"GitHub", in.Profile.GitHub}, {"LinkedIn", in.Profile.LinkedIn}} {
		if l.URL != "" {
			in.Links = append(in.Links, l)
		}
	}
	for _, c := range []string{in.Profile.Email, in.Profile.Phone, in.Profile.Location} {
		if c != "" {
			in.Contact = append(in.Contact, c)
		}
	}
	for _, s := range skills {
		in.Skills = append(in.Skills, formatSkill(s))
	}

	// work experience shows once any row has a company; rows without one are skipped
	for _, w := range d.WorkExperience {
		company := strings.TrimSpace(w.Company)
		if company == "" {
			continue
		}
		in.Experience = append(in.Experience, entry{
			Title:       strings.TrimSpace(w.Position) + " at " + company,
			Dates:       dateRange(w.StartDate, w.EndDate),
			Description: strings.TrimSpace(w.Description),
		})
	}
	// education is gated on the first row's school
	for _, e := range educationRows(d.Education) {
		school := strings.TrimSpace(e.School)
		if school == "" {
			continue
		}
		title := strings.TrimSpace(e.Degree)
		if f := strings.TrimSpace(e.FieldOfStudy); f != "" {
			title += " in " + f
		}
		in.Education = append(in.Education, entry{
			Title:       title + " – " + school,
			Dates:       dateRange(e.StartDate, e.EndDate),
			Description: strings.TrimSpace(e.Description),
		})
	}

	for _, pr := range projects {
		in.Projects = append(in.Projects, projectEntry{
			Title:       pr.Title,
			Description: pr.Description,
			TechStack:   strings.Join(pr.TechStack, ", "),
			ProjectURL:  pr.ProjectURL,
			GitHubURL:   pr.GitHubURL,
		})
	}
	return in
}

func formatSkill(s skill.Skill) skillLine {
	name := strings.TrimSpace(s.Name)
	if s.Proficiency <= 0 {
		return skillLine(name)
	}
	return skillLine(name + " (" + strconv.Itoa(s.Proficiency) + "/5)")
}

func educationRows(rows []Education) []Education {
	if len(rows) == 0 || strings.TrimSpace(rows[0].School) == "" {
		return nil
	}
	return rows
}

// dateRange renders "start – end", "start – Present", "end" or "".
func dateRange(start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start + " – Present"
	default:
		return end
	}
}

func trimProfile(p profile.Profile) profile.Profile {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Headline = strings.TrimSpace(p.Headline)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Location = strings.TrimSpace(p.Location)
	p.Website = strings.TrimSpace(p.Website)
	p.GitHub = strings.TrimSpace(p.GitHub)
	p.LinkedIn = strings.TrimSpace(p.LinkedIn)
	return p
}
