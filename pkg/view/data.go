package view

import (
	"github.com/artem13815/folio/pkg/profile"
	"github.com/artem13815/folio/pkg/project"
	"github.com/artem13815/folio/pkg/skill"
)

type Page struct {
	SignedIn bool
}

type AuthPage struct {
	SignedIn bool
	Error    string
	Email    string
}

// Dashboard tabs.
const (
	TabProjects = "projects"
	TabSkills   = "skills"
)

type DashboardPage struct {
	SignedIn     bool
	Tab          string
	Profile      profile.Profile
	Projects     []project.Project
	Skills       []skill.Skill
	PortfolioURL string
}

type PortfolioPage struct {
	SignedIn bool
	Profile  profile.Profile
	Projects []project.Project
	Skills   []skill.Skill
}

// NormalizeTab falls back to the projects tab for unknown values.
func NormalizeTab(tab string) string {
	if tab == TabSkills {
		return TabSkills
	}
	return TabProjects
}
