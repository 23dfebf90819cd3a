package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/folio/pkg/validation"
)

// Draft holds the resume-only fields. It is never persisted; it lives in the
// wizard state while the owner edits it.
type Draft struct {
	Objective      string           `json:"objective"`
	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"workExperience"`
}

type Education struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
}

func (e Education) IsBlank() bool {
	return blank(e.School, e.Degree, e.FieldOfStudy, e.StartDate, e.EndDate, e.Description)
}

type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

func (w WorkExperience) IsBlank() bool {
	return blank(w.Company, w.Position, w.StartDate, w.EndDate, w.Description)
}

var (
	ErrLastRow  = errors.New("at least one row must remain")
	ErrRowIndex = errors.New("row index out of range")
)

// NewDraft returns a draft with one empty row in each list.
func NewDraft() Draft {
	return Draft{Education: []Education{{}}, WorkExperience: []WorkExperience{{}}}
}

// Normalize restores the one-row minimum, e.g. after decoding client input.
func (d *Draft) Normalize() {
	if len(d.Education) == 0 {
		d.Education = []Education{{}}
	}
	if len(d.WorkExperience) == 0 {
		d.WorkExperience = []WorkExperience{{}}
	}
}

func (d *Draft) AddEducation() { d.Education = append(d.Education, Education{}) }

func (d *Draft) AddWorkExperience() { d.WorkExperience = append(d.WorkExperience, WorkExperience{}) }

func (d *Draft) RemoveEducation(i int) error {
	if i < 0 || i >= len(d.Education) {
		return ErrRowIndex
	}
	if len(d.Education) == 1 {
		return ErrLastRow
	}
	d.Education = append(d.Education[:i:i], d.Education[i+1:]...)
	return nil
}

func (d *Draft) RemoveWorkExperience(i int) error {
	if i < 0 || i >= len(d.WorkExperience) {
		return ErrRowIndex
	}
	if len(d.WorkExperience) == 1 {
		return ErrLastRow
	}
	d.WorkExperience = append(d.WorkExperience[:i:i], d.WorkExperience[i+1:]...)
	return nil
}

// Validate accepts fully blank rows; a started row needs its two title fields.
func (d Draft) Validate() validation.Violations {
	v := validation.Violations{}
	for i, e := range d.Education {
		if e.IsBlank() {
			continue
		}
		validation.MinLen(fmt.Sprintf("education[%d].school", i), e.School, 2, "School name must be at least 2 characters", v)
		validation.MinLen(fmt.Sprintf("education[%d].degree", i), e.Degree, 2, "Degree must be at least 2 characters", v)
	}
	for i, w := range d.WorkExperience {
		if w.IsBlank() {
			continue
		}
		validation.MinLen(fmt.Sprintf("workExperience[%d].company", i), w.Company, 2, "Company name must be at least 2 characters", v)
		validation.MinLen(fmt.Sprintf("workExperience[%d].position", i), w.Position, 2, "Position must be at least 2 characters", v)
	}
	return v
}

func blank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
