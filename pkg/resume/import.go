package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/folio/pkg/llm"
	"github.com/artem13815/folio/pkg/nlp"
	"github.com/artem13815/folio/pkg/skill"
)

var ErrImportUnavailable = errors.New("resume import is not configured")

// ImportResult prefills the draft from an existing resume file.
type ImportResult struct {
	Draft           Draft    `json:"draft"`
	SuggestedSkills []string `json:"suggestedSkills"`
	Model           string   `json:"model"`
	Excerpted       bool     `json:"excerpted"`
}

// ImportUseCase turns an uploaded resume into a Draft plus skill suggestions.
type ImportUseCase interface {
	Import(ctx context.Context, filename string, data []byte, existing []skill.Skill) (ImportResult, error)
}

type importService struct {
	llm       llm.ChatModel
	modelName string
	maxChars  int
}

// NewImportService returns an ImportUseCase; model may be nil, in which case
// Import fails with ErrImportUnavailable.
func NewImportService(model llm.ChatModel, modelName string) ImportUseCase {
	return &importService{llm: model, modelName: modelName, maxChars: 12000}
}

type extracted struct {
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []struct {
		Company     string `json:"company"`
		Role        string `json:"role"`
		Start       string `json:"start"`
		End         string `json:"end"`
		Description string `json:"description"`
	} `json:"experience"`
	Education []struct {
		Institution  string `json:"institution"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"fieldOfStudy"`
		Start        string `json:"start"`
		End          string `json:"end"`
	} `json:"education"`
}

const importSystemPrompt = "You extract structured data from resumes. Reply with ONE JSON object only, no markdown, no commentary. Use [] for empty lists, never null. Do not invent facts."

const importUserPrompt = `Resume text:
<<<
%s
>>>

Return exactly this JSON shape:
{
  "summary": string,
  "skills": string[],
  "experience": [{"company":string,"role":string,"start":string,"end":string,"description":string}],
  "education": [{"institution":string,"degree":string,"fieldOfStudy":string,"start":string,"end":string}]
}
Leave "end" empty for current positions.`

func (s *importService) Import(ctx context.Context, filename string, data []byte, existing []skill.Skill) (ImportResult, error) {
	if s.llm == nil {
		return ImportResult{}, ErrImportUnavailable
	}
	text, err := ExtractText(filename, data)
	if err != nil {
		return ImportResult{}, err
	}
	excerpted := false
	if len(text) > s.maxChars {
		text = text[:s.maxChars]
		excerpted = true
	}

	raw, err := s.llm.Ask(ctx, importSystemPrompt, fmt.Sprintf(importUserPrompt, text))
	if err != nil {
		return ImportResult{}, fmt.Errorf("ask model: %w", err)
	}
	ex, err := decodeExtracted(raw)
	if err != nil {
		return ImportResult{}, err
	}

	d := Draft{Objective: strings.TrimSpace(ex.Summary)}
	for _, e := range ex.Experience {
		d.WorkExperience = append(d.WorkExperience, WorkExperience{
			Company:     strings.TrimSpace(e.Company),
			Position:    strings.TrimSpace(e.Role),
			StartDate:   strings.TrimSpace(e.Start),
			EndDate:     normalizeEnd(e.End),
			Description: strings.TrimSpace(e.Description),
		})
	}
	for _, e := range ex.Education {
		d.Education = append(d.Education, Education{
			School:       strings.TrimSpace(e.Institution),
			Degree:       strings.TrimSpace(e.Degree),
			FieldOfStudy: strings.TrimSpace(e.FieldOfStudy),
			StartDate:    strings.TrimSpace(e.Start),
			EndDate:      normalizeEnd(e.End),
		})
	}
	d.Normalize()

	return ImportResult{
		Draft:           d,
		SuggestedSkills: newSkills(ex.Skills, existing),
		Model:           s.modelName,
		Excerpted:       excerpted,
	}, nil
}

// decodeExtracted accepts a bare JSON object or one wrapped in prose or a code fence.
func decodeExtracted(raw string) (extracted, error) {
	raw = strings.TrimSpace(raw)
	var ex extracted
	if err := json.Unmarshal([]byte(raw), &ex); err == nil {
		return ex, nil
	}
	i, j := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
	if i >= 0 && j > i {
		if err := json.Unmarshal([]byte(raw[i:j+1]), &ex); err == nil {
			return ex, nil
		}
	}
	return extracted{}, errors.New("model reply is not valid JSON")
}

// newSkills drops suggestions the owner already has and repeated ones, comparing normalized names.
func newSkills(suggested []string, existing []skill.Skill) []string {
	seen := make(map[string]struct{}, len(existing)+len(suggested))
	for _, s := range existing {
		for _, v := range nlp.SkillVariants(s.Name) {
			seen[v] = struct{}{}
		}
	}
	out := []string{}
	for _, name := range suggested {
		name = strings.TrimSpace(name)
		key := nlp.NormalizeSkill(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		for _, v := range nlp.SkillVariants(name) {
			seen[v] = struct{}{}
		}
		out = append(out, name)
	}
	return out
}

func normalizeEnd(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "present", "current", "now":
		return ""
	}
	return s
}
