package render

import (
	"strings"
	"testing"

	"stepResume/internal/draft"
)

func TestPlainTextBlankDraft(t *testing.T) {
	got := PlainText(draft.NewBlank())
	want := "NAME\n-\n\nCONTACT\n"
	if got != want {
		t.Fatalf("blank export mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestPlainTextIsDeterministic(t *testing.T) {
	d := draft.Sample()
	if PlainText(d) != PlainText(d) {
		t.Fatalf("same draft must render byte-identical output")
	}
}

func TestPlainTextSectionOrderAndFormat(t *testing.T) {
	d := draft.NewBlank()
	d.Name = "Ada Lovelace"
	d.Email = "ada@example.io"
	d.Location = "London"
	d.Summary = "Built things"
	d.Education = []draft.EducationEntry{{ID: "e1", School: "UCL", Degree: "BSc", Year: "2018"}}
	d.Experience = []draft.ExperienceEntry{{ID: "x1", Company: "ACME", Role: "Engineer", Duration: "2020", Bullet: "Cut costs 40%"}}
	d.Projects = []draft.ProjectEntry{{
		ID: "p1", Title: "notelang", Description: "A tiny language",
		TechStack: []string{"Go", "WASM"}, LiveURL: "https://live.example", GitHubURL: "https://github.com/ada/notelang",
	}}
	d.TechnicalSkills = []string{"Go", "Redis"}
	d.LinkedIn = "https://linkedin.com/in/ada"
	d.GitHub = "https://github.com/ada"

	want := strings.Join([]string{
		"NAME",
		"Ada Lovelace",
		"",
		"CONTACT",
		"ada@example.io | London",
		"",
		"SUMMARY",
		"Built things",
		"",
		"EDUCATION",
		"UCL | BSc | 2018",
		"",
		"EXPERIENCE",
		"Engineer | ACME | 2020",
		"- Cut costs 40%",
		"",
		"PROJECTS",
		"notelang",
		"A tiny language",
		"Tech: Go, WASM",
		"https://live.example | https://github.com/ada/notelang",
		"",
		"SKILLS",
		"Go, Redis",
		"",
		"LINKS",
		"LinkedIn: https://linkedin.com/in/ada",
		"GitHub: https://github.com/ada",
	}, "\n") + "\n"

	if got := PlainText(d); got != want {
		t.Fatalf("export mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPlainTextOmitsEmptySections(t *testing.T) {
	d := draft.NewBlank()
	d.Name = "Ada"

	got := PlainText(d)
	for _, header := range []string{"SUMMARY", "EDUCATION", "EXPERIENCE", "PROJECTS", "SKILLS", "LINKS"} {
		if strings.Contains(got, header) {
			t.Fatalf("empty section %s must be omitted entirely, got:\n%s", header, got)
		}
	}
}

func TestPlainTextSkipsBlankListEntries(t *testing.T) {
	d := draft.NewBlank()
	d.Name = "Ada"
	d.Education = []draft.EducationEntry{
		{ID: "blank"},
		{ID: "filled", School: "UCL"},
	}

	got := PlainText(d)
	if !strings.Contains(got, "EDUCATION\nUCL\n") && !strings.HasSuffix(got, "EDUCATION\nUCL\n") {
		t.Fatalf("expected single education line for the filled entry, got:\n%s", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank entries must not leave empty lines, got:\n%s", got)
	}
}
