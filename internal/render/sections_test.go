package render

import (
	"testing"

	"stepResume/internal/draft"
)

func sectionByKind(t *testing.T, sections []Section, kind string) Section {
	t.Helper()
	for _, s := range sections {
		if s.Kind == kind {
			return s
		}
	}
	t.Fatalf("section %q not found in %+v", kind, sections)
	return Section{}
}

func TestSectionsInclusionMatchesPlainText(t *testing.T) {
	d := draft.NewBlank()
	sections := Sections(d, TemplateClassic)

	// 空草稿只剩 name 与 contact，和纯文本导出的包含规则一致。
	if len(sections) != 2 {
		t.Fatalf("blank draft should yield 2 sections, got %d: %+v", len(sections), sections)
	}
	if sections[0].Kind != "name" || sections[1].Kind != "contact" {
		t.Fatalf("unexpected section order: %+v", sections)
	}
	if sections[0].Lines[0] != "-" {
		t.Fatalf("missing name must render the placeholder, got %q", sections[0].Lines[0])
	}

	full := Sections(draft.Sample(), TemplateClassic)
	wantKinds := []string{"name", "contact", "summary", "education", "experience", "projects", "skills", "links"}
	if len(full) != len(wantKinds) {
		t.Fatalf("sample draft should yield %d sections, got %d", len(wantKinds), len(full))
	}
	for i, kind := range wantKinds {
		if full[i].Kind != kind {
			t.Fatalf("section %d = %q, want %q", i, full[i].Kind, kind)
		}
	}
}

func TestSectionsPlacementByTemplate(t *testing.T) {
	d := draft.Sample()

	for _, templateID := range []string{TemplateClassic, TemplateModern} {
		for _, s := range Sections(d, templateID) {
			if s.Placement != PlacementMain {
				t.Fatalf("template %s must place everything in main, got %s in %s",
					templateID, s.Kind, s.Placement)
			}
		}
	}

	split := Sections(d, TemplateSplit)
	for _, kind := range []string{"contact", "skills", "links"} {
		if got := sectionByKind(t, split, kind).Placement; got != PlacementSidebar {
			t.Fatalf("split template should place %s in the sidebar, got %s", kind, got)
		}
	}
	for _, kind := range []string{"name", "summary", "experience"} {
		if got := sectionByKind(t, split, kind).Placement; got != PlacementMain {
			t.Fatalf("split template should keep %s in main, got %s", kind, got)
		}
	}
}

func TestSectionsUnknownTemplateFallsBackToClassic(t *testing.T) {
	d := draft.Sample()
	for _, s := range Sections(d, "holographic") {
		if s.Placement != PlacementMain {
			t.Fatalf("unknown template must behave like classic, got %s in %s", s.Kind, s.Placement)
		}
	}
}
