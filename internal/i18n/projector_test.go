package i18n

import (
	"testing"

	"github.com/prashnalabs/papergen-backend/internal/model"
)

func TestToLanguageRoundTrip(t *testing.T) {
	for en := range canonical {
		hi := ToLanguage(en, model.LanguageHindi)
		if hi == en {
			t.Errorf("token %q has no Hindi projection", en)
			continue
		}
		back := ToLanguage(hi, model.LanguageEnglish)
		if back != en {
			t.Errorf("round trip broke: %q -> %q -> %q", en, hi, back)
		}
	}
}

func TestToLanguageIdempotent(t *testing.T) {
	// Projecting into the language a token is already in is a no-op.
	if got := ToLanguage("गणित", model.LanguageHindi); got != "गणित" {
		t.Errorf("expected identity, got %q", got)
	}
	if got := ToLanguage("Mathematics", model.LanguageEnglish); got != "Mathematics" {
		t.Errorf("expected identity, got %q", got)
	}
}

func TestToLanguageUnknownToken(t *testing.T) {
	for _, lang := range []model.Language{model.LanguageEnglish, model.LanguageHindi} {
		if got := ToLanguage("Astronomy", lang); got != "Astronomy" {
			t.Errorf("unknown token must project to itself, got %q", got)
		}
	}
}

func TestSectionTokens(t *testing.T) {
	tests := []struct {
		id        model.SectionID
		lang      model.Language
		wantLabel string
		wantName  string
	}{
		{model.SectionA, model.LanguageEnglish, "Section A", "Objective Type Questions"},
		{model.SectionA, model.LanguageHindi, "खंड अ", "वस्तुनिष्ठ प्रश्न"},
		{model.SectionD, model.LanguageEnglish, "Section D", "Very Long Answer Questions"},
		{model.SectionD, model.LanguageHindi, "खंड द", "अति दीर्घ उत्तरीय प्रश्न"},
	}

	for _, tt := range tests {
		if got := SectionLabel(tt.id, tt.lang); got != tt.wantLabel {
			t.Errorf("label %s/%s: expected %q, got %q", tt.id, tt.lang, tt.wantLabel, got)
		}
		if got := SectionName(tt.id, tt.lang); got != tt.wantName {
			t.Errorf("name %s/%s: expected %q, got %q", tt.id, tt.lang, tt.wantName, got)
		}
	}
}

func TestSubjectsProjected(t *testing.T) {
	en := Subjects(model.LanguageEnglish)
	hi := Subjects(model.LanguageHindi)

	if len(en) != len(hi) {
		t.Fatalf("subject lists diverge: %d vs %d", len(en), len(hi))
	}
	for i := range en {
		if ToLanguage(en[i], model.LanguageHindi) != hi[i] {
			t.Errorf("position %d: %q does not project to %q", i, en[i], hi[i])
		}
	}
}
