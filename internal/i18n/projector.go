// Package i18n projects subject and section display tokens between English
// and Hindi. It is a pure dictionary: unknown tokens project to themselves so
// a missing entry can never block rendering.
package i18n

import "github.com/prashnalabs/papergen-backend/internal/model"

// canonical maps English tokens to their Hindi equivalents. The reverse map
// is derived once at init; both lookups are O(1).
var canonical = map[string]string{
	// Subjects
	"Mathematics":    "गणित",
	"Science":        "विज्ञान",
	"Physics":        "भौतिक विज्ञान",
	"Chemistry":      "रसायन विज्ञान",
	"Biology":        "जीव विज्ञान",
	"English":        "अंग्रेज़ी",
	"Hindi":          "हिंदी",
	"Social Science": "सामाजिक विज्ञान",
	"History":        "इतिहास",
	"Geography":      "भूगोल",
	"Civics":         "नागरिक शास्त्र",
	"Economics":      "अर्थशास्त्र",
	"Computer":       "कंप्यूटर",
	"Sanskrit":       "संस्कृत",

	// Section labels
	"Section A": "खंड अ",
	"Section B": "खंड ब",
	"Section C": "खंड स",
	"Section D": "खंड द",

	// Section names
	"Objective Type Questions":   "वस्तुनिष्ठ प्रश्न",
	"Short Answer Questions":     "लघु उत्तरीय प्रश्न",
	"Long Answer Questions":      "दीर्घ उत्तरीय प्रश्न",
	"Very Long Answer Questions": "अति दीर्घ उत्तरीय प्रश्न",
}

var reverse = make(map[string]string, len(canonical))

func init() {
	for en, hi := range canonical {
		reverse[hi] = en
	}
}

// ToLanguage projects token into the target language. Tokens already in the
// target language, and tokens absent from the dictionary, are returned
// unchanged.
func ToLanguage(token string, target model.Language) string {
	switch target {
	case model.LanguageHindi:
		if hi, ok := canonical[token]; ok {
			return hi
		}
	default:
		if en, ok := reverse[token]; ok {
			return en
		}
	}
	return token
}

// sectionLabels and sectionNames key the per-section display tokens by
// section id, in English; ToLanguage handles the Hindi side.
var sectionLabels = map[model.SectionID]string{
	model.SectionA: "Section A",
	model.SectionB: "Section B",
	model.SectionC: "Section C",
	model.SectionD: "Section D",
}

var sectionNames = map[model.SectionID]string{
	model.SectionA: "Objective Type Questions",
	model.SectionB: "Short Answer Questions",
	model.SectionC: "Long Answer Questions",
	model.SectionD: "Very Long Answer Questions",
}

// SectionLabel returns the short glyph for a section in the given language.
func SectionLabel(id model.SectionID, lang model.Language) string {
	return ToLanguage(sectionLabels[id], lang)
}

// SectionName returns the human description of a section's expected content.
func SectionName(id model.SectionID, lang model.Language) string {
	return ToLanguage(sectionNames[id], lang)
}

// Subjects returns the fixed subject list with display names in the given
// language, in canonical order.
func Subjects(lang model.Language) []string {
	names := []string{
		"Mathematics", "Science", "Physics", "Chemistry", "Biology",
		"English", "Hindi", "Social Science", "History", "Geography",
		"Civics", "Economics", "Computer", "Sanskrit",
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = ToLanguage(n, lang)
	}
	return out
}
