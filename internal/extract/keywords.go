package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultIcon is used for headings that match no icon rule.
const DefaultIcon = "📝"

// IconRule maps any of its keywords to an icon.
type IconRule struct {
	Keywords []string
	Icon     string
}

// iconRules is scanned top to bottom; the first rule with a matching keyword wins.
var iconRules = compileIconRules([]IconRule{
	{Keywords: []string{"objetivo", "competência", "objective"}, Icon: "🎯"},
	{Keywords: []string{"material", "recurso", "resource"}, Icon: "📦"},
	{Keywords: []string{"preparação", "antes", "guião", "preparation"}, Icon: "🔧"},
	{Keywords: []string{"atividade", "exercício", "dinâmica", "desafio", "activity", "exercise"}, Icon: "🚀"},
	{Keywords: []string{"avaliação", "critério", "evaluation", "assessment"}, Icon: "📊"},
	{Keywords: []string{"slide"}, Icon: "🎬"},
	{Keywords: []string{"teasing", "jogo", "game"}, Icon: "🎮"},
	{Keywords: []string{"ficha", "worksheet"}, Icon: "📄"},
	{Keywords: []string{"enriquecimento", "enrichment"}, Icon: "🌟"},
	{Keywords: []string{"reflexão", "reflection"}, Icon: "💭"},
	{Keywords: []string{"discussão", "discussion"}, Icon: "💬"},
	{Keywords: []string{"conceito", "exemplo", "dica", "concept", "example", "tip"}, Icon: "💡"},
	{Keywords: []string{"estrutura", "structure"}, Icon: "📋"},
	{Keywords: []string{"temporal", "timing"}, Icon: "⏱️"},
	{Keywords: []string{"importante", "important"}, Icon: "⚠️"},
})

// IconRules returns a copy of the ordered icon table.
func IconRules() []IconRule {
	out := make([]IconRule, len(iconRules))
	for i, r := range iconRules {
		out[i] = IconRule{Keywords: append([]string(nil), r.Keywords...), Icon: r.Icon}
	}
	return out
}

// Icons returns every icon the table can produce, default included.
func Icons() []string {
	out := make([]string, 0, len(iconRules)+1)
	for _, r := range iconRules {
		out = append(out, r.Icon)
	}
	return append(out, DefaultIcon)
}

// IconFor picks the icon for a heading text.
func IconFor(text string) string {
	folded := fold(text)
	for _, r := range iconRules {
		if containsAny(folded, r.Keywords) {
			return r.Icon
		}
	}
	return DefaultIcon
}

// Category groups headings for navigation.
type Category string

const (
	CategoryObjectives  Category = "objectives"
	CategoryMaterials   Category = "materials"
	CategoryPreparation Category = "preparation"
	CategoryTeasing     Category = "teasing"
	CategoryActivities  Category = "activities"
	CategorySlides      Category = "slides"
	CategoryWorksheets  Category = "worksheets"
	CategoryEvaluation  Category = "evaluation"
	CategoryEnrichment  Category = "enrichment"
	CategoryReflection  Category = "reflection"
	CategoryOther       Category = "other"
)

type categoryRule struct {
	category Category
	icon     string
	keywords []string
}

// categoryRules is the match order. It differs from the display order:
// preparation is tested before activities so "Guião da atividade" lands in
// preparation, and teasing before activities so "Teasing: jogo" is teasing.
var categoryRules = []categoryRule{
	{CategoryObjectives, "🎯", foldAll("objetivo", "competência", "objective")},
	{CategoryMaterials, "📦", foldAll("material", "recurso", "resource")},
	{CategoryPreparation, "🔧", foldAll("preparação", "guião", "estrutura", "preparation")},
	{CategoryTeasing, "🎮", foldAll("teasing")},
	{CategoryActivities, "🚀", foldAll("atividade", "exercício", "jogo", "desafio", "dinâmica", "activity", "exercise", "game")},
	{CategorySlides, "🎬", foldAll("slide")},
	{CategoryWorksheets, "📄", foldAll("ficha", "worksheet")},
	{CategoryEvaluation, "📊", foldAll("avaliação", "critério", "evaluation", "assessment")},
	{CategoryEnrichment, "🌟", foldAll("enriquecimento", "enrichment")},
	{CategoryReflection, "💭", foldAll("reflexão", "discussão", "reflection", "discussion")},
}

var displayOrder = []Category{
	CategoryObjectives,
	CategoryMaterials,
	CategoryPreparation,
	CategoryTeasing,
	CategoryActivities,
	CategorySlides,
	CategoryWorksheets,
	CategoryEvaluation,
	CategoryReflection,
	CategoryEnrichment,
	CategoryOther,
}

// Categorize returns the navigation category of a heading text.
func Categorize(text string) Category {
	folded := fold(text)
	for _, r := range categoryRules {
		if containsAny(folded, r.keywords) {
			return r.category
		}
	}
	return CategoryOther
}

// CategoryOrder returns categories in display order.
func CategoryOrder() []Category {
	return append([]Category(nil), displayOrder...)
}

// Icon returns the navigation icon of the category.
func (c Category) Icon() string {
	for _, r := range categoryRules {
		if r.category == c {
			return r.icon
		}
	}
	return DefaultIcon
}

func compileIconRules(rules []IconRule) []IconRule {
	for i := range rules {
		rules[i].Keywords = foldAll(rules[i].Keywords...)
	}
	return rules
}

// fold normalizes text for keyword matching: NFC composition then Unicode
// case folding, so "OBJETIVOS" and a decomposed "competência" both match.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func foldAll(words ...string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = fold(w)
	}
	return out
}

func containsAny(folded string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	return false
}
