package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_UniversalFallback(t *testing.T) {
	nonMappings := []struct {
		name string
		raw  interface{}
	}{
		{name: "nil", raw: nil},
		{name: "string", raw: "just text"},
		{name: "number", raw: 42.0},
		{name: "sequence", raw: []interface{}{"a", "b"}},
		{name: "typed nil map", raw: map[string]interface{}(nil)},
	}

	templates := append(KnownTemplates(), TemplateUnknown)

	for _, tmpl := range templates {
		for _, tt := range nonMappings {
			t.Run(tmpl.String()+"/"+tt.name, func(t *testing.T) {
				fs := Normalize(tmpl, tt.raw, "", "")
				f := fs.Fields()

				assert.Equal(t, tmpl, fs.Template)
				assert.IsType(t, FallbackCard{}, fs.Card)
				assert.NotEmpty(t, f.Primary)
				assert.NotEmpty(t, f.CTA)
				assert.Empty(t, f.Bullets)
				assert.True(t, f.Statistic.IsZero())
			})
		}
	}
}

func TestNormalize_FallbackCopy(t *testing.T) {
	longText := strings.Repeat("á", 200)

	fs := Normalize(TemplateFactCard, nil, longText, "tenant law")
	card, ok := fs.Card.(FallbackCard)
	require.True(t, ok)

	assert.Equal(t, "Did you know about tenant law?", card.Question)
	assert.Equal(t, 150, len([]rune(card.Answer)))
	assert.Equal(t, FallbackHighlight, card.Highlight)
	assert.Equal(t, "tenant law", card.Headline)
	assert.Equal(t, FallbackCTA, card.CTA)

	noTheme := Normalize(TemplateUnknown, nil, "", "  ").Card.(FallbackCard)
	assert.Equal(t, GenericQuestion, noTheme.Question)
	assert.Equal(t, GenericHeadline, noTheme.Headline)
	assert.Empty(t, noTheme.Answer)
}

func TestNormalize_UnknownTemplateWithContent(t *testing.T) {
	raw := map[string]interface{}{"pergunta": "ignored"}

	fs := Normalize(ParseTemplate("carousel"), raw, "", "labor law")

	assert.Equal(t, TemplateUnknown, fs.Template)
	assert.Equal(t, "Did you know about labor law?", fs.Fields().Primary)
}

func TestNormalize_FactCard(t *testing.T) {
	tests := []struct {
		name      string
		raw       map[string]interface{}
		fallback  string
		theme     string
		question  string
		answer    string
		highlight string
	}{
		{
			name: "all fields supplied",
			raw: map[string]interface{}{
				"pergunta": "Can your landlord keep the deposit?",
				"resposta": "Only for documented damage.",
				"destaque": "CHECK YOUR LEASE",
			},
			theme:     "rentals",
			question:  "Can your landlord keep the deposit?",
			answer:    "Only for documented damage.",
			highlight: "CHECK YOUR LEASE",
		},
		{
			name:      "english keys",
			raw:       map[string]interface{}{"question": "Q?", "answer": "A."},
			question:  "Q?",
			answer:    "A.",
			highlight: FactCardHighlight,
		},
		{
			name:      "question falls back to theme",
			raw:       map[string]interface{}{"pergunta": "   "},
			fallback:  "Fallback answer",
			theme:     "rentals",
			question:  "rentals",
			answer:    "Fallback answer",
			highlight: FactCardHighlight,
		},
		{
			name:      "wrong types are treated as missing",
			raw:       map[string]interface{}{"pergunta": []interface{}{"x"}, "resposta": map[string]interface{}{}},
			question:  GenericQuestion,
			answer:    "",
			highlight: FactCardHighlight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := Normalize(TemplateFactCard, tt.raw, tt.fallback, tt.theme)
			card, ok := fs.Card.(FactCard)
			require.True(t, ok)

			assert.Equal(t, tt.question, card.Question)
			assert.Equal(t, tt.answer, card.Answer)
			assert.Equal(t, tt.highlight, card.Highlight)
			assert.Equal(t, FallbackCTA, card.CTA)
			assert.Equal(t, tt.question, fs.Fields().Primary)
		})
	}
}

func TestNormalize_BulletList(t *testing.T) {
	t.Run("truncates to four in order", func(t *testing.T) {
		raw := map[string]interface{}{
			"bullets": []interface{}{"one", "two", "three", "four", "five", "six"},
		}

		fs := Normalize(TemplateBulletList, raw, "", "consumer law")
		card := fs.Card.(BulletList)

		assert.Equal(t, []string{"one", "two", "three", "four"}, card.Bullets)
		assert.Equal(t, "Your rights: consumer law", card.Headline)
		assert.Equal(t, BulletListCTA, card.CTA)
	})

	t.Run("structured entries and custom copy", func(t *testing.T) {
		raw := map[string]interface{}{
			"titulo": "Before signing",
			"cta":    "Share with a friend",
			"bullets": []interface{}{
				map[string]interface{}{"texto": "Read every clause"},
				map[string]interface{}{"titulo": "Ask for a copy"},
				"",
				7.0,
			},
		}

		card := Normalize(TemplateBulletList, raw, "", "").Card.(BulletList)

		assert.Equal(t, "Before signing", card.Headline)
		assert.Equal(t, "Share with a friend", card.CTA)
		assert.Equal(t, []string{"Read every clause", "Ask for a copy", "7"}, card.Bullets)
	})

	t.Run("non sequence bullets", func(t *testing.T) {
		raw := map[string]interface{}{"bullets": "not a list"}

		fs := Normalize(TemplateBulletList, raw, "", "")

		assert.Empty(t, fs.Fields().Bullets)
		assert.Equal(t, "Your rights", fs.Fields().Primary)
	})
}

func TestNormalize_Statistic(t *testing.T) {
	raw := map[string]interface{}{
		"numero":   "85%",
		"contexto": "consumer claims",
		"fonte":    "survey 2024",
	}

	fs := Normalize(TemplateStatistic, raw, "", "consumer rights")
	card, ok := fs.Card.(StatisticCard)
	require.True(t, ok)

	assert.Equal(t, "85% consumer claims", card.Headline)
	assert.Equal(t, "survey 2024", card.Statistic.Source)
	assert.Equal(t, "", card.Statistic.Explanation)
	assert.Equal(t, StatisticCTA, card.CTA)
	assert.Equal(t, "85% consumer claims", fs.Fields().Primary)

	defaults := Normalize(TemplateStatistic, map[string]interface{}{}, "", "consumer rights").Card.(StatisticCard)
	assert.Equal(t, "70% consumer rights", defaults.Headline)
	assert.Equal(t, DefaultStatNumber, defaults.Statistic.Number)
	assert.Equal(t, "consumer rights", defaults.Statistic.Context)

	numeric := Normalize(TemplateStatistic, map[string]interface{}{"number": 12.5}, "", "").Card.(StatisticCard)
	assert.Equal(t, "12.5", numeric.Statistic.Number)
	assert.Equal(t, "12.5", numeric.Headline)
}

func TestNormalize_UrgentAlert(t *testing.T) {
	raw := map[string]interface{}{
		"prazo": "30 days",
		"risco": "losing the claim",
	}

	card := Normalize(TemplateUrgentAlert, raw, "", "labor claims").Card.(UrgentAlert)

	assert.Equal(t, "ATTENTION: labor claims", card.Alert)
	assert.Equal(t, card.Alert, card.Headline)
	assert.Equal(t, "30 days", card.Deadline)
	assert.Equal(t, "losing the claim", card.Risk)
	assert.Equal(t, UrgentAction, card.Action)
	assert.Equal(t, UrgentHighlight, card.Highlight)
	assert.Equal(t, UrgentCTA, card.CTA)

	f := Normalize(TemplateUrgentAlert, raw, "", "labor claims").Fields()
	assert.Equal(t, "30 days", f.Alert.Deadline)
	assert.Equal(t, UrgentAction, f.Alert.Action)
}

func TestNormalize_Premium(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		card := Normalize(TemplatePremium, map[string]interface{}{}, "An insight from the text", "").Card.(PremiumCard)

		assert.Equal(t, GenericHeadline, card.Headline)
		assert.Equal(t, "An insight from the text", card.Insight)
		assert.Equal(t, "", card.Conclusion)
		assert.Equal(t, PremiumHighlight, card.Highlight)
		assert.Equal(t, PremiumCTA, card.CTA)
	})

	t.Run("conclusion becomes highlight", func(t *testing.T) {
		raw := map[string]interface{}{
			"headline":  "Inheritance planning",
			"insight":   "Plan early",
			"conclusao": "Protect your family",
		}

		card := Normalize(TemplatePremium, raw, "", "wills").Card.(PremiumCard)

		assert.Equal(t, "Inheritance planning", card.Headline)
		assert.Equal(t, "Plan early", card.Insight)
		assert.Equal(t, "Protect your family", card.Conclusion)
		assert.Equal(t, "Protect your family", card.Highlight)
	})
}

func TestNormalize_PartialInputIsPartiallyDefaulted(t *testing.T) {
	raw := map[string]interface{}{"alerta": "Deadline on Friday"}

	card := Normalize(TemplateUrgentAlert, raw, "", "taxes").Card.(UrgentAlert)

	assert.Equal(t, "Deadline on Friday", card.Alert)
	assert.Equal(t, UrgentAction, card.Action)
	assert.Empty(t, card.Risk)
}

func TestFieldSet_Payload(t *testing.T) {
	fs := Normalize(TemplateStatistic, map[string]interface{}{"numero": "85%"}, "", "claims")

	payload := fs.Payload()

	assert.Equal(t, "85% claims", payload["headline"])
	stat, ok := payload["statistic"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "85%", stat["number"])

	assert.Empty(t, FieldSet{}.Payload())
}

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		in   string
		want TemplateID
	}{
		{in: "fact-card", want: TemplateFactCard},
		{in: " Bullet-List ", want: TemplateBulletList},
		{in: "voce-sabia", want: TemplateFactCard},
		{in: "bullets", want: TemplateBulletList},
		{in: "estatistica", want: TemplateStatistic},
		{in: "urgente", want: TemplateUrgentAlert},
		{in: "premium", want: TemplatePremium},
		{in: "", want: TemplateUnknown},
		{in: "story-carousel", want: TemplateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTemplate(tt.in))
		})
	}
}
