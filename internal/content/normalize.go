package content

import "strings"

// Fixed copy used when content does not provide its own.
const (
	GenericQuestion       = "Did you know?"
	GenericHeadline       = "Legal Insight"
	FallbackHighlight     = "KNOW YOUR RIGHTS!"
	FallbackCTA           = "Swipe to learn more"
	FactCardHighlight     = "LEARN YOUR RIGHTS!"
	BulletListCTA         = "Save this for later!"
	DefaultStatNumber     = "70%"
	StatisticCTA          = "Protect your rights!"
	UrgentAction          = "Consult a lawyer"
	UrgentHighlight       = "URGENT"
	UrgentCTA             = "Don't miss the deadline!"
	PremiumHighlight      = "Specialized Consultancy"
	PremiumCTA            = "Book a consultation"
	bulletHeadlinePrefix  = "Your rights: "
	bulletHeadlineBare    = "Your rights"
	alertPrefix           = "ATTENTION: "
	alertBare             = "ATTENTION"
	fallbackQuestionStart = "Did you know about "
)

// Normalize maps raw caller content onto the field set of the requested
// template. It never fails: every missing or malformed field is replaced
// by its default independently of the others.
func Normalize(id TemplateID, raw interface{}, fallbackText, theme string) FieldSet {
	theme = strings.TrimSpace(theme)
	excerpt := truncateRunes(fallbackText, fallbackTextLength)

	m, ok := raw.(map[string]interface{})
	if !ok || m == nil {
		return FieldSet{Template: id, Card: universalFallback(excerpt, theme)}
	}

	var card Card
	switch id {
	case TemplateFactCard:
		card = FactCard{
			Question:  resolveString(m, keyQuestion, theme, GenericQuestion),
			Answer:    resolveString(m, keyAnswer, excerpt),
			Highlight: resolveString(m, keyHighlight, FactCardHighlight),
			CTA:       FallbackCTA,
		}
	case TemplateBulletList:
		bullets := resolveStrings(m, keyBullets)
		if len(bullets) > MaxBullets {
			bullets = bullets[:MaxBullets]
		}
		card = BulletList{
			Headline: resolveString(m, keyTitle, withTheme(bulletHeadlinePrefix, theme, bulletHeadlineBare)),
			Bullets:  bullets,
			CTA:      resolveString(m, keyCTA, BulletListCTA),
		}
	case TemplateStatistic:
		stat := Statistic{
			Number:      resolveString(m, keyNumber, DefaultStatNumber),
			Context:     resolveString(m, keyContext, theme),
			Explanation: resolveString(m, keyExplanation),
			Source:      resolveString(m, keySource),
		}
		card = StatisticCard{
			Statistic: stat,
			Headline:  strings.TrimSpace(stat.Number + " " + stat.Context),
			CTA:       StatisticCTA,
		}
	case TemplateUrgentAlert:
		alert := resolveString(m, keyAlert, withTheme(alertPrefix, theme, alertBare))
		card = UrgentAlert{
			Alert:     alert,
			Deadline:  resolveString(m, keyDeadline),
			Risk:      resolveString(m, keyRisk),
			Action:    resolveString(m, keyAction, UrgentAction),
			Headline:  alert,
			Highlight: UrgentHighlight,
			CTA:       UrgentCTA,
		}
	case TemplatePremium:
		conclusion := resolveString(m, keyConclusion)
		card = PremiumCard{
			Headline:   resolveString(m, keyHeadline, theme, GenericHeadline),
			Insight:    resolveString(m, keyInsight, excerpt),
			Conclusion: conclusion,
			Highlight:  resolveString(m, keyConclusion, PremiumHighlight),
			CTA:        PremiumCTA,
		}
	default:
		card = universalFallback(excerpt, theme)
	}

	return FieldSet{Template: id, Card: card}
}

func universalFallback(excerpt, theme string) FallbackCard {
	question := GenericQuestion
	if theme != "" {
		question = fallbackQuestionStart + theme + "?"
	}
	headline := theme
	if headline == "" {
		headline = GenericHeadline
	}
	return FallbackCard{
		Question:  question,
		Answer:    excerpt,
		Highlight: FallbackHighlight,
		Headline:  headline,
		CTA:       FallbackCTA,
	}
}
