package content

import "strings"

// TemplateID selects the normalization rule applied to raw content.
type TemplateID string

const (
	TemplateFactCard    TemplateID = "fact-card"
	TemplateBulletList  TemplateID = "bullet-list"
	TemplateStatistic   TemplateID = "statistic"
	TemplateUrgentAlert TemplateID = "urgent-alert"
	TemplatePremium     TemplateID = "premium"

	// TemplateUnknown is produced for identifiers outside the known set.
	// Content normalized under it always takes the universal fallback path.
	TemplateUnknown TemplateID = ""
)

// legacy identifiers still emitted by the content generator
var templateAliases = map[string]TemplateID{
	"voce-sabia":  TemplateFactCard,
	"bullets":     TemplateBulletList,
	"estatistica": TemplateStatistic,
	"urgente":     TemplateUrgentAlert,
}

var knownTemplates = []TemplateID{
	TemplateFactCard,
	TemplateBulletList,
	TemplateStatistic,
	TemplateUrgentAlert,
	TemplatePremium,
}

func ParseTemplate(s string) TemplateID {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, t := range knownTemplates {
		if string(t) == key {
			return t
		}
	}
	if t, ok := templateAliases[key]; ok {
		return t
	}
	return TemplateUnknown
}

func KnownTemplates() []TemplateID {
	out := make([]TemplateID, len(knownTemplates))
	copy(out, knownTemplates)
	return out
}

func (t TemplateID) Known() bool {
	return t != TemplateUnknown
}

func (t TemplateID) String() string {
	if t == TemplateUnknown {
		return "unknown"
	}
	return string(t)
}
