package content

// Card is the template-specific payload of a FieldSet. The set of
// implementations is closed: FactCard, BulletList, StatisticCard,
// UrgentAlert, PremiumCard and FallbackCard.
type Card interface {
	Template() TemplateID
	fields() Fields
	payload() map[string]interface{}
}

type Statistic struct {
	Number      string `json:"number"`
	Context     string `json:"context"`
	Explanation string `json:"explanation"`
	Source      string `json:"source"`
}

func (s Statistic) IsZero() bool {
	return s == Statistic{}
}

func (s Statistic) toMap() map[string]interface{} {
	if s.IsZero() {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"number":      s.Number,
		"context":     s.Context,
		"explanation": s.Explanation,
		"source":      s.Source,
	}
}

type AlertDetails struct {
	Deadline string `json:"deadline"`
	Risk     string `json:"risk"`
	Action   string `json:"action"`
}

// Fields is the flat, template-agnostic view read by the composition engine.
type Fields struct {
	Primary    string
	Supporting string
	Headline   string
	Highlight  string
	CTA        string
	Bullets    []string
	Statistic  Statistic
	Alert      AlertDetails
}

// FieldSet is the normalized content for one render.
type FieldSet struct {
	Template TemplateID
	Card     Card
}

func (fs FieldSet) Fields() Fields {
	if fs.Card == nil {
		return Fields{}
	}
	return fs.Card.fields()
}

// Payload renders the card as a JSON-friendly map with stable keys, used
// for job variables and collaborator requests.
func (fs FieldSet) Payload() map[string]interface{} {
	if fs.Card == nil {
		return map[string]interface{}{}
	}
	return fs.Card.payload()
}

type FactCard struct {
	Question  string
	Answer    string
	Highlight string
	CTA       string
}

func (FactCard) Template() TemplateID { return TemplateFactCard }

func (c FactCard) fields() Fields {
	return Fields{
		Primary:    c.Question,
		Supporting: c.Answer,
		Headline:   c.Question,
		Highlight:  c.Highlight,
		CTA:        c.CTA,
	}
}

func (c FactCard) payload() map[string]interface{} {
	return map[string]interface{}{
		"question":  c.Question,
		"answer":    c.Answer,
		"highlight": c.Highlight,
		"cta":       c.CTA,
	}
}

type BulletList struct {
	Headline string
	Bullets  []string
	CTA      string
}

func (BulletList) Template() TemplateID { return TemplateBulletList }

func (c BulletList) fields() Fields {
	return Fields{
		Primary:  c.Headline,
		Headline: c.Headline,
		Bullets:  append([]string(nil), c.Bullets...),
		CTA:      c.CTA,
	}
}

func (c BulletList) payload() map[string]interface{} {
	bullets := make([]string, len(c.Bullets))
	copy(bullets, c.Bullets)
	return map[string]interface{}{
		"headline": c.Headline,
		"bullets":  bullets,
		"cta":      c.CTA,
	}
}

type StatisticCard struct {
	Statistic Statistic
	Headline  string
	CTA       string
}

func (StatisticCard) Template() TemplateID { return TemplateStatistic }

func (c StatisticCard) fields() Fields {
	return Fields{
		Primary:    c.Headline,
		Supporting: c.Statistic.Explanation,
		Headline:   c.Headline,
		CTA:        c.CTA,
		Statistic:  c.Statistic,
	}
}

func (c StatisticCard) payload() map[string]interface{} {
	return map[string]interface{}{
		"statistic": c.Statistic.toMap(),
		"headline":  c.Headline,
		"cta":       c.CTA,
	}
}

type UrgentAlert struct {
	Alert     string
	Deadline  string
	Risk      string
	Action    string
	Headline  string
	Highlight string
	CTA       string
}

func (UrgentAlert) Template() TemplateID { return TemplateUrgentAlert }

func (c UrgentAlert) fields() Fields {
	return Fields{
		Primary:    c.Alert,
		Supporting: c.Risk,
		Headline:   c.Headline,
		Highlight:  c.Highlight,
		CTA:        c.CTA,
		Alert: AlertDetails{
			Deadline: c.Deadline,
			Risk:     c.Risk,
			Action:   c.Action,
		},
	}
}

func (c UrgentAlert) payload() map[string]interface{} {
	return map[string]interface{}{
		"alert":     c.Alert,
		"deadline":  c.Deadline,
		"risk":      c.Risk,
		"action":    c.Action,
		"headline":  c.Headline,
		"highlight": c.Highlight,
		"cta":       c.CTA,
	}
}

type PremiumCard struct {
	Headline   string
	Insight    string
	Conclusion string
	Highlight  string
	CTA        string
}

func (PremiumCard) Template() TemplateID { return TemplatePremium }

func (c PremiumCard) fields() Fields {
	return Fields{
		Primary:    c.Headline,
		Supporting: c.Insight,
		Headline:   c.Headline,
		Highlight:  c.Highlight,
		CTA:        c.CTA,
	}
}

func (c PremiumCard) payload() map[string]interface{} {
	return map[string]interface{}{
		"headline":   c.Headline,
		"insight":    c.Insight,
		"conclusion": c.Conclusion,
		"highlight":  c.Highlight,
		"cta":        c.CTA,
	}
}

// FallbackCard is produced when content is missing or the template is
// unknown.
type FallbackCard struct {
	Question  string
	Answer    string
	Highlight string
	Headline  string
	CTA       string
}

func (FallbackCard) Template() TemplateID { return TemplateUnknown }

func (c FallbackCard) fields() Fields {
	return Fields{
		Primary:    c.Question,
		Supporting: c.Answer,
		Headline:   c.Headline,
		Highlight:  c.Highlight,
		CTA:        c.CTA,
	}
}

func (c FallbackCard) payload() map[string]interface{} {
	return map[string]interface{}{
		"question":  c.Question,
		"answer":    c.Answer,
		"highlight": c.Highlight,
		"headline":  c.Headline,
		"bullets":   []string{},
		"statistic": map[string]interface{}{},
		"cta":       c.CTA,
	}
}
