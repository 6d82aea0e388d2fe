package normalizecontent

type Input struct {
	Template string      `json:"template"`
	Content  interface{} `json:"content,omitempty"`
	Text     string      `json:"text,omitempty"`
	Theme    string      `json:"theme,omitempty"`
}

type Output struct {
	Template          string                 `json:"template"`
	TemplateKnown     bool                   `json:"templateKnown"`
	NormalizedContent map[string]interface{} `json:"normalizedContent"`
	Primary           string                 `json:"primary"`
	Headline          string                 `json:"headline"`
	CTA               string                 `json:"cta"`
	Bullets           []string               `json:"bullets"`
}
