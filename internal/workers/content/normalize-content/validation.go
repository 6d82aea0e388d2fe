package normalizecontent

import "juriscontent-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"template": {
				Type:        "string",
				Description: "Template identifier; unknown values take the fallback layout",
				MaxLength:   validation.IntPtr(50),
			},
			"text": {
				Type:        "string",
				Description: "Plain copy used when structured fields are missing",
			},
			"theme": {
				Type:        "string",
				Description: "Post theme",
				MaxLength:   validation.IntPtr(200),
			},
		},
	}
}
