package removebackground

import "juriscontent-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"logo"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"logo": {
				Type:        "string",
				Description: "Logo as bare base64 or a data URI",
				MinLength:   validation.IntPtr(1),
			},
		},
	}
}
