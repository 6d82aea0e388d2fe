package generatecontent

import "juriscontent-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"prompt"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"prompt": {
				Type:        "string",
				Description: "Instruction sent to the content webhook",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(8000),
			},
		},
	}
}
