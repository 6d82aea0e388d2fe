package generateaistory

import "juriscontent-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"text":          {Type: "string", Description: "Post copy the story is based on"},
			"theme":         {Type: "string", MaxLength: validation.IntPtr(200)},
			"area":          {Type: "string", MaxLength: validation.IntPtr(100)},
			"template":      {Type: "string", MaxLength: validation.IntPtr(50)},
			"visualProfile": {Type: "object", Description: "Passed through to the automation as is"},
			"lawyerName":    {Type: "string", MaxLength: validation.IntPtr(120)},
			"registration":  {Type: "string", MaxLength: validation.IntPtr(60)},
			"phone":         {Type: "string", MaxLength: validation.IntPtr(40)},
			"instagram":     {Type: "string", MaxLength: validation.IntPtr(60)},
		},
	}
}
