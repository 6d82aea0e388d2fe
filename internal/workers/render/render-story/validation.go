package renderstory

import "juriscontent-workers/internal/common/validation"

var hexColor = `^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"template"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"template": {
				Type:        "string",
				Description: "Story template identifier",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(50),
			},
			"text":  {Type: "string"},
			"theme": {Type: "string", MaxLength: validation.IntPtr(200)},
			"area":  {Type: "string", MaxLength: validation.IntPtr(100)},
			"visualProfile": {
				Type: "object",
				Properties: map[string]validation.Property{
					"primaryColor":    {Type: "string", Pattern: &hexColor},
					"secondaryColor":  {Type: "string", Pattern: &hexColor},
					"backgroundColor": {Type: "string", Pattern: &hexColor},
				},
			},
			"lawyerName":   {Type: "string", MaxLength: validation.IntPtr(120)},
			"registration": {Type: "string", MaxLength: validation.IntPtr(60)},
			"phone":        {Type: "string", MaxLength: validation.IntPtr(40)},
			"instagram":    {Type: "string", MaxLength: validation.IntPtr(60)},
			"logo":         {Type: "string"},
		},
	}
}
