package composefeedimage

import (
	"strings"

	"juriscontent-workers/internal/common/validation"
	"juriscontent-workers/internal/render"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"imageUrl"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"imageUrl": {
				Type:        "string",
				Description: "Base photo: http(s) URL, data URI or bare base64",
				MinLength:   validation.IntPtr(1),
			},
			"theme":    {Type: "string", MaxLength: validation.IntPtr(200)},
			"area":     {Type: "string", MaxLength: validation.IntPtr(100)},
			"template": {Type: "string", MaxLength: validation.IntPtr(50)},
			"text":     {Type: "string"},
			"bullets":  {Type: "array", Description: "Strings or objects with texto/titulo"},
			"format": {
				Type:        "string",
				Description: "Output size; unknown values render square",
				MaxLength:   validation.IntPtr(20),
			},
			"style": {
				Type:        "string",
				Description: "Palette key, one of " + strings.Join(render.PaletteKeys(), ", "),
				MaxLength:   validation.IntPtr(20),
			},
			"lawyerName":   {Type: "string", MaxLength: validation.IntPtr(120)},
			"registration": {Type: "string", MaxLength: validation.IntPtr(60)},
			"logo":         {Type: "string"},
		},
	}
}
