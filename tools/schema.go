package tools

import "github.com/invopop/jsonschema"

// GenerateSchema derives the JSON input schema for a tool from its input
// struct. Property descriptions come from `jsonschema_description` tags.
func GenerateSchema[T any]() InputSchema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return InputSchema{
		Type:       "object",
		Properties: schema.Properties,
		Required:   schema.Required,
	}
}
