package todo

// SchemaURL is the resource name the bundled schema is compiled under.
const SchemaURL = "task-file.schema.json"

// bundledSchema describes the task file. Contiguous IDs cannot be expressed
// in JSON Schema and are checked separately.
const bundledSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "task-cli task file",
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["id", "description", "status", "createdAt"],
    "properties": {
      "id": { "type": "integer", "minimum": 1 },
      "description": { "type": "string", "minLength": 1 },
      "status": { "type": "string", "enum": ["todo", "in-progress", "done"] },
      "createdAt": { "type": "string", "minLength": 1 },
      "updatedAt": { "type": ["string", "null"] }
    }
  }
}
`

// BundledSchema returns the embedded task file schema JSON content.
func BundledSchema() []byte {
	return []byte(bundledSchema)
}
