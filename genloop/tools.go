package genloop

import (
	"github.com/singhbipin2117/gen-ai-project-generator/llm"
)

// ToolRegistry is a fixed catalog of operation descriptors consumed by the
// planner (as request schemas) and by the dispatcher (for name validation).
// It is immutable after construction.
type ToolRegistry struct {
	defs   []llm.ToolDefinition
	byName map[string]bool
}

// CoreRegistry returns the registry of the six workspace operations.
func CoreRegistry() *ToolRegistry {
	defs := []llm.ToolDefinition{
		{
			Name:        "read_file",
			Description: "Reads contents of a file in the current working directory",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Name of the file to read",
					},
				},
				"required": []string{"filename"},
			},
		},
		{
			Name:        "get_file_metadata",
			Description: "Returns metadata for a file in the current working directory",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Name of the file to get metadata for",
					},
				},
				"required": []string{"filename"},
			},
		},
		{
			Name:        "list_directory_contents",
			Description: "Lists all files and directories in the specified directory",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory to list contents from (defaults to current directory)",
					},
				},
			},
		},
		{
			Name:        "write_to_file",
			Description: "Writes content to a file in the current working directory",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Name of the file to write to",
					},
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Content to write to the file",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "Write mode ('w' for overwrite, 'a' for append)",
						"enum":        []string{"w", "a"},
					},
				},
				"required": []string{"filename", "content"},
			},
		},
		{
			Name:        "run_command",
			Description: "Runs a terminal command in the current working directory, without sudo",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"command": map[string]interface{}{
						"type":        "string",
						"description": "Command to run",
					},
				},
				"required": []string{"command"},
			},
		},
		{
			Name:        "create_directory",
			Description: "Creates a directory in the current working directory",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"directory_name": map[string]interface{}{
						"type":        "string",
						"description": "Name of directory to create",
					},
				},
				"required": []string{"directory_name"},
			},
		},
	}

	byName := make(map[string]bool, len(defs))
	for _, d := range defs {
		byName[d.Name] = true
	}
	return &ToolRegistry{defs: defs, byName: byName}
}

// Definitions returns the operation descriptors in registration order.
func (r *ToolRegistry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, len(r.defs))
	copy(defs, r.defs)
	return defs
}

// Has reports whether an operation name is registered.
func (r *ToolRegistry) Has(name string) bool {
	return r.byName[name]
}

// Names returns the registered operation names in registration order.
func (r *ToolRegistry) Names() []string {
	names := make([]string, len(r.defs))
	for i, d := range r.defs {
		names[i] = d.Name
	}
	return names
}

// Count returns the number of registered operations.
func (r *ToolRegistry) Count() int {
	return len(r.defs)
}
