package tool

import "sync"

// ParameterSchema describes one tool parameter in JSON-schema form.
type ParameterSchema struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
}

type ParametersSchema struct {
	Type       string                     `json:"type"`
	Properties map[string]ParameterSchema `json:"properties"`
	Required   []string                   `json:"required"`
}

type FunctionDefinition struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  ParametersSchema `json:"parameters"`
}

// Definition is one entry of the tool catalog, passed verbatim to the
// language model provider.
type Definition struct {
	ToolType string             `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// Registry is the read-only tool catalog consumed by the agent loop. The
// engine never mutates it after construction.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Definition),
	}
}

func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[def.Function.Name] = def
}

func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// Schemas returns all registered tool definitions for the provider call.
func (r *Registry) Schemas() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.tools))
	for _, def := range r.tools {
		out = append(out, def)
	}
	return out
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.tools))
	for name := range r.tools {
		out = append(out, name)
	}
	return out
}

func objectSchema(required []string, props map[string]ParameterSchema) ParametersSchema {
	return ParametersSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func functionDef(name string, description string, params ParametersSchema) Definition {
	return Definition{
		ToolType: "function",
		Function: FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
	}
}

// WithBrowserTools builds the default catalog of browser automation tools.
func WithBrowserTools() *Registry {
	r := NewRegistry()
	r.Register(functionDef("navigate_to", "Navigate to a URL in the browser",
		objectSchema([]string{"url"}, map[string]ParameterSchema{
			"url": {Type: "string", Description: "The URL to navigate to"},
		})))
	r.Register(functionDef("fill_form_field", "Fill a specific form field with a value",
		objectSchema([]string{"field_name", "value"}, map[string]ParameterSchema{
			"field_name": {Type: "string", Description: "Name or hint for the form field to fill"},
			"value":      {Type: "string", Description: "Value to fill in the field"},
		})))
	r.Register(functionDef("click_element", "Click an element on the current page",
		objectSchema([]string{"selector"}, map[string]ParameterSchema{
			"selector": {Type: "string", Description: "CSS selector of the element to click"},
		})))
	r.Register(functionDef("get_page_content", "Get the HTML content of the current page",
		objectSchema(nil, map[string]ParameterSchema{})))
	r.Register(functionDef("extract_data", "Extract structured data from the current page",
		objectSchema([]string{"selector"}, map[string]ParameterSchema{
			"selector": {Type: "string", Description: "CSS selector of the region to extract"},
		})))
	r.Register(functionDef("evaluate_js", "Evaluate a javascript expression against the run variables",
		objectSchema([]string{"expression"}, map[string]ParameterSchema{
			"expression": {Type: "string", Description: "Javascript expression; the $ symbol is bound to the variables"},
		})))
	r.Register(functionDef("check_http_status", "Check the HTTP status of the last navigation",
		objectSchema([]string{"expected"}, map[string]ParameterSchema{
			"expected": {Type: "number", Description: "Expected HTTP status code"},
		})))
	return r
}
