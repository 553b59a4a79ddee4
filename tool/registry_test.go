package tool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBrowserToolCatalog(t *testing.T) {
	r := WithBrowserTools()

	names := r.Names()
	require.ElementsMatch(t, []string{
		"navigate_to",
		"fill_form_field",
		"click_element",
		"get_page_content",
		"extract_data",
		"evaluate_js",
		"check_http_status",
	}, names)
	require.Len(t, r.Schemas(), len(names))

	def, ok := r.Get("navigate_to")
	require.True(t, ok)
	require.Equal(t, "function", def.ToolType)
	require.Equal(t, []string{"url"}, def.Function.Parameters.Required)
	require.Equal(t, "string", def.Function.Parameters.Properties["url"].Type)

	_, ok = r.Get("teleport")
	require.False(t, ok)
}

func TestRegistryRegisterOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Register(functionDef("probe", "first", objectSchema(nil, nil)))
	r.Register(functionDef("probe", "second", objectSchema(nil, nil)))

	def, ok := r.Get("probe")
	require.True(t, ok)
	require.Equal(t, "second", def.Function.Description)
	require.Len(t, r.Names(), 1)
}
