package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oliveagle/jsonpath"
)

var tokenRegex = regexp.MustCompile("{(.*?)}")

// ResolveInputParams substitutes {$.path} tokens in tool input parameters
// with values looked up from the workflow variables by jsonpath.
func ResolveInputParams(variables map[string]any, inputParams map[string]any) map[string]any {
	data := make(map[string]any)
	resolveParams(variables, inputParams, data)
	return data
}

func resolveParams(variables map[string]any, params map[string]any, output map[string]any) {
	for k, v := range params {
		switch v := v.(type) {
		case map[string]any:
			out := make(map[string]any)
			output[k] = out
			resolveParams(variables, v, out)
		case string:
			output[k] = resolveString(variables, v)
		case []any:
			output[k] = resolveList(variables, v)
		default:
			output[k] = v
		}
	}
}

func resolveList(variables map[string]any, list []any) []any {
	var output []any
	for _, v := range list {
		switch v := v.(type) {
		case map[string]any:
			out := make(map[string]any)
			output = append(output, out)
			resolveParams(variables, v, out)
		case string:
			output = append(output, resolveString(variables, v))
		case []any:
			output = append(output, resolveList(variables, v)...)
		default:
			output = append(output, v)
		}
	}
	return output
}

func resolveString(variables map[string]any, s string) string {
	tokens := tokenRegex.FindAllString(s, -1)
	for _, token := range tokens {
		tmatch := strings.ReplaceAll(token, "{", "")
		tmatch = strings.ReplaceAll(tmatch, "}", "")
		if !strings.HasPrefix(tmatch, "$") {
			continue
		}
		value, err := jsonpath.JsonPathLookup(variables, tmatch)
		if err != nil {
			continue
		}
		s = strings.ReplaceAll(s, token, fmt.Sprintf("%v", value))
	}
	return s
}
