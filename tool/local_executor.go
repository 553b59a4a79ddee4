package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"github.com/gianlucamazza/webagent/logger"
	"go.uber.org/zap"
)

var _ Executor = new(LocalExecutor)

// LocalExecutor is an in-process executor used when no browser is attached.
// Browser tools return canned results, evaluate_js runs for real through an
// embedded javascript interpreter, so workflows and agent tasks stay
// executable in development and tests.
type LocalExecutor struct {
	mu         sync.Mutex
	currentUrl string
	lastStatus int
	selectors  map[string]bool
	bindings   map[string]any
}

func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{
		selectors: make(map[string]bool),
	}
}

// WithSelector marks a CSS selector as present on the simulated page.
func (e *LocalExecutor) WithSelector(selector string) *LocalExecutor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectors[selector] = true
	return e
}

// WithBindings sets the variables bound to $ in evaluate_js expressions.
func (e *LocalExecutor) WithBindings(bindings map[string]any) *LocalExecutor {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings = bindings
	return e
}

func (e *LocalExecutor) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	logger.Debug("executing local tool", zap.String("tool", name), zap.Any("args", args))
	switch name {
	case "navigate_to":
		url, _ := args["url"].(string)
		e.mu.Lock()
		e.currentUrl = url
		e.lastStatus = 200
		e.mu.Unlock()
		return fmt.Sprintf("Successfully navigated to: %s", url), nil
	case "fill_form_field":
		return "Form filled successfully", nil
	case "click_element":
		selector, _ := args["selector"].(string)
		return fmt.Sprintf("Clicked element: %s", selector), nil
	case "get_page_content":
		return "<html><body><h1>Example Page</h1></body></html>", nil
	case "extract_data":
		return `{"title": "Example", "price": "$99.99"}`, nil
	case "evaluate_js":
		expression, _ := args["expression"].(string)
		return e.evaluateJs(expression, args)
	case "check_http_status":
		expected := toInt(args["expected"])
		e.mu.Lock()
		status := e.lastStatus
		e.mu.Unlock()
		if status == expected {
			return "true", nil
		}
		return "false", nil
	default:
		logger.Warn("unknown local tool", zap.String("tool", name))
		return fmt.Sprintf("Tool '%s' not implemented", name), nil
	}
}

func (e *LocalExecutor) ElementExists(ctx context.Context, selector string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectors[selector], nil
}

func (e *LocalExecutor) evaluateJs(expression string, args map[string]any) (string, error) {
	if expression == "" {
		return "", fmt.Errorf("evaluate_js requires an expression")
	}
	bindings := e.snapshotBindings(args)
	data, err := json.Marshal(bindings)
	if err != nil {
		return "", err
	}
	vm := goja.New()
	script := fmt.Sprintf("var $ = %s;\n%s", data, expression)
	val, err := vm.RunString(script)
	if err != nil {
		return "", fmt.Errorf("error executing javascript %w", err)
	}
	res, err := json.Marshal(val.Export())
	if err != nil {
		return "", err
	}
	return string(res), nil
}

// bindings precedence: an explicit "bindings" argument wins over the
// executor-level bindings.
func (e *LocalExecutor) snapshotBindings(args map[string]any) map[string]any {
	if b, ok := args["bindings"].(map[string]any); ok {
		return b
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.bindings != nil {
		return e.bindings
	}
	return map[string]any{}
}

func toInt(v any) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	}
	return 0
}
