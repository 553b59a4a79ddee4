package util

// Chunk splits in into consecutive batches of at most size elements. The
// last batch may be shorter.
func Chunk[T any](in []T, size int) [][]T {
	if size <= 0 || len(in) == 0 {
		return nil
	}
	var out [][]T
	for size < len(in) {
		out = append(out, in[:size])
		in = in[size:]
	}
	return append(out, in)
}

// DeepCopyMap copies a JSON-shaped map one fork at a time so concurrent
// branches never share nested containers.
func DeepCopyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return DeepCopyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
