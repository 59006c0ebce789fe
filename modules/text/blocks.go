package text

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/value"
)

const defaultDelimiter = ","

func str(id string) block.PortDefinition { return block.Port(id, "string", true) }

func optStr(id string) block.PortDefinition { return block.Port(id, "string", false) }

func upper(s string) string { return strings.ToUpper(s) }
func lower(s string) string { return strings.ToLower(s) }
func trim(s string) string  { return strings.TrimSpace(s) }

func concat() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:           "string.concat",
			Name:         "Concatenate",
			Description:  "Concatenate two strings",
			Inputs:       []block.PortDefinition{str("a"), str("b")},
			Outputs:      []block.PortDefinition{str("result")},
			ConfigSchema: map[string]string{"separator": "string"},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			a, err := ctx.Text("a")
			if err != nil {
				return nil, err
			}
			b, err := ctx.Text("b")
			if err != nil {
				return nil, err
			}
			sep, err := ctx.ConfigString("separator", "")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.String(a + sep + b)}, nil
		},
	}
}

// length counts runes, not bytes.
func length() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "string.length",
			Name:        "Length",
			Description: "Number of characters in a string",
			Inputs:      []block.PortDefinition{str("value")},
			Outputs:     []block.PortDefinition{block.Port("result", "integer", true)},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			s, err := ctx.Text("value")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Int(int64(utf8.RuneCountInString(s)))}, nil
		},
	}
}

func mapString(id, name, desc string, fn func(string) string) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          id,
			Name:        name,
			Description: desc,
			Inputs:      []block.PortDefinition{str("value")},
			Outputs:     []block.PortDefinition{str("result")},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			s, err := ctx.Text("value")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.String(fn(s))}, nil
		},
	}
}

func contains() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "string.contains",
			Name:        "Contains",
			Description: "Whether value contains search",
			Inputs:      []block.PortDefinition{str("value"), str("search")},
			Outputs:     []block.PortDefinition{block.Port("result", "boolean", true)},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			s, err := ctx.Text("value")
			if err != nil {
				return nil, err
			}
			search, err := ctx.Text("search")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.Bool(strings.Contains(s, search))}, nil
		},
	}
}

func replace() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "string.replace",
			Name:        "Replace",
			Description: "Replace every occurrence of search with replacement",
			Inputs:      []block.PortDefinition{str("value"), str("search"), str("replacement")},
			Outputs:     []block.PortDefinition{str("result")},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			s, err := ctx.Text("value")
			if err != nil {
				return nil, err
			}
			search, err := ctx.Text("search")
			if err != nil {
				return nil, err
			}
			repl, err := ctx.Text("replacement")
			if err != nil {
				return nil, err
			}
			return value.Map{"result": value.String(strings.ReplaceAll(s, search, repl))}, nil
		},
	}
}

// optionalText reads an optional string input, falling back to def.
func optionalText(ctx *block.ExecutionContext, name, def string) (string, error) {
	if _, ok := ctx.Input(name); !ok {
		return def, nil
	}
	return ctx.Text(name)
}

func split() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "string.split",
			Name:        "Split",
			Description: "Split a string on a delimiter",
			Inputs:      []block.PortDefinition{str("value"), optStr("delimiter")},
			Outputs:     []block.PortDefinition{block.Port("result", "array", true)},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			s, err := ctx.Text("value")
			if err != nil {
				return nil, err
			}
			delim, err := optionalText(ctx, "delimiter", defaultDelimiter)
			if err != nil {
				return nil, err
			}
			parts := strings.Split(s, delim)
			arr := make([]value.Value, len(parts))
			for i, p := range parts {
				arr[i] = value.String(p)
			}
			return value.Map{"result": value.Array(arr...)}, nil
		},
	}
}

func join() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "string.join",
			Name:        "Join",
			Description: "Join an array of strings with a delimiter",
			Inputs:      []block.PortDefinition{block.Port("values", "array", true), optStr("delimiter")},
			Outputs:     []block.PortDefinition{str("result")},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			arr, err := ctx.Array("values")
			if err != nil {
				return nil, err
			}
			delim, err := optionalText(ctx, "delimiter", defaultDelimiter)
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(arr))
			for i, v := range arr {
				s, ok := v.AsString()
				if !ok {
					return nil, block.Failf("Join: element %d is %s, not String", i, v.Kind())
				}
				parts[i] = s
			}
			return value.Map{"result": value.String(strings.Join(parts, delim))}, nil
		},
	}
}

// substring slices by rune. start and length are rounded and clamped to
// the string, so out-of-range requests yield a shorter or empty result.
func substring() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "string.substring",
			Name:        "Substring",
			Description: "Characters of value from start, optionally limited to length",
			Inputs: []block.PortDefinition{
				str("value"),
				block.Port("start", "number", true),
				block.Port("length", "number", false),
			},
			Outputs: []block.PortDefinition{str("result")},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			s, err := ctx.Text("value")
			if err != nil {
				return nil, err
			}
			startF, err := ctx.Float("start")
			if err != nil {
				return nil, err
			}
			runes := []rune(s)
			start := clampIndex(startF, len(runes))
			end := len(runes)
			if _, ok := ctx.Input("length"); ok {
				n, err := ctx.Float("length")
				if err != nil {
					return nil, err
				}
				end = start + clampIndex(n, len(runes)-start)
			}
			return value.Map{"result": value.String(string(runes[start:end]))}, nil
		},
	}
}

func clampIndex(f float64, limit int) int {
	f = math.Round(f)
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= float64(limit) {
		return limit
	}
	return int(f)
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// template fills {{name}} placeholders from inputs of the same name.
// Strings are inserted as-is, other values in their printed form, and
// placeholders without a matching input are left untouched.
func template() block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:           "string.template",
			Name:         "Template",
			Description:  "Fill {{name}} placeholders in the template config from inputs",
			Outputs:      []block.PortDefinition{str("result")},
			ConfigSchema: map[string]string{"template": "string"},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			tmpl, ok := ctx.ConfigValue("template")
			if !ok {
				return nil, block.MissingConfig("template")
			}
			t, ok := tmpl.AsString()
			if !ok {
				return nil, block.WrongConfigType("template", "string", tmpl)
			}
			out := placeholder.ReplaceAllStringFunc(t, func(m string) string {
				name := placeholder.FindStringSubmatch(m)[1]
				v, ok := ctx.Input(name)
				if !ok {
					return m
				}
				if s, ok := v.AsString(); ok {
					return s
				}
				return v.String()
			})
			return value.Map{"result": value.String(out)}, nil
		},
		Check: block.RequireConfig("template"),
	}
}
