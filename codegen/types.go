package codegen

import (
	"strings"

	"github.com/genfn/genfn/ast"
)

// typeAliases maps the rustic type spellings the grammar accepts onto Go
// types. Everything else passes through opaquely.
var typeAliases = map[string]string{
	"i8":   "int8",
	"i16":  "int16",
	"i32":  "int32",
	"i64":  "int64",
	"u8":   "uint8",
	"u16":  "uint16",
	"u32":  "uint32",
	"u64":  "uint64",
	"f32":  "float32",
	"f64":  "float64",
	"str":  "string",
	"char": "rune",
	"()":   "struct{}",
}

// goType rewrites declared type text into its Go spelling.
func goType(text string) string {
	text = strings.TrimSpace(text)
	if t, ok := typeAliases[text]; ok {
		return t
	}
	if elem, ok := strings.CutPrefix(text, "[]"); ok {
		return "[]" + goType(elem)
	}
	if elem, ok := strings.CutPrefix(text, "*"); ok {
		return "*" + goType(elem)
	}
	if elem, ok := ast.ResultElem(text); ok {
		return "coro.Result[" + goType(elem) + "]"
	}
	if i := strings.IndexByte(text, '<'); i >= 0 && strings.HasSuffix(text, ">") {
		args := splitTypeArgs(text[i+1 : len(text)-1])
		for j := range args {
			args[j] = goType(args[j])
		}
		return text[:i] + "[" + strings.Join(args, ", ") + "]"
	}
	return text
}

func splitTypeArgs(s string) []string {
	var args []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<', '[':
			depth++
		case '>', ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(s[start:]))
}

func isIntType(t string) bool {
	switch t {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "byte":
		return true
	}
	return false
}

// exportName turns a snake_case item name into the exported Go identifier:
// count_to becomes CountTo.
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// wrapperName is the unexported spelling of the wrapper struct for an item:
// count_to becomes countToIter.
func wrapperName(name string) string {
	exported := exportName(name)
	return strings.ToLower(exported[:1]) + exported[1:] + "Iter"
}
