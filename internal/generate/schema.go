package generate

import (
	"fmt"
	"strings"
)

// Schema describes the JSON value a structured generation call must return.
// It is rendered into plain-text format instructions appended to the prompt,
// since the backend constrains output to JSON but not to a shape.
type Schema struct {
	Fields []Field
}

type Field struct {
	Name        string
	Type        string
	Description string
	// Items describes the object fields of array elements, for "array" typed
	// fields whose elements are objects.
	Items []Field
}

func (s Schema) Instructions() string {
	var b strings.Builder
	b.WriteString("The output must be a single JSON object with the following fields:\n")
	writeFields(&b, s.Fields, 0)
	b.WriteString("Return only the JSON object, with no surrounding text or code fences.")
	return b.String()
}

func writeFields(b *strings.Builder, fields []Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		fmt.Fprintf(b, "%s- %q (%s): %s\n", indent, f.Name, f.Type, f.Description)
		if len(f.Items) > 0 {
			fmt.Fprintf(b, "%s  Each element is an object with:\n", indent)
			writeFields(b, f.Items, depth+2)
		}
	}
}
