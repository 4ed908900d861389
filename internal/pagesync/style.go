package pagesync

import "strings"

// setStyleProperty sets one declaration in an inline style attribute,
// replacing an earlier declaration of the same property.
func setStyleProperty(style, name, value string) string {
	var decls []string
	for _, decl := range splitDeclarations(style) {
		prop, _, _ := strings.Cut(decl, ":")
		if strings.TrimSpace(prop) == name {
			continue
		}
		decls = append(decls, decl)
	}
	decls = append(decls, name+": "+value)
	return strings.Join(decls, "; ")
}

// styleProperty returns the value of one declaration in an inline style attribute.
func styleProperty(style, name string) (string, bool) {
	for _, decl := range splitDeclarations(style) {
		prop, value, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(prop) == name {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// splitDeclarations splits on ';' outside quotes and parentheses, so
// values like url("data:image/png;base64,...") stay whole.
func splitDeclarations(style string) []string {
	var (
		out   []string
		start int
		quote byte
		depth int
	)
	flush := func(end int) {
		if decl := strings.TrimSpace(style[start:end]); decl != "" {
			out = append(out, decl)
		}
		start = end + 1
	}
	for i := 0; i < len(style); i++ {
		c := style[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case c == ';' && depth == 0:
			flush(i)
		}
	}
	flush(len(style))
	return out
}

func cssURL(u string) string {
	return `url("` + strings.ReplaceAll(u, `"`, `\"`) + `")`
}
