package classfile

import "strings"

// normalizeClassToken converts an internal-form class token to a dotted
// fully-qualified name. Array tokens ("[[Lx/y/Foo;", "[I") unwrap to their
// element class; primitive array elements normalize to the empty string and
// are discarded by the caller. A bare single-letter name ("A") is a valid
// default-package class, not a primitive: only an array element that was not
// "L...;"-wrapped can be one. Nested classes keep their '$' separator, so
// "x/y/Foo$Bar" stays a distinct entry from "x/y/Foo".
func normalizeClassToken(token string) string {
	wasArray := false
	for strings.HasPrefix(token, "[") {
		token = token[1:]
		wasArray = true
	}
	switch {
	case strings.HasPrefix(token, "L") && strings.HasSuffix(token, ";"):
		token = token[1 : len(token)-1]
	case wasArray:
		// primitive array element (I, J, Z, ...)
		return ""
	}
	return strings.ReplaceAll(token, "/", ".")
}

// descriptorClassNames extracts every class name embedded in a field or
// method descriptor, e.g. "(Lx/y/Foo;[J)Lx/y/Bar;" yields x.y.Foo and
// x.y.Bar.
func descriptorClassNames(descriptor string) []string {
	var names []string

	for i := 0; i < len(descriptor); i++ {
		if descriptor[i] != 'L' {
			continue
		}
		end := strings.IndexByte(descriptor[i:], ';')
		if end < 0 {
			break
		}
		name := normalizeClassToken(descriptor[i : i+end+1])
		if name != "" {
			names = append(names, name)
		}
		i += end
	}

	return names
}
