package classfile

import "fmt"

// ParseError reports a structurally corrupt or unreadable class file. It is
// fatal to the analysis invocation that hit it: an unparseable class
// invalidates confidence in the usage and inventory sets, so no partial
// result is produced.
type ParseError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid class data at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("invalid class data in %s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
