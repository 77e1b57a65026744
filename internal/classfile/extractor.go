package classfile

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Extractor derives class-name sets from compiled artifacts: a lone .class
// file, a directory tree of class files, or a jar archive. Results are
// deterministic for identical input bytes.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Usage returns the set of fully-qualified class names the given compiled
// output references, minus the classes the output defines itself. Each path
// may be a directory, a jar, or a single class file.
func (e *Extractor) Usage(outputs []string) (map[string]struct{}, error) {
	referenced := make(map[string]struct{})
	defined := make(map[string]struct{})

	for _, path := range outputs {
		if err := e.scan(path, func(cf *ClassFile) {
			defined[cf.ThisClass] = struct{}{}
			for name := range cf.Referenced {
				referenced[name] = struct{}{}
			}
		}); err != nil {
			return nil, err
		}
	}

	for name := range defined {
		delete(referenced, name)
	}
	return referenced, nil
}

// ReferencedClasses returns every class name the artifact at path refers to,
// including its own classes.
func (e *Extractor) ReferencedClasses(path string) (map[string]struct{}, error) {
	referenced := make(map[string]struct{})
	err := e.scan(path, func(cf *ClassFile) {
		for name := range cf.Referenced {
			referenced[name] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}
	return referenced, nil
}

// ProvidedClasses returns the set of class names the artifact at path
// provides. Jar and directory entries are named by their .class entry path;
// a lone class file is parsed for its this_class.
func (e *Extractor) ProvidedClasses(path string) (map[string]struct{}, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	provided := make(map[string]struct{})

	switch {
	case info.IsDir():
		err = walkClassFiles(path, func(relPath string, _ func() (io.ReadCloser, error)) error {
			addEntryClass(provided, relPath)
			return nil
		})

	case isArchive(path):
		err = walkArchiveEntries(path, func(entryPath string, _ func() (io.ReadCloser, error)) error {
			addEntryClass(provided, entryPath)
			return nil
		})

	default:
		var cf *ClassFile
		cf, err = e.parseFile(path)
		if err == nil {
			provided[cf.ThisClass] = struct{}{}
		}
	}

	if err != nil {
		return nil, err
	}
	return provided, nil
}

// scan parses every class file reachable from path and hands each parsed
// file to visit. Any corrupt class aborts the scan with a ParseError.
func (e *Extractor) scan(path string, visit func(*ClassFile)) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}

	parseEntry := func(entryPath string, open func() (io.ReadCloser, error)) error {
		reader, err := open()
		if err != nil {
			return &ParseError{Path: entryPath, Err: err}
		}
		defer reader.Close()

		cf, err := Parse(reader)
		if err != nil {
			if parseErr, ok := err.(*ParseError); ok {
				parseErr.Path = entryPath
			}
			return err
		}
		visit(cf)
		return nil
	}

	switch {
	case info.IsDir():
		return walkClassFiles(path, func(relPath string, open func() (io.ReadCloser, error)) error {
			return parseEntry(filepath.Join(path, relPath), open)
		})

	case isArchive(path):
		return walkArchiveEntries(path, func(entryPath string, open func() (io.ReadCloser, error)) error {
			return parseEntry(path+"!"+entryPath, open)
		})

	default:
		cf, err := e.parseFile(path)
		if err != nil {
			return err
		}
		visit(cf)
		return nil
	}
}

func (e *Extractor) parseFile(path string) (*ClassFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	cf, err := Parse(file)
	if err != nil {
		if parseErr, ok := err.(*ParseError); ok {
			parseErr.Path = path
		}
		return nil, err
	}
	return cf, nil
}

func walkClassFiles(root string, visit func(relPath string, open func() (io.ReadCloser, error)) error) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return &ParseError{Path: path, Err: err}
		}
		if entry.IsDir() || !isClassEntry(entry.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return &ParseError{Path: path, Err: err}
		}

		return visit(filepath.ToSlash(relPath), func() (io.ReadCloser, error) {
			return os.Open(path)
		})
	})
}

func walkArchiveEntries(path string, visit func(entryPath string, open func() (io.ReadCloser, error)) error) error {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return &ParseError{Path: path, Err: fmt.Errorf("failed to open archive: %w", err)}
	}
	defer archive.Close()

	for _, entry := range archive.File {
		if !isClassEntry(entry.Name) {
			continue
		}
		entry := entry
		if err := visit(entry.Name, func() (io.ReadCloser, error) {
			return entry.Open()
		}); err != nil {
			return err
		}
	}
	return nil
}

func isArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip", ".war":
		return true
	}
	return false
}

// isClassEntry accepts regular class files and skips module descriptors,
// which define no usable class.
func isClassEntry(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".class") && base != "module-info.class"
}

// addEntryClass converts a .class entry path into a dotted class name.
func addEntryClass(out map[string]struct{}, entryPath string) {
	name := strings.TrimSuffix(entryPath, ".class")
	name = strings.ReplaceAll(name, "/", ".")
	if strings.TrimSpace(name) == "" {
		return
	}
	out[name] = struct{}{}
}
