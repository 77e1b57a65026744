package classfile

import (
	"fmt"
	"io"
	"strings"
)

/*
*	Class file format described here
*	https://docs.oracle.com/javase/specs/jvms/se21/html/jvms-4.html
 */

const classFileMagic = 0xCAFEBABE

// Constant pool tags (JVMS table 4.4-B)
const (
	constUtf8               = 1
	constInteger            = 3
	constFloat              = 4
	constLong               = 5
	constDouble             = 6
	constClass              = 7
	constString             = 8
	constFieldref           = 9
	constMethodref          = 10
	constInterfaceMethodref = 11
	constNameAndType        = 12
	constMethodHandle       = 15
	constMethodType         = 16
	constDynamic            = 17
	constInvokeDynamic      = 18
	constModule             = 19
	constPackage            = 20
)

// ClassFile holds the parts of one parsed class file the analysis cares
// about: the class it defines and every class name its constant pool refers
// to, in dotted form.
type ClassFile struct {
	ThisClass  string
	SuperClass string
	Referenced map[string]struct{}
}

/*
*	Parse reads one class file through its constant pool:
*
*	u4			magic (0xCAFEBABE)
*	u2 u2		minor, major version
*	u2			constant pool count (entries indexed 1..count-1)
*	cp_info[]	tagged entries; long/double occupy two slots
*	u2 u2 u2	access flags, this_class, super_class
*	u2, u2[]	interface count, interfaces
*
*	Every bytecode operand reference resolves through the constant pool, so
*	fields, methods and attributes beyond this point carry no class names the
*	pool does not already contain.
 */
func Parse(r io.Reader) (*ClassFile, error) {
	reader := NewBinaryReader(r)

	fail := func(err error) (*ClassFile, error) {
		return nil, &ParseError{Offset: reader.BytesRead(), Err: err}
	}

	magic, err := reader.ReadU4()
	if err != nil {
		return fail(fmt.Errorf("failed to read magic: %w", err))
	}
	if magic != classFileMagic {
		return fail(fmt.Errorf("bad magic 0x%08X", magic))
	}

	// minor + major version
	if err := reader.Skip(4); err != nil {
		return fail(fmt.Errorf("failed to read version: %w", err))
	}

	pool, err := parseConstantPool(reader)
	if err != nil {
		return fail(err)
	}

	// access flags
	if err := reader.Skip(2); err != nil {
		return fail(fmt.Errorf("failed to read access flags: %w", err))
	}

	thisIndex, err := reader.ReadU2()
	if err != nil {
		return fail(fmt.Errorf("failed to read this_class: %w", err))
	}
	superIndex, err := reader.ReadU2()
	if err != nil {
		return fail(fmt.Errorf("failed to read super_class: %w", err))
	}

	thisName, err := pool.className(thisIndex)
	if err != nil {
		return fail(err)
	}

	cf := &ClassFile{
		ThisClass:  thisName,
		Referenced: make(map[string]struct{}),
	}
	if superIndex != 0 {
		superName, err := pool.className(superIndex)
		if err != nil {
			return fail(err)
		}
		cf.SuperClass = superName
	}

	collectReferences(pool, cf.Referenced)
	return cf, nil
}

// constantPool keeps the subset of pool data needed for reference
// extraction: the UTF8 table and which entries name classes or descriptors.
type constantPool struct {
	utf8        map[uint16]string
	classes     map[uint16]uint16 // pool index of each CONSTANT_Class -> its name_index
	descriptors []uint16          // descriptor_index of NameAndType and MethodType entries
}

func parseConstantPool(reader *BinaryReader) (*constantPool, error) {
	count, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("constant pool count must be at least 1")
	}

	pool := &constantPool{
		utf8:    make(map[uint16]string),
		classes: make(map[uint16]uint16),
	}

	for index := uint16(1); index < count; index++ {
		tag, err := reader.ReadU1()
		if err != nil {
			return nil, fmt.Errorf("failed to read tag of constant %d: %w", index, err)
		}

		switch tag {
		case constUtf8:
			length, err := reader.ReadU2()
			if err != nil {
				return nil, fmt.Errorf("failed to read utf8 length of constant %d: %w", index, err)
			}
			value, err := reader.ReadUtf8String(int(length))
			if err != nil {
				return nil, fmt.Errorf("failed to read utf8 data of constant %d: %w", index, err)
			}
			pool.utf8[index] = value

		case constInteger, constFloat:
			if err := reader.Skip(4); err != nil {
				return nil, fmt.Errorf("failed to read constant %d: %w", index, err)
			}

		case constLong, constDouble:
			if err := reader.Skip(8); err != nil {
				return nil, fmt.Errorf("failed to read constant %d: %w", index, err)
			}
			index++ // long and double take two pool slots

		case constClass:
			nameIndex, err := reader.ReadU2()
			if err != nil {
				return nil, fmt.Errorf("failed to read class constant %d: %w", index, err)
			}
			pool.classes[index] = nameIndex

		case constString, constModule, constPackage:
			if err := reader.Skip(2); err != nil {
				return nil, fmt.Errorf("failed to read constant %d: %w", index, err)
			}

		case constMethodType:
			descIndex, err := reader.ReadU2()
			if err != nil {
				return nil, fmt.Errorf("failed to read method type constant %d: %w", index, err)
			}
			pool.descriptors = append(pool.descriptors, descIndex)

		case constNameAndType:
			// name_index, then descriptor_index
			if err := reader.Skip(2); err != nil {
				return nil, fmt.Errorf("failed to read constant %d: %w", index, err)
			}
			descIndex, err := reader.ReadU2()
			if err != nil {
				return nil, fmt.Errorf("failed to read name-and-type constant %d: %w", index, err)
			}
			pool.descriptors = append(pool.descriptors, descIndex)

		case constFieldref, constMethodref, constInterfaceMethodref, constDynamic, constInvokeDynamic:
			if err := reader.Skip(4); err != nil {
				return nil, fmt.Errorf("failed to read constant %d: %w", index, err)
			}

		case constMethodHandle:
			if err := reader.Skip(3); err != nil {
				return nil, fmt.Errorf("failed to read constant %d: %w", index, err)
			}

		default:
			return nil, fmt.Errorf("unknown constant pool tag %d at constant %d", tag, index)
		}
	}

	return pool, nil
}

// className resolves a this_class/super_class index to a dotted class name:
// the index points at a CONSTANT_Class entry, whose name_index points at the
// UTF8 entry holding the internal-form name.
func (pool *constantPool) className(classIndex uint16) (string, error) {
	nameIndex, ok := pool.classes[classIndex]
	if !ok {
		return "", fmt.Errorf("index %d does not point at a class constant", classIndex)
	}
	name, ok := pool.utf8[nameIndex]
	if !ok {
		return "", fmt.Errorf("class constant points at missing utf8 entry %d", nameIndex)
	}
	return normalizeClassToken(name), nil
}

// collectReferences adds every class name the pool refers to: CONSTANT_Class
// entries plus the class tokens embedded in field/method descriptors.
func collectReferences(pool *constantPool, out map[string]struct{}) {
	for _, nameIndex := range pool.classes {
		if name, ok := pool.utf8[nameIndex]; ok {
			addClassToken(out, normalizeClassToken(name))
		}
	}
	for _, descIndex := range pool.descriptors {
		if descriptor, ok := pool.utf8[descIndex]; ok {
			for _, name := range descriptorClassNames(descriptor) {
				addClassToken(out, name)
			}
		}
	}
}

func addClassToken(out map[string]struct{}, name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	out[name] = struct{}{}
}
