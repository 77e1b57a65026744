package classfile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classBuilder assembles a minimal valid class file: a constant pool holding
// UTF8+Class entry pairs for this/super/referenced classes, optional
// descriptor constants, and an empty class body up to the interfaces table.
type classBuilder struct {
	pool      bytes.Buffer
	entries   uint16
	thisIndex uint16
	superIdx  uint16
}

func newClassBuilder(thisName, superName string) *classBuilder {
	b := &classBuilder{}
	b.thisIndex = b.addClass(thisName)
	b.superIdx = b.addClass(superName)
	return b
}

func (b *classBuilder) addUtf8(value string) uint16 {
	b.entries++
	b.pool.WriteByte(constUtf8)
	binary.Write(&b.pool, binary.BigEndian, uint16(len(value)))
	b.pool.WriteString(value)
	return b.entries
}

// addClass appends a UTF8 entry plus a Class entry pointing at it and
// returns the Class entry's pool index.
func (b *classBuilder) addClass(internalName string) uint16 {
	nameIndex := b.addUtf8(internalName)
	b.entries++
	b.pool.WriteByte(constClass)
	binary.Write(&b.pool, binary.BigEndian, nameIndex)
	return b.entries
}

// addNameAndType appends UTF8 name/descriptor entries plus the NameAndType
// entry referencing them.
func (b *classBuilder) addNameAndType(name, descriptor string) {
	nameIndex := b.addUtf8(name)
	descIndex := b.addUtf8(descriptor)
	b.entries++
	b.pool.WriteByte(constNameAndType)
	binary.Write(&b.pool, binary.BigEndian, nameIndex)
	binary.Write(&b.pool, binary.BigEndian, descIndex)
}

func (b *classBuilder) addLong(value uint64) {
	b.entries += 2 // longs occupy two pool slots
	b.pool.WriteByte(constLong)
	binary.Write(&b.pool, binary.BigEndian, value)
}

func (b *classBuilder) Bytes() []byte {
	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, uint32(classFileMagic))
	binary.Write(&out, binary.BigEndian, uint16(0))  // minor
	binary.Write(&out, binary.BigEndian, uint16(52)) // major (Java 8)
	binary.Write(&out, binary.BigEndian, b.entries+1)
	out.Write(b.pool.Bytes())
	binary.Write(&out, binary.BigEndian, uint16(0x0021)) // access flags
	binary.Write(&out, binary.BigEndian, b.thisIndex)
	binary.Write(&out, binary.BigEndian, b.superIdx)
	binary.Write(&out, binary.BigEndian, uint16(0)) // interfaces count
	return out.Bytes()
}

func TestParse_ThisAndSuper(t *testing.T) {
	b := newClassBuilder("com/acme/App", "java/lang/Object")

	cf, err := Parse(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, "com.acme.App", cf.ThisClass)
	assert.Equal(t, "java.lang.Object", cf.SuperClass)
	assert.Contains(t, cf.Referenced, "com.acme.App")
	assert.Contains(t, cf.Referenced, "java.lang.Object")
}

func TestParse_ClassConstants(t *testing.T) {
	b := newClassBuilder("com/acme/App", "java/lang/Object")
	b.addClass("com/lib/Service")
	b.addClass("com/lib/Service$Builder")
	b.addClass("[Lcom/lib/Element;")
	b.addClass("[[I") // primitive array, no class reference

	cf, err := Parse(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	assert.Contains(t, cf.Referenced, "com.lib.Service")
	assert.Contains(t, cf.Referenced, "com.lib.Service$Builder",
		"nested classes are distinct entries")
	assert.Contains(t, cf.Referenced, "com.lib.Element",
		"array references unwrap to the element class")
	assert.NotContains(t, cf.Referenced, "")
	assert.NotContains(t, cf.Referenced, "I")
}

func TestParse_SingleLetterDefaultPackageClass(t *testing.T) {
	b := newClassBuilder("A", "java/lang/Object")
	b.addClass("B")
	b.addNameAndType("convert", "(LC;)LD;")

	cf, err := Parse(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, "A", cf.ThisClass)
	assert.Contains(t, cf.Referenced, "A")
	assert.Contains(t, cf.Referenced, "B",
		"a one-letter default-package class is not a primitive")
	assert.Contains(t, cf.Referenced, "C")
	assert.Contains(t, cf.Referenced, "D")
}

func TestParse_DescriptorReferences(t *testing.T) {
	b := newClassBuilder("com/acme/App", "java/lang/Object")
	b.addNameAndType("handle", "(Lcom/lib/Request;J)Lcom/lib/Response;")

	cf, err := Parse(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	assert.Contains(t, cf.Referenced, "com.lib.Request")
	assert.Contains(t, cf.Referenced, "com.lib.Response")
}

func TestParse_LongTakesTwoSlots(t *testing.T) {
	b := newClassBuilder("com/acme/App", "java/lang/Object")
	b.addLong(42)
	b.addClass("com/lib/AfterLong")

	cf, err := Parse(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	assert.Contains(t, cf.Referenced, "com.lib.AfterLong")
}

func TestParse_Deterministic(t *testing.T) {
	b := newClassBuilder("com/acme/App", "java/lang/Object")
	b.addClass("com/lib/Service")
	data := b.Bytes()

	first, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	second, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, first.Referenced, second.Referenced)
}

func TestParse_BadMagic(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0, 0, 0, 0}

	_, err := Parse(bytes.NewReader(data))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParse_Truncated(t *testing.T) {
	b := newClassBuilder("com/acme/App", "java/lang/Object")
	data := b.Bytes()

	_, err := Parse(bytes.NewReader(data[:len(data)-5]))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDescriptorClassNames(t *testing.T) {
	names := descriptorClassNames("(Lcom/lib/A;[[Lcom/lib/B;IJ)Lcom/lib/C;")
	assert.ElementsMatch(t, []string{"com.lib.A", "com.lib.B", "com.lib.C"}, names)

	assert.Empty(t, descriptorClassNames("()V"))
	assert.Empty(t, descriptorClassNames("(IJZ)D"))

	assert.ElementsMatch(t, []string{"A"}, descriptorClassNames("(LA;)V"))
}

func TestNormalizeClassToken(t *testing.T) {
	assert.Equal(t, "com.lib.A", normalizeClassToken("com/lib/A"))
	assert.Equal(t, "com.lib.A", normalizeClassToken("[[Lcom/lib/A;"))
	assert.Equal(t, "", normalizeClassToken("[I"))
	assert.Equal(t, "", normalizeClassToken("[[J"))

	// Single letters are primitives only in array-element position.
	assert.Equal(t, "A", normalizeClassToken("A"))
	assert.Equal(t, "A", normalizeClassToken("LA;"))
	assert.Equal(t, "A", normalizeClassToken("[LA;"))
}
