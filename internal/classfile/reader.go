package classfile

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Provides utilities for reading class file data in big-endian format
type BinaryReader struct {
	reader    *bufio.Reader
	bytesRead int64
}

func NewBinaryReader(reader io.Reader) *BinaryReader {
	return &BinaryReader{
		reader: bufio.NewReader(reader),
	}
}

func (br *BinaryReader) BytesRead() int64 {
	return br.bytesRead
}

// ReadNBytes reads exactly n bytes and tracks position
func (br *BinaryReader) ReadNBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	bytesRead, err := io.ReadFull(br.reader, buf)
	if err != nil {
		return nil, err
	}
	br.bytesRead += int64(bytesRead)
	return buf, nil
}

// ReadU1 reads a single unsigned byte
func (br *BinaryReader) ReadU1() (uint8, error) {
	b, err := br.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	br.bytesRead++
	return b, nil
}

// ReadU2 reads a 2-byte unsigned integer (big-endian)
func (br *BinaryReader) ReadU2() (uint16, error) {
	buf, err := br.ReadNBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadU4 reads a 4-byte unsigned integer (big-endian)
func (br *BinaryReader) ReadU4() (uint32, error) {
	buf, err := br.ReadNBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// ReadUtf8String reads a UTF-8 string of specified length (no terminator)
func (br *BinaryReader) ReadUtf8String(length int) (string, error) {
	if length == 0 {
		return "", nil
	}

	stringBytes, err := br.ReadNBytes(length)
	if err != nil {
		return "", err
	}

	return string(stringBytes), nil
}

// Skip skips n bytes in the stream
func (br *BinaryReader) Skip(n int) error {
	_, err := br.ReadNBytes(n) // Just discard the data
	return err
}
