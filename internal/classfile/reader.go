// Package classfile parses the JVM class file format (JVMS §4) into a plain
// in-memory structure: constant pool, access flags, super/interfaces, and a
// method table with enough of the Code attribute decoded to enumerate
// invocation instructions. It goes no further than that — no verification,
// no stack-map analysis, no attribute beyond what callers need.
package classfile

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const classMagic = 0xCAFEBABE

// classReader is a buffered big-endian reader over raw class bytes, tracking
// position for error messages. Mirrors the read-one-typed-field-at-a-time
// idiom used for other binary JVM-adjacent formats (HPROF heap dumps): a
// small set of ReadU1/U2/U4 helpers plus ReadNBytes for the rest.
type classReader struct {
	r   *bufio.Reader
	pos int64
}

func newClassReader(data []byte) *classReader {
	return &classReader{r: bufio.NewReader(bytes.NewReader(data))}
}

func (cr *classReader) readNBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(cr.r, buf); err != nil {
		return nil, err
	}
	cr.pos += int64(n)
	return buf, nil
}

func (cr *classReader) readU1() (uint8, error) {
	b, err := cr.r.ReadByte()
	if err != nil {
		return 0, err
	}
	cr.pos++
	return b, nil
}

func (cr *classReader) readU2() (uint16, error) {
	buf, err := cr.readNBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

func (cr *classReader) readU4() (uint32, error) {
	buf, err := cr.readNBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

func (cr *classReader) readU8() (uint64, error) {
	buf, err := cr.readNBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}

// ParseError names the class file that failed to parse and why.
type ParseError struct {
	Origin string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Origin, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes a single .class file. The origin is used only for error
// messages (it is typically the zip entry name or filesystem path).
func Parse(origin string, data []byte) (*ClassFile, error) {
	cr := newClassReader(data)

	magic, err := cr.readU4()
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading magic: %w", err)}
	}
	if magic != classMagic {
		return nil, &ParseError{origin, fmt.Errorf("bad magic 0x%08X", magic)}
	}

	minor, err := cr.readU2()
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading minor version: %w", err)}
	}
	major, err := cr.readU2()
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading major version: %w", err)}
	}

	pool, err := readConstantPool(cr)
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading constant pool: %w", err)}
	}

	accessFlags, err := cr.readU2()
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading access flags: %w", err)}
	}
	thisClass, err := cr.readU2()
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading this_class: %w", err)}
	}
	superClass, err := cr.readU2()
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading super_class: %w", err)}
	}

	ifaceCount, err := cr.readU2()
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading interfaces_count: %w", err)}
	}
	interfaces := make([]uint16, ifaceCount)
	for i := range interfaces {
		v, err := cr.readU2()
		if err != nil {
			return nil, &ParseError{origin, fmt.Errorf("reading interface %d: %w", i, err)}
		}
		interfaces[i] = v
	}

	if err := skipFieldsOrMethods(cr, true); err != nil {
		return nil, &ParseError{origin, fmt.Errorf("skipping fields: %w", err)}
	}

	methods, err := readMethods(cr, pool)
	if err != nil {
		return nil, &ParseError{origin, fmt.Errorf("reading methods: %w", err)}
	}

	// Trailing class attributes are not needed by this analyzer; ignore.

	cf := &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: pool,
		AccessFlags:  AccessFlags(accessFlags),
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Methods:      methods,
		Origin:       origin,
	}
	return cf, nil
}

// skipFieldsOrMethods consumes a fields_count/field_info table without
// retaining any of it — fields play no role in call-graph construction.
// When isFields is false it is unused; methods are read fully by readMethods.
func skipFieldsOrMethods(cr *classReader, isFields bool) error {
	if !isFields {
		return nil
	}
	count, err := cr.readU2()
	if err != nil {
		return err
	}
	for i := uint16(0); i < count; i++ {
		if _, err := cr.readU2(); err != nil { // access_flags
			return err
		}
		if _, err := cr.readU2(); err != nil { // name_index
			return err
		}
		if _, err := cr.readU2(); err != nil { // descriptor_index
			return err
		}
		if err := skipAttributes(cr); err != nil {
			return err
		}
	}
	return nil
}

func skipAttributes(cr *classReader) error {
	count, err := cr.readU2()
	if err != nil {
		return err
	}
	for i := uint16(0); i < count; i++ {
		if _, err := cr.readU2(); err != nil { // attribute_name_index
			return err
		}
		length, err := cr.readU4()
		if err != nil {
			return err
		}
		if _, err := cr.readNBytes(int(length)); err != nil {
			return err
		}
	}
	return nil
}
