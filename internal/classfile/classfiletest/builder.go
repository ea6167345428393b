// Package classfiletest builds minimal, valid .class byte sequences for
// tests programmatically rather than shipping real binary fixtures. Only
// the fields this analyzer reads are populated; everything else is zeroed.
package classfiletest

import (
	"bytes"
	"encoding/binary"
)

// Builder accumulates a constant pool and a method table, then renders a
// complete class file with Bytes.
type Builder struct {
	pool        [][]byte // pre-encoded constant pool entries, 1-indexed (pool[0] unused placeholder)
	accessFlags uint16
	thisClass   uint16
	superClass  uint16
	interfaces  []uint16
	methods     []methodEntry
}

type methodEntry struct {
	accessFlags uint16
	nameIndex   uint16
	descIndex   uint16
	code        []byte // nil means no Code attribute (abstract/native)
	maxStack    uint16
	maxLocals   uint16
}

// New starts a builder for a class/interface named fqn (dotted form),
// public and not abstract by default.
func New(fqn string) *Builder {
	b := &Builder{pool: [][]byte{nil}, accessFlags: 0x0021} // ACC_PUBLIC | ACC_SUPER
	classIdx := b.addClass(fqn)
	b.thisClass = classIdx
	return b
}

// SetAccessFlags overrides the class access_flags (e.g. interface/abstract bits).
func (b *Builder) SetAccessFlags(flags uint16) *Builder {
	b.accessFlags = flags
	return b
}

// SetSuper records a superclass by FQN. Omit for java.lang.Object-rooted types.
func (b *Builder) SetSuper(fqn string) *Builder {
	b.superClass = b.addClass(fqn)
	return b
}

// AddInterface records a directly-implemented interface by FQN.
func (b *Builder) AddInterface(fqn string) *Builder {
	b.interfaces = append(b.interfaces, b.addClass(fqn))
	return b
}

// AddMethod adds a method with the given name/descriptor/flags and no Code
// attribute (suitable for abstract or native methods).
func (b *Builder) AddMethod(name, descriptor string, flags uint16) *Builder {
	b.methods = append(b.methods, methodEntry{
		accessFlags: flags,
		nameIndex:   b.addUTF8(name),
		descIndex:   b.addUTF8(descriptor),
	})
	return b
}

// AddMethodWithCode adds a concrete method whose body is the given raw
// bytecode (already-encoded instructions; see Code helpers below).
func (b *Builder) AddMethodWithCode(name, descriptor string, flags uint16, code []byte, maxStack, maxLocals uint16) *Builder {
	b.methods = append(b.methods, methodEntry{
		accessFlags: flags,
		nameIndex:   b.addUTF8(name),
		descIndex:   b.addUTF8(descriptor),
		code:        code,
		maxStack:    maxStack,
		maxLocals:   maxLocals,
	})
	return b
}

// MethodRefIndex interns a Methodref constant (owner FQN, name, descriptor)
// and returns its constant pool index, for use as an invoke* operand.
func (b *Builder) MethodRefIndex(ownerFQN, name, descriptor string) uint16 {
	return b.addRef(10, ownerFQN, name, descriptor)
}

// InterfaceMethodRefIndex is MethodRefIndex for invokeinterface targets.
func (b *Builder) InterfaceMethodRefIndex(ownerFQN, name, descriptor string) uint16 {
	return b.addRef(11, ownerFQN, name, descriptor)
}

func (b *Builder) addRef(tag uint8, ownerFQN, name, descriptor string) uint16 {
	classIdx := b.addClass(ownerFQN)
	natIdx := b.addNameAndType(name, descriptor)
	entry := make([]byte, 5)
	entry[0] = tag
	binary.BigEndian.PutUint16(entry[1:3], classIdx)
	binary.BigEndian.PutUint16(entry[3:5], natIdx)
	b.pool = append(b.pool, entry)
	return uint16(len(b.pool) - 1)
}

func (b *Builder) addNameAndType(name, descriptor string) uint16 {
	nameIdx := b.addUTF8(name)
	descIdx := b.addUTF8(descriptor)
	entry := make([]byte, 5)
	entry[0] = 12
	binary.BigEndian.PutUint16(entry[1:3], nameIdx)
	binary.BigEndian.PutUint16(entry[3:5], descIdx)
	b.pool = append(b.pool, entry)
	return uint16(len(b.pool) - 1)
}

func (b *Builder) addClass(fqn string) uint16 {
	internal := toInternal(fqn)
	nameIdx := b.addUTF8(internal)
	entry := make([]byte, 3)
	entry[0] = 7
	binary.BigEndian.PutUint16(entry[1:3], nameIdx)
	b.pool = append(b.pool, entry)
	return uint16(len(b.pool) - 1)
}

func (b *Builder) addUTF8(s string) uint16 {
	buf := make([]byte, 0, 3+len(s))
	buf = append(buf, 1)
	lenBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBuf, uint16(len(s)))
	buf = append(buf, lenBuf...)
	buf = append(buf, []byte(s)...)
	b.pool = append(b.pool, buf)
	return uint16(len(b.pool) - 1)
}

func toInternal(fqn string) string {
	out := make([]byte, len(fqn))
	for i := 0; i < len(fqn); i++ {
		if fqn[i] == '.' {
			out[i] = '/'
		} else {
			out[i] = fqn[i]
		}
	}
	return string(out)
}

// Bytes renders the accumulated builder state into a complete .class file.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	u2 := func(v uint16) { binary.Write(&buf, binary.BigEndian, v) }
	u4 := func(v uint32) { binary.Write(&buf, binary.BigEndian, v) }

	u4(0xCAFEBABE)
	u2(0)  // minor
	u2(61) // major (Java 17)

	// Intern constants referenced only during method/attribute encoding
	// below (e.g. the "Code" attribute name) before the constant pool is
	// counted and written out, so constant_pool_count reflects the final
	// pool contents.
	for _, m := range b.methods {
		if m.code != nil {
			b.findOrAddUTF8Const("Code")
		}
	}

	u2(uint16(len(b.pool))) // constant_pool_count (count, not max index)
	for _, entry := range b.pool[1:] {
		buf.Write(entry)
	}

	u2(b.accessFlags)
	u2(b.thisClass)
	u2(b.superClass)

	u2(uint16(len(b.interfaces)))
	for _, idx := range b.interfaces {
		u2(idx)
	}

	u2(0) // fields_count

	u2(uint16(len(b.methods)))
	for _, m := range b.methods {
		u2(m.accessFlags)
		u2(m.nameIndex)
		u2(m.descIndex)
		if m.code == nil {
			u2(0) // attributes_count
			continue
		}
		u2(1) // attributes_count
		// Code attribute
		nameIdx := b.findOrAddUTF8Const("Code")
		u2(nameIdx)

		var code bytes.Buffer
		cu2 := func(v uint16) { binary.Write(&code, binary.BigEndian, v) }
		cu4 := func(v uint32) { binary.Write(&code, binary.BigEndian, v) }
		cu2(m.maxStack)
		cu2(m.maxLocals)
		cu4(uint32(len(m.code)))
		code.Write(m.code)
		cu2(0) // exception_table_length
		cu2(0) // attributes_count

		u4(uint32(code.Len()))
		buf.Write(code.Bytes())
	}

	u2(0) // class attributes_count

	return buf.Bytes()
}

// findOrAddUTF8Const interns a UTF8 constant used for attribute names,
// reusing an existing entry if one already matches.
func (b *Builder) findOrAddUTF8Const(s string) uint16 {
	for i := 1; i < len(b.pool); i++ {
		e := b.pool[i]
		if len(e) > 0 && e[0] == 1 {
			strLen := int(binary.BigEndian.Uint16(e[1:3]))
			if string(e[3:3+strLen]) == s {
				return uint16(i)
			}
		}
	}
	return b.addUTF8(s)
}
