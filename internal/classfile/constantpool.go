package classfile

import "fmt"

// ConstantTag identifies the kind of one constant pool entry (JVMS §4.4).
type ConstantTag uint8

const (
	TagUTF8               ConstantTag = 1
	TagInteger            ConstantTag = 3
	TagFloat              ConstantTag = 4
	TagLong               ConstantTag = 5
	TagDouble             ConstantTag = 6
	TagClass              ConstantTag = 7
	TagString             ConstantTag = 8
	TagFieldref           ConstantTag = 9
	TagMethodref          ConstantTag = 10
	TagInterfaceMethodref ConstantTag = 11
	TagNameAndType        ConstantTag = 12
	TagMethodHandle       ConstantTag = 15
	TagMethodType         ConstantTag = 16
	TagDynamic            ConstantTag = 17
	TagInvokeDynamic      ConstantTag = 18
	TagModule             ConstantTag = 19
	TagPackage            ConstantTag = 20
)

// ConstantPoolEntry is a tagged union over the constant kinds this analyzer
// needs to resolve method references. Fields not used by a given tag are
// zero. Long and Double entries occupy two consecutive pool slots per the
// spec; the second slot has no bytes in the file and is left here as an
// invalid zero-tag entry.
type ConstantPoolEntry struct {
	Tag ConstantTag

	// TagUTF8
	UTF8 string

	// TagClass: NameIndex -> UTF8 (internal form, slash-separated)
	// TagString: NameIndex -> UTF8
	// TagMethodType: NameIndex -> UTF8 descriptor
	NameIndex uint16

	// TagFieldref / TagMethodref / TagInterfaceMethodref
	ClassIndex       uint16
	NameAndTypeIndex uint16

	// TagNameAndType
	// NameIndex above doubles as the name; DescriptorIndex holds descriptor.
	DescriptorIndex uint16

	// TagMethodHandle
	ReferenceKind  uint8
	ReferenceIndex uint16

	// TagDynamic / TagInvokeDynamic
	BootstrapMethodAttrIndex uint16
}

// ConstantPool is 1-indexed per the class file format; index 0 is unused.
type ConstantPool []ConstantPoolEntry

func (p ConstantPool) at(index uint16) (ConstantPoolEntry, error) {
	if int(index) >= len(p) {
		return ConstantPoolEntry{}, fmt.Errorf("constant pool index %d out of range (size %d)", index, len(p))
	}
	return p[index], nil
}

// UTF8At resolves a UTF8 constant, the base case nearly every other
// resolution bottoms out at.
func (p ConstantPool) UTF8At(index uint16) (string, error) {
	e, err := p.at(index)
	if err != nil {
		return "", err
	}
	if e.Tag != TagUTF8 {
		return "", fmt.Errorf("constant pool index %d is not UTF8 (tag %d)", index, e.Tag)
	}
	return e.UTF8, nil
}

// ClassNameAt resolves a TagClass entry to its dotted (not internal
// slash-separated) fully qualified name.
func (p ConstantPool) ClassNameAt(index uint16) (string, error) {
	e, err := p.at(index)
	if err != nil {
		return "", err
	}
	if e.Tag != TagClass {
		return "", fmt.Errorf("constant pool index %d is not Class (tag %d)", index, e.Tag)
	}
	internal, err := p.UTF8At(e.NameIndex)
	if err != nil {
		return "", err
	}
	return InternalToFQN(internal), nil
}

// NameAndTypeAt resolves a TagNameAndType entry to (name, descriptor).
func (p ConstantPool) NameAndTypeAt(index uint16) (name, descriptor string, err error) {
	e, err := p.at(index)
	if err != nil {
		return "", "", err
	}
	if e.Tag != TagNameAndType {
		return "", "", fmt.Errorf("constant pool index %d is not NameAndType (tag %d)", index, e.Tag)
	}
	name, err = p.UTF8At(e.NameIndex)
	if err != nil {
		return "", "", err
	}
	descriptor, err = p.UTF8At(e.DescriptorIndex)
	if err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// RefAt resolves a Fieldref/Methodref/InterfaceMethodref-shaped entry into
// its owner class FQN, member name, and descriptor.
func (p ConstantPool) RefAt(index uint16) (ownerFQN, name, descriptor string, err error) {
	e, err := p.at(index)
	if err != nil {
		return "", "", "", err
	}
	switch e.Tag {
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
	default:
		return "", "", "", fmt.Errorf("constant pool index %d is not a ref (tag %d)", index, e.Tag)
	}
	ownerFQN, err = p.ClassNameAt(e.ClassIndex)
	if err != nil {
		return "", "", "", err
	}
	name, descriptor, err = p.NameAndTypeAt(e.NameAndTypeIndex)
	if err != nil {
		return "", "", "", err
	}
	return ownerFQN, name, descriptor, nil
}

func readConstantPool(cr *classReader) (ConstantPool, error) {
	count, err := cr.readU2()
	if err != nil {
		return nil, err
	}
	pool := make(ConstantPool, count)
	// Slot 0 is unused, and Long/Double entries reserve the following slot;
	// that slot has no bytes in the file, so it is skipped without reading.
	for i := uint16(1); i < count; i++ {
		tag, err := cr.readU1()
		if err != nil {
			return nil, fmt.Errorf("reading tag for entry %d: %w", i, err)
		}
		entry := ConstantPoolEntry{Tag: ConstantTag(tag)}
		switch entry.Tag {
		case TagUTF8:
			length, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			buf, err := cr.readNBytes(int(length))
			if err != nil {
				return nil, err
			}
			entry.UTF8 = string(buf)
		case TagInteger, TagFloat:
			if _, err := cr.readU4(); err != nil {
				return nil, err
			}
		case TagLong, TagDouble:
			if _, err := cr.readU8(); err != nil {
				return nil, err
			}
			pool[i] = entry
			i++ // occupies two slots
			continue
		case TagClass, TagMethodType, TagModule, TagPackage:
			nameIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			entry.NameIndex = nameIndex
		case TagString:
			nameIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			entry.NameIndex = nameIndex
		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			classIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			natIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			entry.ClassIndex = classIndex
			entry.NameAndTypeIndex = natIndex
		case TagNameAndType:
			nameIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			descIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			entry.NameIndex = nameIndex
			entry.DescriptorIndex = descIndex
		case TagMethodHandle:
			refKind, err := cr.readU1()
			if err != nil {
				return nil, err
			}
			refIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			entry.ReferenceKind = refKind
			entry.ReferenceIndex = refIndex
		case TagDynamic, TagInvokeDynamic:
			bmIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			natIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			entry.BootstrapMethodAttrIndex = bmIndex
			entry.NameAndTypeIndex = natIndex
		default:
			return nil, fmt.Errorf("unknown constant pool tag %d at entry %d", tag, i)
		}
		pool[i] = entry
	}
	return pool, nil
}
