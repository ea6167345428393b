package classfile

import "fmt"

func readMethods(cr *classReader, pool ConstantPool) ([]Method, error) {
	count, err := cr.readU2()
	if err != nil {
		return nil, err
	}
	methods := make([]Method, 0, count)
	for i := uint16(0); i < count; i++ {
		accessFlags, err := cr.readU2()
		if err != nil {
			return nil, fmt.Errorf("method %d access_flags: %w", i, err)
		}
		nameIndex, err := cr.readU2()
		if err != nil {
			return nil, fmt.Errorf("method %d name_index: %w", i, err)
		}
		descIndex, err := cr.readU2()
		if err != nil {
			return nil, fmt.Errorf("method %d descriptor_index: %w", i, err)
		}

		name, err := pool.UTF8At(nameIndex)
		if err != nil {
			return nil, fmt.Errorf("method %d name: %w", i, err)
		}
		descriptor, err := pool.UTF8At(descIndex)
		if err != nil {
			return nil, fmt.Errorf("method %d descriptor: %w", i, err)
		}

		var callSites []CallSite
		attrCount, err := cr.readU2()
		if err != nil {
			return nil, fmt.Errorf("method %d attributes_count: %w", i, err)
		}
		for a := uint16(0); a < attrCount; a++ {
			attrNameIndex, err := cr.readU2()
			if err != nil {
				return nil, err
			}
			length, err := cr.readU4()
			if err != nil {
				return nil, err
			}
			body, err := cr.readNBytes(int(length))
			if err != nil {
				return nil, err
			}
			attrName, err := pool.UTF8At(attrNameIndex)
			if err != nil {
				return nil, err
			}
			if attrName == "Code" {
				sites, err := parseCodeAttribute(body, pool)
				if err != nil {
					return nil, fmt.Errorf("method %d Code attribute: %w", i, err)
				}
				callSites = sites
			}
		}

		methods = append(methods, Method{
			Name:        name,
			Descriptor:  descriptor,
			AccessFlags: AccessFlags(accessFlags),
			CallSites:   callSites,
		})
	}
	return methods, nil
}

// parseCodeAttribute decodes just enough of the Code attribute (JVMS §4.7.3)
// to walk the instruction stream and pull out invocation instructions. It
// does not validate the stack map table or exception table; both are read
// past byte-for-byte without interpretation.
func parseCodeAttribute(body []byte, pool ConstantPool) ([]CallSite, error) {
	cr := newClassReader(body)

	if _, err := cr.readU2(); err != nil { // max_stack
		return nil, err
	}
	if _, err := cr.readU2(); err != nil { // max_locals
		return nil, err
	}
	codeLength, err := cr.readU4()
	if err != nil {
		return nil, err
	}
	code, err := cr.readNBytes(int(codeLength))
	if err != nil {
		return nil, err
	}

	// exception_table
	excCount, err := cr.readU2()
	if err != nil {
		return nil, err
	}
	for i := uint16(0); i < excCount; i++ {
		if _, err := cr.readNBytes(8); err != nil { // start_pc,end_pc,handler_pc,catch_type
			return nil, err
		}
	}
	if err := skipAttributes(cr); err != nil { // nested attributes (LineNumberTable etc.)
		return nil, err
	}

	return scanInstructions(code, pool)
}

// scanInstructions walks a method's raw bytecode and extracts one CallSite
// per invoke* instruction, in instruction order. Every other opcode is
// skipped using its known operand length so that offsets realign correctly;
// an unknown opcode returns an error, which fails the parse of the whole
// class file.
func scanInstructions(code []byte, pool ConstantPool) ([]CallSite, error) {
	var sites []CallSite
	offset := 0
	for offset < len(code) {
		start := offset
		opcode := code[offset]
		offset++

		switch opcode {
		case opInvokeVirtual, opInvokeSpecial, opInvokeStatic:
			if offset+2 > len(code) {
				return nil, fmt.Errorf("truncated invoke at offset %d", start)
			}
			index := be16(code[offset : offset+2])
			offset += 2
			owner, name, descriptor, err := pool.RefAt(index)
			if err != nil {
				return nil, fmt.Errorf("resolving invoke operand at offset %d: %w", start, err)
			}
			kind := InvokeVirtual
			if opcode == opInvokeSpecial {
				kind = InvokeSpecial
			} else if opcode == opInvokeStatic {
				kind = InvokeStatic
			}
			sites = append(sites, CallSite{
				Kind:           kind,
				DeclaredTarget: MethodRef{OwnerFQN: owner, Name: name, Descriptor: descriptor},
				BytecodeOffset: start,
			})

		case opInvokeInterface:
			if offset+4 > len(code) {
				return nil, fmt.Errorf("truncated invokeinterface at offset %d", start)
			}
			index := be16(code[offset : offset+2])
			// count (1 byte) + reserved zero byte (1 byte) follow.
			offset += 4
			owner, name, descriptor, err := pool.RefAt(index)
			if err != nil {
				return nil, fmt.Errorf("resolving invokeinterface operand at offset %d: %w", start, err)
			}
			sites = append(sites, CallSite{
				Kind:           InvokeInterface,
				DeclaredTarget: MethodRef{OwnerFQN: owner, Name: name, Descriptor: descriptor},
				BytecodeOffset: start,
			})

		case opInvokeDynamic:
			if offset+4 > len(code) {
				return nil, fmt.Errorf("truncated invokedynamic at offset %d", start)
			}
			// index (2 bytes) + two reserved zero bytes. No statically
			// resolvable owner; recorded with an empty MethodRef so the
			// call site still counts as present but never resolves.
			offset += 4
			sites = append(sites, CallSite{
				Kind:           InvokeDynamic,
				DeclaredTarget: MethodRef{},
				BytecodeOffset: start,
			})

		case opTableSwitch:
			// Skip padding to 4-byte alignment relative to start of code, then
			// default(4) + low(4) + high(4) + (high-low+1) offsets(4 each).
			pad := (4 - (offset % 4)) % 4
			offset += pad
			if offset+12 > len(code) {
				return nil, fmt.Errorf("truncated tableswitch at offset %d", start)
			}
			low := int32(be32(code[offset+4 : offset+8]))
			high := int32(be32(code[offset+8 : offset+12]))
			offset += 12
			n := int(high-low) + 1
			if n < 0 {
				return nil, fmt.Errorf("invalid tableswitch range at offset %d", start)
			}
			offset += n * 4

		case opLookupSwitch:
			pad := (4 - (offset % 4)) % 4
			offset += pad
			if offset+8 > len(code) {
				return nil, fmt.Errorf("truncated lookupswitch at offset %d", start)
			}
			npairs := int(be32(code[offset+4 : offset+8]))
			offset += 8
			offset += npairs * 8

		case opWide:
			if offset >= len(code) {
				return nil, fmt.Errorf("truncated wide at offset %d", start)
			}
			sub := code[offset]
			offset++
			if sub == opIinc {
				offset += 4 // indexbyte1,2 + constbyte1,2
			} else {
				offset += 2 // indexbyte1,2
			}

		default:
			n, ok := opcodeOperandLength[opcode]
			if !ok {
				return nil, fmt.Errorf("unsupported opcode 0x%02X at offset %d", opcode, start)
			}
			offset += n
		}
	}
	return sites, nil
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
