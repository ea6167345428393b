package classfile

// Opcode values for the instructions this analyzer treats specially — the
// five invoke* instructions plus the variable-length instructions that would
// otherwise desynchronize the offset walk (JVMS §6.5).
const (
	opInvokeVirtual   = 0xB6
	opInvokeSpecial   = 0xB7
	opInvokeStatic    = 0xB8
	opInvokeInterface = 0xB9
	opInvokeDynamic   = 0xBA
	opTableSwitch     = 0xAA
	opLookupSwitch    = 0xAB
	opWide            = 0xC4
	opIinc            = 0x84
)

// opcodeOperandLength gives the fixed operand byte count (not including the
// opcode byte itself) for every JVM instruction not handled as a special
// case in scanInstructions. Generated from the JVMS §6.5 instruction listing.
var opcodeOperandLength = map[byte]int{
	0x00: 0, // nop
	0x01: 0, // aconst_null
	0x02: 0, // iconst_m1
	0x03: 0, // iconst_0
	0x04: 0, // iconst_1
	0x05: 0, // iconst_2
	0x06: 0, // iconst_3
	0x07: 0, // iconst_4
	0x08: 0, // iconst_5
	0x09: 0, // lconst_0
	0x0A: 0, // lconst_1
	0x0B: 0, // fconst_0
	0x0C: 0, // fconst_1
	0x0D: 0, // fconst_2
	0x0E: 0, // dconst_0
	0x0F: 0, // dconst_1
	0x10: 1, // bipush
	0x11: 2, // sipush
	0x12: 1, // ldc
	0x13: 2, // ldc_w
	0x14: 2, // ldc2_w
	0x15: 1, // iload
	0x16: 1, // lload
	0x17: 1, // fload
	0x18: 1, // dload
	0x19: 1, // aload
	0x1A: 0, // iload_0
	0x1B: 0, // iload_1
	0x1C: 0, // iload_2
	0x1D: 0, // iload_3
	0x1E: 0, // lload_0
	0x1F: 0, // lload_1
	0x20: 0, // lload_2
	0x21: 0, // lload_3
	0x22: 0, // fload_0
	0x23: 0, // fload_1
	0x24: 0, // fload_2
	0x25: 0, // fload_3
	0x26: 0, // dload_0
	0x27: 0, // dload_1
	0x28: 0, // dload_2
	0x29: 0, // dload_3
	0x2A: 0, // aload_0
	0x2B: 0, // aload_1
	0x2C: 0, // aload_2
	0x2D: 0, // aload_3
	0x2E: 0, // iaload
	0x2F: 0, // laload
	0x30: 0, // faload
	0x31: 0, // daload
	0x32: 0, // aaload
	0x33: 0, // baload
	0x34: 0, // caload
	0x35: 0, // saload
	0x36: 1, // istore
	0x37: 1, // lstore
	0x38: 1, // fstore
	0x39: 1, // dstore
	0x3A: 1, // astore
	0x3B: 0, // istore_0
	0x3C: 0, // istore_1
	0x3D: 0, // istore_2
	0x3E: 0, // istore_3
	0x3F: 0, // lstore_0
	0x40: 0, // lstore_1
	0x41: 0, // lstore_2
	0x42: 0, // lstore_3
	0x43: 0, // fstore_0
	0x44: 0, // fstore_1
	0x45: 0, // fstore_2
	0x46: 0, // fstore_3
	0x47: 0, // dstore_0
	0x48: 0, // dstore_1
	0x49: 0, // dstore_2
	0x4A: 0, // dstore_3
	0x4B: 0, // astore_0
	0x4C: 0, // astore_1
	0x4D: 0, // astore_2
	0x4E: 0, // astore_3
	0x4F: 0, // iastore
	0x50: 0, // lastore
	0x51: 0, // fastore
	0x52: 0, // dastore
	0x53: 0, // aastore
	0x54: 0, // bastore
	0x55: 0, // castore
	0x56: 0, // sastore
	0x57: 0, // pop
	0x58: 0, // pop2
	0x59: 0, // dup
	0x5A: 0, // dup_x1
	0x5B: 0, // dup_x2
	0x5C: 0, // dup2
	0x5D: 0, // dup2_x1
	0x5E: 0, // dup2_x2
	0x5F: 0, // swap
	0x60: 0, // iadd
	0x61: 0, // ladd
	0x62: 0, // fadd
	0x63: 0, // dadd
	0x64: 0, // isub
	0x65: 0, // lsub
	0x66: 0, // fsub
	0x67: 0, // dsub
	0x68: 0, // imul
	0x69: 0, // lmul
	0x6A: 0, // fmul
	0x6B: 0, // dmul
	0x6C: 0, // idiv
	0x6D: 0, // ldiv
	0x6E: 0, // fdiv
	0x6F: 0, // ddiv
	0x70: 0, // irem
	0x71: 0, // lrem
	0x72: 0, // frem
	0x73: 0, // drem
	0x74: 0, // ineg
	0x75: 0, // lneg
	0x76: 0, // fneg
	0x77: 0, // dneg
	0x78: 0, // ishl
	0x79: 0, // lshl
	0x7A: 0, // ishr
	0x7B: 0, // lshr
	0x7C: 0, // iushr
	0x7D: 0, // lushr
	0x7E: 0, // iand
	0x7F: 0, // land
	0x80: 0, // ior
	0x81: 0, // lor
	0x82: 0, // ixor
	0x83: 0, // lxor
	0x84: 2, // iinc (special-cased for `wide` but has fixed length standalone)
	0x85: 0, // i2l
	0x86: 0, // i2f
	0x87: 0, // i2d
	0x88: 0, // l2i
	0x89: 0, // l2f
	0x8A: 0, // l2d
	0x8B: 0, // f2i
	0x8C: 0, // f2l
	0x8D: 0, // f2d
	0x8E: 0, // d2i
	0x8F: 0, // d2l
	0x90: 0, // d2f
	0x91: 0, // i2b
	0x92: 0, // i2c
	0x93: 0, // i2s
	0x94: 0, // lcmp
	0x95: 0, // fcmpl
	0x96: 0, // fcmpg
	0x97: 0, // dcmpl
	0x98: 0, // dcmpg
	0x99: 2, // ifeq
	0x9A: 2, // ifne
	0x9B: 2, // iflt
	0x9C: 2, // ifge
	0x9D: 2, // ifgt
	0x9E: 2, // ifle
	0x9F: 2, // if_icmpeq
	0xA0: 2, // if_icmpne
	0xA1: 2, // if_icmplt
	0xA2: 2, // if_icmpge
	0xA3: 2, // if_icmpgt
	0xA4: 2, // if_icmple
	0xA5: 2, // if_acmpeq
	0xA6: 2, // if_acmpne
	0xA7: 2, // goto
	0xA8: 2, // jsr
	0xA9: 1, // ret
	0xAC: 0, // ireturn
	0xAD: 0, // lreturn
	0xAE: 0, // freturn
	0xAF: 0, // dreturn
	0xB0: 0, // areturn
	0xB1: 0, // return
	0xB2: 2, // getstatic
	0xB3: 2, // putstatic
	0xB4: 2, // getfield
	0xB5: 2, // putfield
	0xBB: 2, // new
	0xBC: 1, // newarray
	0xBD: 2, // anewarray
	0xBE: 0, // arraylength
	0xBF: 0, // athrow
	0xC0: 2, // checkcast
	0xC1: 2, // instanceof
	0xC2: 0, // monitorenter
	0xC3: 0, // monitorexit
	0xC5: 3, // multianewarray
	0xC6: 2, // ifnull
	0xC7: 2, // ifnonnull
	0xC8: 4, // goto_w
	0xC9: 4, // jsr_w
	0xCA: 0, // breakpoint
}
