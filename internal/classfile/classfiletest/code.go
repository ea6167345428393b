package classfiletest

// Code is a tiny bytecode-sequence builder for test method bodies — just
// enough instructions to exercise invocation parsing, not a general
// assembler.
type Code struct {
	buf []byte
}

func NewCode() *Code { return &Code{} }

func (c *Code) push2(opcode byte, index uint16) *Code {
	c.buf = append(c.buf, opcode, byte(index>>8), byte(index))
	return c
}

func (c *Code) InvokeStatic(methodRefIndex uint16) *Code    { return c.push2(0xB8, methodRefIndex) }
func (c *Code) InvokeVirtual(methodRefIndex uint16) *Code   { return c.push2(0xB6, methodRefIndex) }
func (c *Code) InvokeSpecial(methodRefIndex uint16) *Code   { return c.push2(0xB7, methodRefIndex) }

func (c *Code) InvokeInterface(ifaceMethodRefIndex uint16, argCount byte) *Code {
	c.buf = append(c.buf, 0xB9, byte(ifaceMethodRefIndex>>8), byte(ifaceMethodRefIndex), argCount, 0)
	return c
}

func (c *Code) InvokeDynamic(index uint16) *Code {
	c.buf = append(c.buf, 0xBA, byte(index>>8), byte(index), 0, 0)
	return c
}

func (c *Code) New(classIndex uint16) *Code { return c.push2(0xBB, classIndex) }
func (c *Code) Dup() *Code                  { c.buf = append(c.buf, 0x59); return c }
func (c *Code) AconstNull() *Code           { c.buf = append(c.buf, 0x01); return c }
func (c *Code) Pop() *Code                  { c.buf = append(c.buf, 0x57); return c }
func (c *Code) Return() *Code               { c.buf = append(c.buf, 0xB1); return c }
func (c *Code) AReturn() *Code              { c.buf = append(c.buf, 0xB0); return c }

func (c *Code) Bytes() []byte { return c.buf }
