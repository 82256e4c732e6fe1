package darwin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadProgram reports species source that does not parse.
var ErrBadProgram = errors.New("darwin: bad program")

// Opcode is one instruction of a species program.
type Opcode int

const (
	OpMove Opcode = iota
	OpLeft
	OpRight
	OpInfect
	OpIfEmpty
	OpIfWall
	OpIfSame
	OpIfEnemy
	OpIfRandom
	OpGo
)

var opNames = []string{"MOVE", "LEFT", "RIGHT", "INFECT", "IFEMPTY", "IFWALL", "IFSAME", "IFENEMY", "IFRANDOM", "GO"}

func (o Opcode) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Opcode(%d)", int(o))
	}
	return opNames[o]
}

// Action reports whether the opcode ends a creature's turn.
func (o Opcode) Action() bool {
	return o == OpMove || o == OpLeft || o == OpRight || o == OpInfect
}

func (o Opcode) jumps() bool { return !o.Action() }

// defaultTurn is the rotation in degrees of a bare LEFT or RIGHT.
const defaultTurn = 90

// Instruction is one program line. Arg is the distance for MOVE, the turn in
// degrees for LEFT and RIGHT and the 1-based jump target for the conditionals
// and GO.
type Instruction struct {
	Op  Opcode
	Arg int
}

// Program is the instruction list of one species.
type Program []Instruction

// ParseProgram reads one instruction per line. Blank lines and text after
// '#' are ignored; opcodes are case-insensitive.
func ParseProgram(src string) (Program, error) {
	var prog Program
	for n, line := range strings.Split(src, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		in, err := parseInstruction(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadProgram, n+1, err)
		}
		prog = append(prog, in)
	}
	if len(prog) == 0 {
		return nil, fmt.Errorf("%w: empty program", ErrBadProgram)
	}
	for i, in := range prog {
		if in.Op.jumps() && (in.Arg < 1 || in.Arg > len(prog)) {
			return nil, fmt.Errorf("%w: instruction %d: %s target %d outside 1..%d",
				ErrBadProgram, i+1, in.Op, in.Arg, len(prog))
		}
	}
	return prog, nil
}

func parseInstruction(fields []string) (Instruction, error) {
	name := strings.ToUpper(fields[0])
	op := Opcode(-1)
	for i, n := range opNames {
		if n == name {
			op = Opcode(i)
			break
		}
	}
	if op < 0 {
		return Instruction{}, fmt.Errorf("unknown instruction %q", fields[0])
	}
	args := fields[1:]
	switch {
	case op == OpInfect:
		if len(args) != 0 {
			return Instruction{}, fmt.Errorf("%s takes no argument", op)
		}
		return Instruction{Op: op}, nil
	case op == OpMove && len(args) == 0:
		return Instruction{Op: op, Arg: 1}, nil
	case op == OpLeft || op == OpRight:
		if len(args) == 0 {
			return Instruction{Op: op, Arg: defaultTurn}, nil
		}
	case len(args) == 0:
		return Instruction{}, fmt.Errorf("%s needs a target", op)
	}
	if len(args) != 1 {
		return Instruction{}, fmt.Errorf("%s takes one argument", op)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return Instruction{}, fmt.Errorf("%s argument %q: %v", op, args[0], err)
	}
	if op == OpMove && v < 1 {
		return Instruction{}, fmt.Errorf("%s distance %d must be at least 1", op, v)
	}
	return Instruction{Op: op, Arg: v}, nil
}

// String renders the program back into source form.
func (p Program) String() string {
	var b strings.Builder
	for _, in := range p {
		b.WriteString(in.Op.String())
		if in.Op != OpInfect {
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(in.Arg))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
