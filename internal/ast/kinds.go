package ast

type LitKind uint8

const (
	LitString LitKind = iota
	LitCharlist
	LitInt
	LitFloat
	LitBool
	LitAtom
	LitNil
	LitSigil
)

var litKindNames = [...]string{
	LitString:   "string",
	LitCharlist: "charlist",
	LitInt:      "int",
	LitFloat:    "float",
	LitBool:     "bool",
	LitAtom:     "atom",
	LitNil:      "nil",
	LitSigil:    "sigil",
}

func (k LitKind) String() string {
	if int(k) < len(litKindNames) {
		return litKindNames[k]
	}
	return "LitKind(?)"
}

type BlockKind uint8

const (
	BlockDo     BlockKind = iota // do ... end
	BlockFn                      // fn ... end
	BlockClause                  // body of a `head -> body` clause
)

func (k BlockKind) String() string {
	switch k {
	case BlockDo:
		return "do"
	case BlockFn:
		return "fn"
	case BlockClause:
		return "clause"
	default:
		return "BlockKind(?)"
	}
}
