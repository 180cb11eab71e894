package diag

import (
	"fmt"
	"strings"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadAtom            Code = 1004
	LexBadAttribute       Code = 1005

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynUnclosedParen     Code = 2003
	SynUnclosedBracket   Code = 2004
	SynUnclosedBrace     Code = 2005
	SynUnclosedBlock     Code = 2006
	SynExpectIdentifier  Code = 2007
	SynBadMapEntry       Code = 2008
	SynTrailingInput     Code = 2009
	SynExpectEndOfSource Code = 2010

	// Binding targets: one code per classification of a rejected target
	BndInfo            Code = 3000
	BndModuleAttribute Code = 3001
	BndRemoteCall      Code = 3002
	BndOperator        Code = 3003
	BndLocalCall       Code = 3004
	BndTuplePattern    Code = 3005
	BndListLiteral     Code = 3006
	BndStringLiteral   Code = 3007
	BndNumberLiteral   Code = 3008
	BndAtomLiteral     Code = 3009
	BndUnknown         Code = 3010
	BndArity           Code = 3099

	// Scope
	ScpInfo         Code = 4000
	ScpUnusedTarget Code = 4001
	ScpRebind       Code = 4002

	// I/O
	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
	IOCacheError    Code = 5002

	// Project configuration
	ProjInfo          Code = 6000
	ProjInvalidConfig Code = 6001

	// Observability
	ObsInfo    Code = 7000
	ObsTimings Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexBadNumber:          "Malformed number literal",
		LexBadAtom:            "Malformed atom literal",
		LexBadAttribute:       "Malformed module attribute",
		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectExpression:   "Expected expression",
		SynUnclosedParen:      "Unclosed parenthesis",
		SynUnclosedBracket:    "Unclosed bracket",
		SynUnclosedBrace:      "Unclosed brace",
		SynUnclosedBlock:      "Unclosed do/end block",
		SynExpectIdentifier:   "Expected identifier",
		SynBadMapEntry:        "Malformed map entry",
		SynTrailingInput:      "Unexpected input after expression",
		SynExpectEndOfSource:  "Expected end of source",
		BndInfo:               "Binding target information",
		BndModuleAttribute:    "Cannot bind to a module attribute",
		BndRemoteCall:         "Cannot bind to a remote function call",
		BndOperator:           "Cannot bind to an operator expression",
		BndLocalCall:          "Cannot bind to a local function call",
		BndTuplePattern:       "Cannot bind to a tuple pattern",
		BndListLiteral:        "Cannot bind to a list literal",
		BndStringLiteral:      "Cannot bind to a string literal",
		BndNumberLiteral:      "Cannot bind to a number literal",
		BndAtomLiteral:        "Cannot bind to an atom literal",
		BndUnknown:            "Invalid binding target",
		BndArity:              "Wrong number of arguments to the binding macro",
		ScpInfo:               "Scope information",
		ScpUnusedTarget:       "Bound variable is never used",
		ScpRebind:             "Binding reuses an existing variable",
		IOInfo:                "I/O information",
		IOLoadFileError:       "I/O load file error",
		IOCacheError:          "Result cache error",
		ProjInfo:              "Project information",
		ProjInvalidConfig:     "Invalid project configuration",
		ObsInfo:               "Observability information",
		ObsTimings:            "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("BND%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SCP%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode resolves an ID such as "BND3007" (case-insensitive) back to its Code.
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c != UnknownCode && strings.EqualFold(c.ID(), id) {
			return c, true
		}
	}
	return UnknownCode, false
}
