package ast

// Приоритеты бинарных операторов, от слабых к сильным.
const (
	PrecNone       = 0
	PrecDefault    = 1  // \\ <-
	PrecWhen       = 2  // when
	PrecType       = 3  // ::
	PrecBar        = 4  // |
	PrecMatch      = 5  // =
	PrecOr         = 6  // || ||| or
	PrecAnd        = 7  // && &&& and
	PrecEquality   = 8  // == != =~ === !==
	PrecComparison = 9  // < > <= >=
	PrecPipe       = 10 // |> <<< >>> <~> and friends
	PrecIn         = 11 // in, not in
	PrecXor        = 12 // ^^^
	PrecList       = 13 // ++ -- +++ --- .. ..// <>
	PrecAdditive   = 14 // + -
	PrecMult       = 15 // * /
	PrecUnary      = 16 // ! ^ not @ unary + -
)

type opInfo struct {
	prec  int
	right bool
}

var binaryOps = map[string]opInfo{
	`\\`:     {PrecDefault, false},
	"<-":     {PrecDefault, false},
	"when":   {PrecWhen, true},
	"::":     {PrecType, true},
	"|":      {PrecBar, true},
	"=":      {PrecMatch, true},
	"||":     {PrecOr, false},
	"|||":    {PrecOr, false},
	"or":     {PrecOr, false},
	"&&":     {PrecAnd, false},
	"&&&":    {PrecAnd, false},
	"and":    {PrecAnd, false},
	"==":     {PrecEquality, false},
	"!=":     {PrecEquality, false},
	"=~":     {PrecEquality, false},
	"===":    {PrecEquality, false},
	"!==":    {PrecEquality, false},
	"<":      {PrecComparison, false},
	">":      {PrecComparison, false},
	"<=":     {PrecComparison, false},
	">=":     {PrecComparison, false},
	"|>":     {PrecPipe, false},
	"<<<":    {PrecPipe, false},
	">>>":    {PrecPipe, false},
	"<<~":    {PrecPipe, false},
	"~>>":    {PrecPipe, false},
	"<~":     {PrecPipe, false},
	"~>":     {PrecPipe, false},
	"<~>":    {PrecPipe, false},
	"<|>":    {PrecPipe, false},
	"in":     {PrecIn, false},
	"not in": {PrecIn, false},
	"^^^":    {PrecXor, false},
	"++":     {PrecList, true},
	"--":     {PrecList, true},
	"+++":    {PrecList, true},
	"---":    {PrecList, true},
	"..":     {PrecList, true},
	"...":    {PrecList, true},
	"//":     {PrecList, true},
	"..//":   {PrecList, true},
	"<>":     {PrecList, true},
	"+":      {PrecAdditive, false},
	"-":      {PrecAdditive, false},
	"*":      {PrecMult, false},
	"/":      {PrecMult, false},
}

// compactOps печатаются без пробелов: 1..10, 1..10//2.
var compactOps = map[string]bool{"..": true, "...": true, "//": true}

// BinaryPrec returns the binding power and associativity of a binary operator.
// ok is false for anything that is not a binary operator.
func BinaryPrec(op string) (prec int, rightAssoc, ok bool) {
	info, ok := binaryOps[op]
	return info.prec, info.right, ok
}

// opPrec returns the binding power of an operator application for rendering.
func opPrec(n *OpApp) int {
	if n.IsUnary() {
		if n.Op == "&" {
			return PrecOr
		}
		return PrecUnary
	}
	if n.Op == "[]" {
		return PrecUnary + 1
	}
	if p, _, ok := BinaryPrec(n.Op); ok {
		return p
	}
	return PrecNone
}

// IsWordOp reports operators spelled as words; they render with a space.
func IsWordOp(op string) bool {
	switch op {
	case "and", "or", "not", "in", "not in", "when":
		return true
	}
	return false
}
