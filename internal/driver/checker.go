package driver

import (
	"fmt"
	"sort"
	"strings"

	"pipebind/internal/ast"
	"pipebind/internal/diag"
	"pipebind/internal/source"
	"pipebind/internal/target"
)

// binding is one name introduced in a frame.
type binding struct {
	span   source.Span
	used   bool
	macro  bool // introduced by the binding macro, subject to the unused check
	quoted bool
}

// frame is a lexical scope. Frames that do not inherit (def bodies, module
// bodies) hide everything bound outside them.
type frame struct {
	scope   target.Scope
	own     map[string]*binding
	inherit bool
}

// checker walks one file and reports binding diagnostics.
type checker struct {
	opts     *Options
	reporter diag.Reporter
	frames   []*frame
	quoted   int
}

func newChecker(opts *Options, r diag.Reporter) *checker {
	return &checker{opts: opts, reporter: r}
}

func (c *checker) checkFile(f *ast.File) {
	if f == nil {
		return
	}
	c.push(false)
	c.stmts(f.Body)
	c.pop()
}

func (c *checker) top() *frame { return c.frames[len(c.frames)-1] }

func (c *checker) push(inherit bool) {
	fr := &frame{own: make(map[string]*binding), inherit: inherit}
	if inherit && len(c.frames) > 0 {
		fr.scope = c.top().scope
	} else {
		fr.scope = target.NewScope()
	}
	c.frames = append(c.frames, fr)
}

func (c *checker) pop() {
	fr := c.top()
	c.frames = c.frames[:len(c.frames)-1]

	names := make([]string, 0, len(fr.own))
	for name := range fr.own {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return fr.own[names[i]].span.Start < fr.own[names[j]].span.Start
	})
	for _, name := range names {
		c.finalize(name, fr.own[name])
	}
}

// finalize reports a macro binding that was never read.
func (c *checker) finalize(name string, b *binding) {
	if !c.opts.WarnUnused || b.used || !b.macro || b.quoted {
		return
	}
	if strings.HasPrefix(name, "_") {
		return
	}
	diag.ReportWarning(c.reporter, diag.ScpUnusedTarget, b.span,
		fmt.Sprintf("variable `%s` is bound by %s but never used", name, c.opts.Macro)).
		WithFix("prefix the name with an underscore", diag.FixEdit{
			Span:    b.span,
			NewText: "_" + name,
			OldText: name,
		}).
		Emit()
}

// lookup finds the visible binding for name.
func (c *checker) lookup(name string) *binding {
	for i := len(c.frames) - 1; i >= 0; i-- {
		fr := c.frames[i]
		if b, ok := fr.own[name]; ok {
			return b
		}
		if !fr.inherit {
			break
		}
	}
	return nil
}

func (c *checker) read(name string) {
	if b := c.lookup(name); b != nil {
		b.used = true
	}
}

func (c *checker) declare(name string, sp source.Span, macro bool) {
	if name == "" || name == "_" {
		return
	}
	fr := c.top()
	if prev, ok := fr.own[name]; ok {
		// перекрытое значение больше не прочитать
		c.finalize(name, prev)
	}
	fr.own[name] = &binding{span: sp, macro: macro, quoted: c.quoted > 0}
	fr.scope = fr.scope.With(name)
}

func (c *checker) stmts(body []ast.Node) {
	for _, n := range body {
		c.visit(n)
	}
}

// visit handles n in expression (read) position.
func (c *checker) visit(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case *ast.Ident:
		c.read(n.Name)
	case *ast.Literal:
		c.stmts(n.Interp)
	case *ast.Alias, *ast.AttrRef, *ast.Bad:
	case *ast.ListLit:
		c.stmts(n.Elems)
		c.pairs(n.Keywords)
	case *ast.TupleLit:
		c.stmts(n.Elems)
	case *ast.MapLit:
		c.visit(n.Struct)
		c.visit(n.Update)
		c.pairs(n.Pairs)
	case *ast.Dot:
		c.visit(n.Left)
	case *ast.Block:
		c.block(n)
	case *ast.Call:
		c.call(n)
	case *ast.OpApp:
		c.opApp(n)
	}
}

func (c *checker) pairs(ps []ast.Pair) {
	for _, p := range ps {
		if !p.Keyword {
			c.visit(p.Key)
		}
		c.visit(p.Value)
	}
}

func (c *checker) opApp(n *ast.OpApp) {
	switch {
	case n.Op == "=" && len(n.Operands) == 2:
		c.visit(n.Operands[1])
		c.pattern(n.Operands[0])
		return
	case n.Op == "|>" && len(n.Operands) == 2:
		if call, ok := n.Operands[1].(*ast.Call); ok && c.isMacro(call) {
			c.macro(call, n.Operands[0])
			return
		}
	case n.Op == "->" && len(n.Operands) == 2:
		c.clause(n)
		return
	case n.Op == "@" && len(n.Operands) == 1:
		// @name value: имя атрибута не переменная
		if call, ok := n.Operands[0].(*ast.Call); ok {
			c.stmts(call.Args)
			return
		}
	}
	c.stmts(n.Operands)
}

func (c *checker) block(b *ast.Block) {
	if b == nil {
		return
	}
	c.push(true)
	c.stmts(b.Body)
	c.pop()
	for _, s := range b.Sections {
		c.push(true)
		c.stmts(s.Body)
		c.pop()
	}
}

// clause is `heads -> body` inside case, cond, receive, fn and friends.
func (c *checker) clause(n *ast.OpApp) {
	c.push(true)
	if heads, ok := n.Operands[0].(*ast.ListLit); ok {
		for _, h := range heads.Elems {
			c.pattern(h)
		}
	} else {
		c.pattern(n.Operands[0])
	}
	if body, ok := n.Operands[1].(*ast.Block); ok {
		c.stmts(body.Body)
	} else {
		c.visit(n.Operands[1])
	}
	c.pop()
}

func (c *checker) call(n *ast.Call) {
	if c.isMacro(n) {
		c.macro(n, nil)
		return
	}
	switch n.CalleeName() {
	case "def", "defp", "defmacro", "defmacrop":
		c.def(n)
		return
	case "defmodule", "defprotocol", "defimpl":
		c.push(false)
		c.stmts(n.Args)
		c.doBody(n)
		c.pop()
		return
	case "quote":
		c.quoted++
		c.stmts(n.Args)
		c.block(n.Do)
		c.quoted--
		return
	case "for", "with":
		c.generators(n)
		return
	}
	if _, ok := n.Callee.(*ast.Ident); !ok {
		c.visit(n.Callee)
	}
	c.stmts(n.Args)
	c.block(n.Do)
}

// doBody visits the Do block in the current frame, or a trailing `do:` keyword.
func (c *checker) doBody(n *ast.Call) {
	if n.Do != nil {
		c.stmts(n.Do.Body)
		for _, s := range n.Do.Sections {
			c.push(true)
			c.stmts(s.Body)
			c.pop()
		}
	}
}

func (c *checker) def(n *ast.Call) {
	c.push(false)
	for i, arg := range n.Args {
		if i == 0 {
			c.defHead(arg)
			continue
		}
		c.visit(arg) // `, do: body`
	}
	c.doBody(n)
	c.pop()
}

func (c *checker) defHead(h ast.Node) {
	switch h := h.(type) {
	case *ast.OpApp:
		if h.Op == "when" && len(h.Operands) == 2 {
			c.defHead(h.Operands[0])
			c.visit(h.Operands[1])
			return
		}
		c.pattern(h)
	case *ast.Call:
		for _, p := range h.Args {
			c.pattern(p)
		}
	case *ast.Ident:
		// def name do ... end: без параметров
	default:
		c.visit(h)
	}
}

// generators handles `for x <- xs, filter, into: acc do ... end` and `with`.
func (c *checker) generators(n *ast.Call) {
	c.push(true)
	for _, arg := range n.Args {
		if op, ok := arg.(*ast.OpApp); ok && op.Op == "<-" && len(op.Operands) == 2 {
			c.visit(op.Operands[1])
			c.pattern(op.Operands[0])
			continue
		}
		c.visit(arg)
	}
	c.doBody(n)
	c.pop()
}

// pattern binds the variables of a match pattern.
func (c *checker) pattern(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case *ast.Ident:
		if strings.HasPrefix(n.Name, "_") {
			return
		}
		c.declare(n.Name, n.Pos, false)
	case *ast.Literal:
		c.stmts(n.Interp)
	case *ast.Alias, *ast.AttrRef, *ast.Bad:
	case *ast.ListLit:
		for _, e := range n.Elems {
			c.pattern(e)
		}
		for _, p := range n.Keywords {
			c.pattern(p.Value)
		}
	case *ast.TupleLit:
		for _, e := range n.Elems {
			c.pattern(e)
		}
	case *ast.MapLit:
		c.visit(n.Struct)
		for _, p := range n.Pairs {
			if !p.Keyword {
				c.visit(p.Key)
			}
			c.pattern(p.Value)
		}
	case *ast.OpApp:
		c.opPattern(n)
	default:
		c.visit(n)
	}
}

func (c *checker) opPattern(n *ast.OpApp) {
	if n.IsUnary() {
		if n.Op == "^" {
			c.visit(n.Operands[0])
			return
		}
		c.pattern(n.Operands[0])
		return
	}
	if len(n.Operands) != 2 {
		c.stmts(n.Operands)
		return
	}
	left, right := n.Operands[0], n.Operands[1]
	switch n.Op {
	case "when":
		c.pattern(left)
		c.visit(right)
	case `\\`:
		c.visit(right)
		c.pattern(left)
	case "=", "|", "<>", "++", "::":
		c.pattern(left)
		c.pattern(right)
	default:
		c.stmts(n.Operands)
	}
}

// isMacro recognizes `assign_to(...)` and `Some.Module.assign_to(...)`.
func (c *checker) isMacro(n *ast.Call) bool {
	switch callee := n.Callee.(type) {
	case *ast.Ident:
		return callee.Name == c.opts.Macro
	case *ast.Dot:
		_, aliased := callee.Left.(*ast.Alias)
		return aliased && callee.Name == c.opts.Macro
	}
	return false
}

// macro checks one binding macro use. piped is the left side of `|>`, or nil
// for the direct form.
func (c *checker) macro(n *ast.Call, piped ast.Node) {
	args := n.Args
	if piped != nil {
		args = append([]ast.Node{piped}, n.Args...)
	}
	if len(args) != 2 {
		c.stmts(args)
		diag.ReportError(c.reporter, diag.BndArity, n.Span(),
			fmt.Sprintf("%s/2 expects a value and a target, got %d argument(s)", c.opts.Macro, len(args))).
			WithNote(n.Span(), "correct: "+target.CorrectedUsage).
			Emit()
		return
	}
	c.visit(args[0])
	c.bindTarget(args[1])
	c.block(n.Do)
}

func (c *checker) bindTarget(t ast.Node) {
	res := target.Validate(t)
	if !res.OK() {
		cls, d := target.ClassifyAndRender(res.Rejected)
		b := diag.ReportError(c.reporter, cls.Code(), t.Span(), d.Message)
		if name, ok := target.Suggest(t); ok {
			b = b.WithFix(fmt.Sprintf("bind to `%s` instead", name), diag.FixEdit{
				Span:    t.Span(),
				NewText: name,
				OldText: d.Source,
			})
		}
		b.Emit()
		c.visit(t)
		return
	}

	id := res.Ident
	strategy := target.StrategyFor(id, c.top().scope)
	if strategy == target.Rebind && c.opts.ReportRebind {
		b := diag.ReportInfo(c.reporter, diag.ScpRebind, t.Span(),
			fmt.Sprintf("`%s` is already bound; %s rebinds it", id.Name, c.opts.Macro))
		if prev := c.lookup(id.Name); prev != nil {
			b = b.WithNote(prev.span, "previous binding is here")
		}
		b.Emit()
	}
	// перепривязка не проверяется на неиспользование
	c.declare(id.Name, t.Span(), strategy == target.DeclareNew)
}
