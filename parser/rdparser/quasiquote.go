package rdparser

import (
	"github.com/kaa-lang/kaa/lisp"
)

const (
	symUnquote       = "unquote"
	symUnquoteSplice = "unquote-splice"
)

// expandQuasiquote rewrites the quasiquoted expression v into list
// construction calls:
//
//	`a          => (quote a)
//	`~a         => a
//	`(a ~b ~@c) => (kaa.core/concat (kaa.core/list (quote a)) (kaa.core/list b) c)
func expandQuasiquote(v lisp.Value) lisp.Value {
	lis, ok := v.(*lisp.List)
	if !ok || lis.Len() == 0 {
		return quote(v)
	}
	if isCall(lis, symUnquote) {
		return lis.Items[1]
	}
	items := make([]lisp.Value, 0, lis.Len()+1)
	items = append(items, coreSymbol("concat"))
	for _, x := range lis.Items {
		items = append(items, expandQuasiquoteItem(x))
	}
	return lisp.NewList(items, lis.Meta)
}

func expandQuasiquoteItem(v lisp.Value) lisp.Value {
	if lis, ok := v.(*lisp.List); ok {
		if isCall(lis, symUnquote) {
			return lisp.ListOf(coreSymbol("list"), lis.Items[1])
		}
		if isCall(lis, symUnquoteSplice) {
			return lis.Items[1]
		}
	}
	return lisp.ListOf(coreSymbol("list"), expandQuasiquote(v))
}

func isCall(lis *lisp.List, name string) bool {
	head, ok := lis.HeadSymbol()
	return ok && head == name && lis.Len() == 2
}

func quote(v lisp.Value) lisp.Value {
	return lisp.ListOf(lisp.NewSymbol(lisp.SymQuote, ""), v)
}

func coreSymbol(name string) *lisp.Symbol {
	return lisp.NewSymbol(name, lisp.CoreNamespace)
}
