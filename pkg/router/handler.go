package router

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/strada-dev/strada/pkg/server"
)

// HandlerFunc is the uniform handler shape the tree stores: the request
// context plus the typed values captured by the pattern, in declaration
// order. The boolean result distinguishes handled from declined; a declined
// request falls through to the router's not-found handler without any
// further tree search.
type HandlerFunc func(ctx server.Ctx, args []Value) (bool, error)

// goType returns the Go type a placeholder kind delivers to typed handlers.
func (k Kind) goType() reflect.Type {
	switch k {
	case KindString:
		return reflect.TypeOf("")
	case KindInt:
		return reflect.TypeOf(int64(0))
	case KindUint:
		return reflect.TypeOf(uint64(0))
	case KindFloat:
		return reflect.TypeOf(float64(0))
	case KindBool:
		return reflect.TypeOf(false)
	case KindChar:
		return reflect.TypeOf(rune(0))
	case KindGUID:
		return reflect.TypeOf(uuid.UUID{})
	}
	return nil
}

var (
	ctxType  = reflect.TypeOf((*server.Ctx)(nil)).Elem()
	boolType = reflect.TypeOf(false)
	errType  = reflect.TypeOf((*error)(nil)).Elem()
)

// adaptHandler checks fn against the pattern's placeholder list and wraps it
// as a HandlerFunc.
//
// Two shapes are accepted. The uniform shape func(server.Ctx, []Value)
// (bool, error) is taken as-is. Otherwise fn must be a typed handler:
//
//	func(ctx server.Ctx, <one arg per placeholder>) (bool, error)
//
// where each argument's type corresponds to its placeholder kind (string,
// int64, uint64, float64, bool, rune, uuid.UUID). Arity or type disagreement
// is a build-time ErrArityMismatch; nothing is rechecked per request.
func adaptHandler(fn any, p Pattern) (HandlerFunc, error) {
	switch h := fn.(type) {
	case HandlerFunc:
		return h, nil
	case func(server.Ctx, []Value) (bool, error):
		return h, nil
	}

	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, patternErr(p.raw, -1, ErrArityMismatch, "handler is %T, not a function", fn)
	}
	kinds := p.Kinds()
	if t.NumIn() != len(kinds)+1 {
		return nil, patternErr(p.raw, -1, ErrArityMismatch,
			"pattern captures %d values but handler takes %d arguments after the context",
			len(kinds), t.NumIn()-1)
	}
	if t.In(0) != ctxType {
		return nil, patternErr(p.raw, -1, ErrArityMismatch,
			"handler's first argument must be server.Ctx, got %v", t.In(0))
	}
	for i, kind := range kinds {
		if want := kind.goType(); t.In(i+1) != want {
			return nil, patternErr(p.raw, -1, ErrArityMismatch,
				"argument %d must be %v for placeholder %v, got %v", i+1, want, kind, t.In(i+1))
		}
	}
	if t.NumOut() != 2 || t.Out(0) != boolType || t.Out(1) != errType {
		return nil, patternErr(p.raw, -1, ErrArityMismatch,
			"handler must return (bool, error)")
	}

	fv := reflect.ValueOf(fn)
	return func(ctx server.Ctx, args []Value) (bool, error) {
		in := make([]reflect.Value, 0, len(args)+1)
		in = append(in, reflect.ValueOf(ctx))
		for _, a := range args {
			in = append(in, reflect.ValueOf(a.Any()))
		}
		out := fv.Call(in)
		handled := out[0].Bool()
		err, _ := out[1].Interface().(error)
		return handled, err
	}, nil
}
