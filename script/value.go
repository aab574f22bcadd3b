package script

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/internal/cache"
	"github.com/gogpu/kantera/text"
)

// Kind tags the dynamic type of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSymbol
	KindList
	KindVector
	KindColor
	KindVec2
	KindSignal
	KindRender
	KindAudio
	KindImage
	KindFont
	KindNative
	KindClosure
	KindMacro
	KindCache
)

var kindNames = [...]string{
	KindNil:     "nil",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindSymbol:  "symbol",
	KindList:    "list",
	KindVector:  "vector",
	KindColor:   "color",
	KindVec2:    "vec2",
	KindSignal:  "signal",
	KindRender:  "render",
	KindAudio:   "audio",
	KindImage:   "image",
	KindFont:    "font",
	KindNative:  "native",
	KindClosure: "fn",
	KindMacro:   "macro",
	KindCache:   "cache",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Span is a half-open byte range of the source a form was read from.
type Span struct {
	Start, End int
}

// Value is a script value. Forms read from source are values too; Span is
// set on them and zero on computed values.
type Value struct {
	Kind Kind
	data any
	Span Span
}

// Symbol is an interned name; two symbols are equal iff their pointers are.
type Symbol struct {
	Name string
}

var symbols = struct {
	sync.Mutex
	m map[string]*Symbol
}{m: make(map[string]*Symbol)}

// Intern returns the unique symbol for name.
func Intern(name string) *Symbol {
	symbols.Lock()
	defer symbols.Unlock()
	s, ok := symbols.m[name]
	if !ok {
		s = &Symbol{Name: name}
		symbols.m[name] = s
	}
	return s
}

// Cache is the memo table bound to __rt_cache.
type Cache = cache.Cache[string, Value]

// NewCache returns an empty script cache.
func NewCache() *Cache { return cache.New[string, Value](256) }

// Signal is a time-varying value. Its concrete type is one of
// kantera.Timed[float64], kantera.Timed[kantera.Vec2] or
// kantera.Timed[kantera.Rgba].
type Signal any

var Nil = Value{Kind: KindNil}

func Bool(b bool) Value                                 { return Value{Kind: KindBool, data: b} }
func Int(n int64) Value                                 { return Value{Kind: KindInt, data: n} }
func Float(f float64) Value                             { return Value{Kind: KindFloat, data: f} }
func String(s string) Value                             { return Value{Kind: KindString, data: s} }
func Sym(name string) Value                             { return Value{Kind: KindSymbol, data: Intern(name)} }
func SymbolValue(s *Symbol) Value                       { return Value{Kind: KindSymbol, data: s} }
func List(vs ...Value) Value                            { return Value{Kind: KindList, data: vs} }
func Vector(vs ...Value) Value                          { return Value{Kind: KindVector, data: vs} }
func Color(c kantera.Rgba) Value                        { return Value{Kind: KindColor, data: c} }
func Vec(v kantera.Vec2) Value                          { return Value{Kind: KindVec2, data: v} }
func SignalValue(s Signal) Value                        { return Value{Kind: KindSignal, data: s} }
func RenderValue(r kantera.Render[kantera.Rgba]) Value  { return Value{Kind: KindRender, data: r} }
func AudioValue(a kantera.AudioRender) Value            { return Value{Kind: KindAudio, data: a} }
func ImageValue(img *kantera.Image[kantera.Rgba]) Value { return Value{Kind: KindImage, data: img} }
func FontValue(f *text.Font) Value                      { return Value{Kind: KindFont, data: f} }
func CacheValue(c *Cache) Value                         { return Value{Kind: KindCache, data: c} }

// Native is a function implemented in Go.
type Native struct {
	Name string
	Fn   func(it *Interp, args []Value) (Value, error)
}

// NativeValue wraps fn as a callable value.
func NativeValue(name string, fn func(it *Interp, args []Value) (Value, error)) Value {
	return Value{Kind: KindNative, data: &Native{Name: name, Fn: fn}}
}

// Closure is a function or macro defined in script.
type Closure struct {
	Name   string
	Params []*Symbol
	Rest   *Symbol
	Body   []Value
	Env    *Env
}

func (v Value) withSpan(s Span) Value { v.Span = s; return v }

// Truthy reports whether v counts as true: everything but nil and false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.data.(bool)
	}
	return true
}

// Items returns the elements of a list or vector.
func (v Value) Items() ([]Value, bool) {
	if v.Kind == KindList || v.Kind == KindVector {
		xs, _ := v.data.([]Value)
		return xs, true
	}
	return nil, false
}

// AsSymbol returns the symbol of a symbol value.
func (v Value) AsSymbol() (*Symbol, bool) {
	s, ok := v.data.(*Symbol)
	return s, ok && v.Kind == KindSymbol
}

// AsBool returns the value of a bool.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.data.(bool)
	return b, ok
}

// AsInt returns an int, or a float with no fractional part.
func (v Value) AsInt() (int64, bool) {
	switch x := v.data.(type) {
	case int64:
		return x, true
	case float64:
		if x == float64(int64(x)) {
			return int64(x), true
		}
	}
	return 0, false
}

// AsFloat returns a number as float64.
func (v Value) AsFloat() (float64, bool) {
	switch x := v.data.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// AsString returns the contents of a string.
func (v Value) AsString() (string, bool) {
	s, ok := v.data.(string)
	return s, ok && v.Kind == KindString
}

// AsVec returns a vec2, or a two-number vector as one.
func (v Value) AsVec() (kantera.Vec2, bool) {
	if p, ok := v.data.(kantera.Vec2); ok {
		return p, true
	}
	if xs, ok := v.Items(); ok && len(xs) == 2 {
		x, okx := xs[0].AsFloat()
		y, oky := xs[1].AsFloat()
		return kantera.V2(x, y), okx && oky
	}
	return kantera.Vec2{}, false
}

// AsColor returns a colour.
func (v Value) AsColor() (kantera.Rgba, bool) {
	c, ok := v.data.(kantera.Rgba)
	return c, ok
}

// AsRender returns an image render node.
func (v Value) AsRender() (kantera.Render[kantera.Rgba], bool) {
	r, ok := v.data.(kantera.Render[kantera.Rgba])
	return r, ok && v.Kind == KindRender
}

// AsAudio returns an audio render node.
func (v Value) AsAudio() (kantera.AudioRender, bool) {
	a, ok := v.data.(kantera.AudioRender)
	return a, ok && v.Kind == KindAudio
}

// AsImage returns an image.
func (v Value) AsImage() (*kantera.Image[kantera.Rgba], bool) {
	img, ok := v.data.(*kantera.Image[kantera.Rgba])
	return img, ok
}

// AsFont returns a font.
func (v Value) AsFont() (*text.Font, bool) {
	f, ok := v.data.(*text.Font)
	return f, ok
}

// AsSignal returns the Timed behind a signal value.
func (v Value) AsSignal() (Signal, bool) {
	if v.Kind != KindSignal {
		return nil, false
	}
	return v.data, true
}

// AsCache returns the memo table of a cache value.
func (v Value) AsCache() (*Cache, bool) {
	c, ok := v.data.(*Cache)
	return c, ok
}

func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.data.(bool))
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		s := strconv.FormatFloat(v.data.(float64), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		return s
	case KindString:
		return strconv.Quote(v.data.(string))
	case KindSymbol:
		return v.data.(*Symbol).Name
	case KindList, KindVector:
		xs, _ := v.Items()
		parts := make([]string, len(xs))
		for i, x := range xs {
			parts[i] = x.String()
		}
		if v.Kind == KindVector {
			return "[" + strings.Join(parts, " ") + "]"
		}
		return "(" + strings.Join(parts, " ") + ")"
	case KindColor:
		c := v.data.(kantera.Rgba)
		return fmt.Sprintf("(rgba %g %g %g %g)", c.R, c.G, c.B, c.A)
	case KindVec2:
		p := v.data.(kantera.Vec2)
		return fmt.Sprintf("(vec2 %g %g)", p.X, p.Y)
	case KindNative:
		return "<native " + v.data.(*Native).Name + ">"
	case KindClosure, KindMacro:
		c := v.data.(*Closure)
		if c.Name != "" {
			return "<" + v.Kind.String() + " " + c.Name + ">"
		}
		return "<" + v.Kind.String() + ">"
	default:
		return "<" + v.Kind.String() + ">"
	}
}

// display renders v for str and print: strings unquoted.
func (v Value) display() string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return v.String()
}
