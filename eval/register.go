package eval

import (
	"errors"
	"fmt"
	"sync"

	"github.com/docpatch/docpatch/patch"
)

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

var ErrSymbolExists = errors.New("symbol exists")

func Register(s Symbol) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[s.String()]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[s.String()] = s
	return nil
}

func init() {
	Register(NewValidator("nonempty", nonEmpty))
	Register(NewValidator("scalar", scalar))
	Register(NewHook("record-path", recordPath))
}

func Lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	return res
}

// LookupValidator resolves a named validator, nil when the name is
// unbound or bound to a non-validator.
func LookupValidator(s string) patch.ValidatorFunc {
	sym, ok := Lookup(s).(ValidatorSymbol)
	if !ok {
		return nil
	}
	return sym.Validate
}

// LookupHook resolves a named hook, nil when the name is unbound or
// bound to a non-hook.
func LookupHook(s string) patch.HookFunc {
	sym, ok := Lookup(s).(HookSymbol)
	if !ok {
		return nil
	}
	return sym.Hook
}
