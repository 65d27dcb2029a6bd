package setplot

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/plotdata"
)

// Func is a setplot function.
type Func func(*plotdata.PlotData) *plotdata.PlotData

// DefaultName is the setplot used when none is configured.
const DefaultName = "euler"

var (
	mu       sync.RWMutex
	registry = map[string]Func{
		DefaultName: Euler,
	}
)

// Register makes fn available under name, replacing any previous entry.
func Register(name string, fn Func) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if fn == nil {
		return errors.New(errors.ErrCodeInvalidInput, "setplot %q: nil function", name)
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = fn
	return nil
}

// Lookup returns the setplot registered under name (case-insensitive).
func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := registry[strings.ToLower(name)]
	return fn, ok
}

// Names returns the registered setplot names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FromFile reads a setplot TOML file and returns a Func that applies it
// to its argument. The file is parsed once, so errors surface here.
func FromFile(path string) (Func, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetplotNotFound, err, "read setplot file %s", path)
	}
	defer f.Close()
	sp, err := plotdata.ParseSetplot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return func(pd *plotdata.PlotData) *plotdata.PlotData {
		sp.Apply(pd)
		return pd
	}, nil
}

// Resolve returns the setplot named by ref: a registered name, or a path
// to a setplot TOML file. An empty ref selects DefaultName.
func Resolve(ref string) (Func, error) {
	if ref == "" {
		ref = DefaultName
	}
	if fn, ok := Lookup(ref); ok {
		return fn, nil
	}
	if strings.HasSuffix(ref, ".toml") || strings.ContainsAny(ref, `/\`) {
		return FromFile(ref)
	}
	return nil, errors.New(errors.ErrCodeSetplotNotFound, "unknown setplot %q (available: %s)", ref, strings.Join(Names(), ", "))
}
