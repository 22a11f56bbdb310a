// Package scripting loads encounter boundaries declared in Lua scripts.
package scripting

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	lua "github.com/yuin/gopher-lua"

	"github.com/udisondev/worldcore/internal/boundary"
	"github.com/udisondev/worldcore/internal/model"
)

// ErrUnknownBoundary is returned for a boundary no script declared.
var ErrUnknownBoundary = errors.New("unknown boundary")

// Engine wraps a single gopher-lua VM. Scripts fill the global table
// `boundaries`, keyed by encounter name, with lists of shapes:
//
//	boundaries["halion"] = {
//	  { shape = "circle", x = 3156.0, y = 533.8, radius = 48.5 },
//	  { shape = "zrange", min_z = 80, max_z = 100, inverted = true },
//	}
//
// Boundaries are resolved once, after every script ran. Lookups are safe for
// concurrent use; the VM itself is not.
type Engine struct {
	vm         *lua.LState
	boundaries map[string]boundary.CreatureBoundary
}

// NewEngine creates a Lua engine and loads every script in scriptsDir.
// A missing directory yields an engine without boundaries.
func NewEngine(scriptsDir string) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("boundaries", vm.NewTable())

	e := &Engine{vm: vm}

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load boundary scripts: %w", err)
	}
	if err := e.resolve(); err != nil {
		vm.Close()
		return nil, fmt.Errorf("resolve boundaries: %w", err)
	}

	slog.Info("boundary scripts loaded", "dir", scriptsDir, "boundaries", len(e.boundaries))
	return e, nil
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		slog.Debug("loaded lua script", "file", path)
	}
	return nil
}

func (e *Engine) resolve() error {
	e.boundaries = make(map[string]boundary.CreatureBoundary)

	tbl, ok := e.vm.GetGlobal("boundaries").(*lua.LTable)
	if !ok {
		return errors.New("global boundaries is not a table")
	}

	var errs []error
	tbl.ForEach(func(k, v lua.LValue) {
		name := lua.LVAsString(k)
		shapes, ok := v.(*lua.LTable)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: not a list of shapes", name))
			return
		}

		var cb boundary.CreatureBoundary
		for i := 1; i <= shapes.Len(); i++ {
			st, ok := shapes.RawGetInt(i).(*lua.LTable)
			if !ok {
				errs = append(errs, fmt.Errorf("%s[%d]: not a shape table", name, i))
				continue
			}
			b, err := parseShape(st)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s[%d]: %w", name, i, err))
				continue
			}
			cb = append(cb, b)
		}
		e.boundaries[name] = cb
	})
	return errors.Join(errs...)
}

// parseShape builds the boundary described by a shape table.
func parseShape(t *lua.LTable) (boundary.AreaBoundary, error) {
	inverted := lua.LVAsBool(t.RawGetString("inverted"))
	f := fields{t: t}

	var b boundary.AreaBoundary
	switch shape := lStr(t, "shape"); shape {
	case "triangle":
		b = boundary.NewTriangleBoundary(f.point("a"), f.point("b"), f.point("c"), inverted)
	case "rectangle":
		b = boundary.NewRectangleBoundary(f.num("south_x"), f.num("north_x"), f.num("east_y"), f.num("west_y"), inverted)
	case "circle":
		center := boundary.NewDoublePosition(f.num("x"), f.num("y"), 0)
		if t.RawGetString("through") != lua.LNil {
			b = boundary.NewCircleBoundaryThrough(center, f.point("through"), inverted)
		} else {
			b = boundary.NewCircleBoundary(center, f.num("radius"), inverted)
		}
	case "ellipse":
		center := boundary.NewDoublePosition(f.num("x"), f.num("y"), 0)
		b = boundary.NewEllipseBoundary(center, f.num("radius_x"), f.num("radius_y"), inverted)
	case "parallelogram":
		b = boundary.NewParallelogramBoundary(f.point("a"), f.point("b"), f.point("d"), inverted)
	case "zrange":
		b = boundary.NewZRangeBoundary(float32(f.num("min_z")), float32(f.num("max_z")), inverted)
	case "union":
		first, err := f.shape("first")
		if err != nil {
			return nil, fmt.Errorf("union first: %w", err)
		}
		second, err := f.shape("second")
		if err != nil {
			return nil, fmt.Errorf("union second: %w", err)
		}
		b = boundary.NewUnionBoundary(first, second, inverted)
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}

	if f.err != nil {
		return nil, f.err
	}
	return b, nil
}

// fields reads required shape fields, keeping the first error.
type fields struct {
	t   *lua.LTable
	err error
}

func (f *fields) num(key string) float64 {
	v := f.t.RawGetString(key)
	n, ok := v.(lua.LNumber)
	if !ok {
		if f.err == nil {
			f.err = fmt.Errorf("field %s: expected number, got %s", key, v.Type())
		}
		return 0
	}
	return float64(n)
}

func (f *fields) point(key string) boundary.DoublePosition {
	pt, ok := f.t.RawGetString(key).(*lua.LTable)
	if !ok {
		if f.err == nil {
			f.err = fmt.Errorf("field %s: expected point table", key)
		}
		return boundary.DoublePosition{}
	}
	sub := fields{t: pt}
	x, y := sub.num("x"), sub.num("y")
	var z float64
	if pt.RawGetString("z") != lua.LNil {
		z = sub.num("z")
	}
	if sub.err != nil && f.err == nil {
		f.err = fmt.Errorf("field %s: %w", key, sub.err)
	}
	return boundary.NewDoublePosition(x, y, z)
}

func (f *fields) shape(key string) (boundary.AreaBoundary, error) {
	st, ok := f.t.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("field %s: expected shape table", key)
	}
	return parseShape(st)
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

// Boundary returns the boundary set declared under name.
func (e *Engine) Boundary(name string) (boundary.CreatureBoundary, error) {
	cb, ok := e.boundaries[name]
	if !ok {
		return nil, fmt.Errorf("boundary %q: %w", name, ErrUnknownBoundary)
	}
	return cb, nil
}

// IsWithinBoundary reports whether pos lies inside every shape declared under
// name. Unknown names contain nothing.
func (e *Engine) IsWithinBoundary(name string, pos *model.Position) bool {
	cb, ok := e.boundaries[name]
	if !ok {
		return false
	}
	return cb.IsWithinBoundary(pos)
}

// Names returns the declared boundary names, sorted.
func (e *Engine) Names() []string {
	return slices.Sorted(maps.Keys(e.boundaries))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
