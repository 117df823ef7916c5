package docpatch

import (
	"slices"

	"github.com/docpatch/docpatch/codec"
	"github.com/docpatch/docpatch/debug"
	"github.com/docpatch/docpatch/ir"
	"github.com/docpatch/docpatch/kpath"
	"github.com/docpatch/docpatch/patch"
	"github.com/docpatch/docpatch/status"
)

type mode int

const (
	modeRead mode = iota
	modeAdd
	modeReplace
	modeInsert
	modeRemove
)

func (m mode) String() string {
	return [...]string{"read", "add", "replace", "insert", "remove"}[m]
}

func (m mode) isWrite() bool {
	return m == modeAdd || m == modeInsert
}

func modeOf(op patch.Op) mode {
	switch op {
	case patch.OpAdd:
		return modeAdd
	case patch.OpReplace:
		return modeReplace
	case patch.OpInsert:
		return modeInsert
	case patch.OpRemove:
		return modeRemove
	}
	return modeRead
}

// maxDepth caps traversal work on pathological paths. Exceeding it
// is an explicit error here rather than a silent stop.
const maxDepth = 100

type traversal struct {
	mode   mode
	value  *ir.Node
	fill   *ir.Node
	silent bool
}

var canonicalFills = []*ir.Node{
	ir.FromString(""),
	ir.NewArray(),
	ir.NewObject(),
	ir.FromInt(0),
	ir.FromInt(1),
	ir.FromBool(true),
	ir.FromBool(false),
	ir.Null(),
}

func validFill(fill *ir.Node) bool {
	for _, c := range canonicalFills {
		if ir.Equal(fill, c) {
			return true
		}
	}
	return false
}

// traverse walks the document along p and performs t's mode at the
// end. Write modes mutate the document in place.
func (e *Engine) traverse(p kpath.Path, t *traversal) *status.Result {
	if debug.Traverse() {
		debug.Logf("traverse %s %s\n", t.mode, p.String())
	}
	if t.mode.isWrite() {
		if t.fill == nil {
			t.fill = ir.Null()
		}
		if !validFill(t.fill) {
			return status.Errorf(status.Unprocessable,
				"invalid fill value %s", codec.MustJSON(t.fill))
		}
	}
	if len(p) > maxDepth {
		return status.Errorf(status.Unprocessable,
			"path exceeds %d segments", maxDepth)
	}
	return e.walk(e.doc, p, t)
}

func (e *Engine) walk(cur *ir.Node, segs kpath.Path, t *traversal) *status.Result {
	if len(segs) == 0 {
		return t.finish(cur)
	}
	seg := &segs[0]
	if seg.IsField() {
		return e.walkField(cur, seg, segs[1:], t)
	}
	return e.walkIndex(cur, seg, segs[1:], t)
}

// finish is the action at the reached node once all segments are
// consumed. Remove completes within its last segment step and never
// gets here with a non-empty path.
func (t *traversal) finish(cur *ir.Node) *status.Result {
	switch t.mode {
	case modeRead:
		return status.Payload(cur.Clone())
	case modeAdd, modeReplace, modeInsert:
		*cur = *t.value.Clone()
		return status.Done()
	}
	return status.Errorf(status.Unprocessable, "cannot %s the document root", t.mode)
}

func (e *Engine) walkField(cur *ir.Node, seg *kpath.Segment, rest kpath.Path, t *traversal) *status.Result {
	if cur.Type != ir.ObjectType {
		return status.Errorf(status.Unprocessable,
			"path mismatch: expected Object, got %s", cur.Type)
	}
	key := seg.FieldName()
	child := cur.Get(key)
	if child == nil {
		switch t.mode {
		case modeRead:
			return status.Errorf(status.NotFound, "no entry %q", key)
		case modeReplace:
			if t.silent {
				return status.Done()
			}
			return status.Errorf(status.NotFound, "no entry %q", key)
		case modeRemove:
			return status.Done()
		}
		// add/insert: write directly at the final segment, else
		// auto-vivify a container chosen by the next segment's kind.
		if len(rest) == 0 {
			cur.Set(key, t.value.Clone())
			return status.Done()
		}
		child = materialize(&rest[0])
		cur.Set(key, child)
		return e.walk(child, rest, t)
	}
	if len(rest) == 0 {
		switch t.mode {
		case modeRemove:
			cur.Delete(key)
			return status.Done()
		case modeInsert:
			if !t.silent {
				return status.Errorf(status.Unprocessable,
					"entry %q already exists", key)
			}
		}
	}
	return e.walk(child, rest, t)
}

func (e *Engine) walkIndex(cur *ir.Node, seg *kpath.Segment, rest kpath.Path, t *traversal) *status.Result {
	if cur.Type != ir.ArrayType {
		return status.Errorf(status.Unprocessable,
			"path mismatch: expected Array, got %s", cur.Type)
	}
	idx := 0
	fresh := false
	switch {
	case seg.Last:
		idx = cur.Len() - 1
	case seg.Append:
		if !t.mode.isWrite() {
			return status.Errorf(status.Unprocessable,
				"append selector requires add or insert, got %s", t.mode)
		}
		idx = cur.Len()
	case seg.Prepend:
		if !t.mode.isWrite() {
			return status.Errorf(status.Unprocessable,
				"prepend selector requires add or insert, got %s", t.mode)
		}
		cur.Values = slices.Insert(cur.Values, 0, t.fill.Clone())
		idx = 0
		fresh = true
	default:
		idx = *seg.Index
	}
	if idx < 0 || idx >= cur.Len() {
		if !t.mode.isWrite() {
			switch t.mode {
			case modeRead:
				return status.Errorf(status.NotFound, "no element %d", idx)
			case modeReplace:
				if t.silent {
					return status.Done()
				}
				return status.Errorf(status.NotFound, "no element %d", idx)
			case modeRemove:
				return status.Done()
			}
		}
		if idx < 0 {
			return status.Errorf(status.Unprocessable,
				"last selector on an empty array")
		}
		// Pad with fill up to the target position, then treat the
		// target like an absent entry: final segment takes the value,
		// deeper paths get an auto-vivified container.
		for cur.Len() < idx {
			cur.Values = append(cur.Values, t.fill.Clone())
		}
		if len(rest) == 0 {
			cur.Values = append(cur.Values, t.value.Clone())
			return status.Done()
		}
		child := materialize(&rest[0])
		cur.Values = append(cur.Values, child)
		return e.walk(child, rest, t)
	}
	child := cur.Values[idx]
	if len(rest) == 0 {
		switch t.mode {
		case modeRemove:
			cur.Splice(idx)
			return status.Done()
		case modeInsert:
			if !t.silent && !fresh {
				return status.Errorf(status.Unprocessable,
					"element %d already exists", idx)
			}
		}
	}
	return e.walk(child, rest, t)
}

// materialize creates the empty container a write descends into:
// arrays under index segments, objects under field segments.
func materialize(next *kpath.Segment) *ir.Node {
	if next.IsIndex() {
		return ir.NewArray()
	}
	return ir.NewObject()
}
