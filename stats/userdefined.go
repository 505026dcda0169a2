package stats

import "github.com/toposim/toposim/config"

// UserDefinedRow is one append-only accumulator row: a key-tuple (matched
// structurally against incoming events), the running sum of each value
// expression, and the number of events folded into the row (spec.md §3
// "UserDefinedStatistic").
type UserDefinedRow struct {
	Key   []float64
	Sum   []float64
	Count int64
}

// UserDefinedStatistic is a pair of expression lists — keys and values —
// evaluated against a per-event context record on every packet/message
// event (spec.md §4.3 "User-defined statistics"). Matching rows (equal
// key-tuples, compared structurally) accumulate; otherwise a new row is
// appended.
//
// Grounded on original_source/src/measures.rs's user-defined statistic
// accumulator and config.Expr (spec.md §3's "Expr" ConfigValue variant).
type UserDefinedStatistic struct {
	Name  string
	Keys  []*config.Expr
	Vals  []*config.Expr
	Rows  []UserDefinedRow
}

// NewUserDefinedStatistic builds an empty accumulator for the given key
// and value expression lists.
func NewUserDefinedStatistic(name string, keys, vals []*config.Expr) *UserDefinedStatistic {
	return &UserDefinedStatistic{Name: name, Keys: keys, Vals: vals}
}

func sameKey(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Record evaluates Keys and Vals against ctx and folds the result into the
// matching row (or appends a new one). Panics if an expression references
// an undefined variable — an UserDefinedStatistic misconfigured against
// the event context it is wired to is a construction-time bug (spec.md
// §7's Fault class).
func (u *UserDefinedStatistic) Record(ctx map[string]float64) {
	key := make([]float64, len(u.Keys))
	for i, k := range u.Keys {
		v, err := k.Eval(ctx)
		if err != nil {
			panic("stats: UserDefinedStatistic " + u.Name + ": key expression: " + err.Error())
		}
		key[i] = v
	}
	vals := make([]float64, len(u.Vals))
	for i, e := range u.Vals {
		v, err := e.Eval(ctx)
		if err != nil {
			panic("stats: UserDefinedStatistic " + u.Name + ": value expression: " + err.Error())
		}
		vals[i] = v
	}
	for i := range u.Rows {
		if sameKey(u.Rows[i].Key, key) {
			for j, v := range vals {
				u.Rows[i].Sum[j] += v
			}
			u.Rows[i].Count++
			return
		}
	}
	u.Rows = append(u.Rows, UserDefinedRow{Key: key, Sum: vals, Count: 1})
}

// EventContext builds the per-event variable map spec.md §4.3 documents:
// hops, delay, creation cycle, size, and (for packets) a cycle-per-hop
// trace, collapsed here to the scalar fields every key/value Expr can
// reference directly; trace fields (link-class, switch, entry-VC) are
// supplied by the caller under their own names when available, since
// their shape is topology-specific and not fixed by this package.
func EventContext(hops int, delay int64, creationCycle int64, size int64, extra map[string]float64) map[string]float64 {
	ctx := map[string]float64{
		"hops":           float64(hops),
		"delay":          float64(delay),
		"creation_cycle": float64(creationCycle),
		"size":           float64(size),
	}
	for k, v := range extra {
		ctx[k] = v
	}
	return ctx
}
