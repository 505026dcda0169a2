package stats

import "github.com/toposim/toposim/config"

// intSliceToArray renders a []int as a config.Value Array of Numbers.
func intSliceToArray(xs []int) config.Value {
	vs := make([]config.Value, len(xs))
	for i, x := range xs {
		vs[i] = config.Number(float64(x))
	}
	return config.Array(vs)
}

func field(name string, v config.Value) config.Field {
	return config.Field{Name: name, Value: v}
}

// ToConfigValue renders one TrafficStatistics node as the `traffic_statistics`
// ConfigValue Object documented in spec.md §6, including a `temporal`
// sub-object when temporal bucketing is enabled and a `sub_traffics` array
// mirroring the composition tree.
func (t *TrafficStatistics) ToConfigValue() config.Value {
	fields := []config.Field{
		field("total_created_messages", config.Number(float64(t.Totals.CreatedMessages))),
		field("total_consumed_messages", config.Number(float64(t.Totals.ConsumedMessages))),
		field("total_created_phits", config.Number(float64(t.Totals.CreatedPhits))),
		field("total_consumed_phits", config.Number(float64(t.Totals.ConsumedPhits))),
		field("total_message_delay", config.Number(t.Totals.AverageMessageDelay())),
		field("message_latency_histogram", intSliceToArray(t.DelayHistogram.Dense())),
		field("generating_tasks_histogram", intSliceToArray(t.TaskStateHistogram(StateGenerating))),
		field("waiting_tasks_histogram", intSliceToArray(t.TaskStateHistogram(StateUnspecifiedWait))),
		field("waiting_data_histogram", intSliceToArray(t.TaskStateHistogram(StateWaitingData))),
		field("finished_generating_tasks_histogram", intSliceToArray(t.TaskStateHistogram(StateFinishedGenerating))),
		field("finished_tasks_histogram", intSliceToArray(t.TaskStateHistogram(StateFinished))),
	}
	if t.Totals.HasCreated {
		fields = append(fields, field("cycle_last_created_message", config.Number(float64(t.Totals.CycleLastCreated))))
	}
	if t.Totals.HasConsumed {
		fields = append(fields, field("cycle_last_consumed_message", config.Number(float64(t.Totals.CycleLastConsumed))))
	}
	if t.Temporal != nil {
		fields = append(fields, field("temporal", config.Object("temporal_statistics", []config.Field{
			field("created_messages", intSliceToArray(t.Temporal.CreatedMessages.Dense())),
			field("consumed_messages", intSliceToArray(t.Temporal.ConsumedMessages.Dense())),
			field("created_phits", intSliceToArray(t.Temporal.CreatedPhits.Dense())),
			field("consumed_phits", intSliceToArray(t.Temporal.ConsumedPhits.Dense())),
		})))
	}
	if len(t.SubTraffics) > 0 {
		subs := make([]config.Value, len(t.SubTraffics))
		for i, sub := range t.SubTraffics {
			subs[i] = sub.ToConfigValue()
		}
		fields = append(fields, field("sub_traffics", config.Array(subs)))
	}
	return config.Object("traffic_statistics", fields)
}

// ToConfigValue renders one PacketMeasurement as the `packet` ConfigValue
// Object documented in spec.md §6.
func (p PacketMeasurement) ToConfigValue() config.Value {
	return config.Object("packet", []config.Field{
		field("consumed_cycle", config.Number(float64(p.ConsumedCycle))),
		field("hops", config.Number(float64(p.Hops))),
		field("delay", config.Number(float64(p.Delay))),
	})
}

// ToConfigValue renders every retained row as a `message` ConfigValue
// Array of UserDefinedRow objects, the row shape spec.md §4.3 documents
// ("a pair (key-tuple, sum-of-values, count)").
func (u *UserDefinedStatistic) ToConfigValue() config.Value {
	rows := make([]config.Value, len(u.Rows))
	for i, row := range u.Rows {
		keys := make([]config.Value, len(row.Key))
		for j, k := range row.Key {
			keys[j] = config.Number(k)
		}
		sums := make([]config.Value, len(row.Sum))
		for j, s := range row.Sum {
			sums[j] = config.Number(s)
		}
		rows[i] = config.Object("message", []config.Field{
			field("key", config.Array(keys)),
			field("sum", config.Array(sums)),
			field("count", config.Number(float64(row.Count))),
		})
	}
	return config.Array(rows)
}
