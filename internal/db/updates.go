package db

import "time"

// columnValue is one (fixed column name, boxed value) pair of a partial
// update. Column names are literals at the call site; only values travel
// as parameters.
type columnValue struct {
	column string
	value  any
}

// updateSet accumulates the columns a partial update touches, in the order
// they were supplied.
type updateSet struct {
	pairs []columnValue
}

func (set *updateSet) add(column string, value any) {
	set.pairs = append(set.pairs, columnValue{column: column, value: value})
}

func (set *updateSet) empty() bool {
	return len(set.pairs) == 0
}

// stamped materializes the pairs for gorm's Updates, restamping updated_at.
func (set *updateSet) stamped(now time.Time) map[string]any {
	values := make(map[string]any, len(set.pairs)+1)
	for _, pair := range set.pairs {
		values[pair.column] = pair.value
	}
	values["updated_at"] = now
	return values
}

// plain materializes the pairs without an updated_at restamp, for tables
// that only carry a creation timestamp.
func (set *updateSet) plain() map[string]any {
	values := make(map[string]any, len(set.pairs))
	for _, pair := range set.pairs {
		values[pair.column] = pair.value
	}
	return values
}
