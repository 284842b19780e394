package tzif

import (
	"fmt"
	"sort"
)

// Lookup returns the local time type in effect at the Unix time sec.
//
// Times before the first transition use local time type 0. Times at or
// after the last transition of a V2+ file use the footer's TZ string when
// it is present.
func (d Data) Lookup(sec int64) (LocalTimeType, error) {
	if d.Version > V1 {
		return lookup(d.V2Data, string(d.V2Footer.TZString), sec)
	}
	return lookup(d.V1Data, "", sec)
}

func lookup[T Time](b DataBlock[T], tz string, sec int64) (LocalTimeType, error) {
	if len(b.LocalTimeTypeRecord) == 0 {
		return LocalTimeType{}, fmt.Errorf("lookup %d: no local time types", sec)
	}
	n := len(b.TransitionTimes)
	if tz != "" && (n == 0 || sec >= int64(b.TransitionTimes[n-1])) {
		rule, err := ParseTZString(tz)
		if err != nil {
			return LocalTimeType{}, fmt.Errorf("lookup %d: %w", sec, err)
		}
		return rule.Lookup(sec), nil
	}
	if n == 0 || sec < int64(b.TransitionTimes[0]) {
		return b.localTimeType(0), nil
	}
	i := sort.Search(n, func(i int) bool { return int64(b.TransitionTimes[i]) > sec }) - 1
	return b.localTimeType(int(b.TransitionTypes[i])), nil
}

func (b DataBlock[T]) localTimeType(i int) LocalTimeType {
	r := b.LocalTimeTypeRecord[i]
	return LocalTimeType{
		Offset:      r.Utoff,
		DST:         r.Dst,
		Designation: designation(b.TimeZoneDesignation, r.Idx),
	}
}

// Types returns the local time types of the most precise data block.
func (d Data) Types() []LocalTimeType {
	if d.Version > V1 {
		return typesOf(d.V2Data)
	}
	return typesOf(d.V1Data)
}

func typesOf[T Time](b DataBlock[T]) []LocalTimeType {
	types := make([]LocalTimeType, len(b.LocalTimeTypeRecord))
	for i := range types {
		types[i] = b.localTimeType(i)
	}
	return types
}

// Transitions returns the transitions of the most precise data block.
func (d Data) Transitions() []Transition {
	if d.Version > V1 {
		return transitionsOf(d.V2Data)
	}
	return transitionsOf(d.V1Data)
}

func transitionsOf[T Time](b DataBlock[T]) []Transition {
	trs := make([]Transition, len(b.TransitionTimes))
	for i, at := range b.TransitionTimes {
		trs[i] = Transition{At: int64(at), Type: int(b.TransitionTypes[i])}
	}
	return trs
}
