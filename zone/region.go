package zone

import (
	"github.com/ngrash/go-tzfmt/temporal"
	"github.com/ngrash/go-tzfmt/tzif"
)

// localSearch brackets a local time when resolving its offset. No zone has
// ever been more than 26 hours away from UTC.
const localSearch = 26 * 3600

// Region is a geographical zone backed by TZif data.
type Region struct {
	id   string
	data tzif.Data
}

// NewRegion validates data and returns the zone id backed by it.
func NewRegion(id string, data tzif.Data) (*Region, error) {
	if err := tzif.Validate(data); err != nil {
		return nil, err
	}
	return &Region{id: id, data: data}, nil
}

func (r *Region) ID() string      { return r.id }
func (r *Region) String() string  { return r.id }
func (r *Region) Data() tzif.Data { return r.data }

// LocalTimeType returns the local time type in effect at the Unix time sec.
func (r *Region) LocalTimeType(sec int64) tzif.LocalTimeType {
	ltt, err := r.data.Lookup(sec)
	if err != nil {
		// Validated data always has a type and a parseable footer.
		panic(err)
	}
	return ltt
}

func (r *Region) OffsetAt(sec int64) temporal.Offset {
	return temporal.Offset(r.LocalTimeType(sec).Offset)
}

// OffsetForLocal returns the offset dt is read in. Candidate offsets are
// taken from either side of dt; the earlier one wins when both are valid,
// and the one before a gap wins when neither is.
func (r *Region) OffsetForLocal(dt temporal.LocalDateTime) temporal.Offset {
	local := dt.EpochSecond(0)
	before := r.OffsetAt(local - localSearch)
	after := r.OffsetAt(local + localSearch)
	switch {
	case r.OffsetAt(local-int64(before)) == before:
		return before
	case r.OffsetAt(local-int64(after)) == after:
		return after
	}
	return before
}
