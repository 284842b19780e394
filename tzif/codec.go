package tzif

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// Data represents a TZif file.
type Data struct {
	Version Version

	V1Header Header
	V1Data   V1DataBlock

	V2Header Header
	V2Data   V2DataBlock
	V2Footer Footer
}

// Encode writes the given TZif data to the given writer.
// If the version is V1, the V2 fields are not written.
func (d Data) Encode(w io.Writer) error {
	if err := d.V1Header.Write(w); err != nil {
		return fmt.Errorf("write v1 header: %w", err)
	}
	if err := d.V1Data.Write(w); err != nil {
		return fmt.Errorf("write v1 data: %w", err)
	}
	if d.Version > V1 {
		if err := d.V2Header.Write(w); err != nil {
			return fmt.Errorf("write v2 header: %w", err)
		}
		if err := d.V2Data.Write(w); err != nil {
			return fmt.Errorf("write v2 data: %w", err)
		}
		if err := d.V2Footer.Write(w); err != nil {
			return fmt.Errorf("write v2 footer: %w", err)
		}
	}
	return nil
}

// Bytes returns the encoded form of d.
func (d Data) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeData reads the TZif Data from the given reader.
// If the version is V1, the V2 fields should be ignored.
func DecodeData(r io.Reader) (Data, error) {
	var (
		d   Data
		err error
	)
	d.V1Header, err = ReadHeader(r)
	if err != nil {
		return d, fmt.Errorf("read v1 header: %w", err)
	}
	d.Version = d.V1Header.Version

	d.V1Data, err = ReadV1DataBlock(r, d.V1Header)
	if err != nil {
		return d, fmt.Errorf("read v1 data block: %w", err)
	}

	if d.Version > V1 {
		d.V2Header, err = ReadHeader(r)
		if err != nil {
			return d, fmt.Errorf("read v2 header: %w", err)
		}
		d.V2Data, err = ReadV2DataBlock(r, d.V2Header)
		if err != nil {
			return d, fmt.Errorf("read v2 data block: %w", err)
		}
		d.V2Footer, err = ReadFooter(r)
		if err != nil {
			return d, fmt.Errorf("read footer: %w", err)
		}
	}

	return d, nil
}

// LocalTimeType is a local time type with its designation resolved.
type LocalTimeType struct {
	// Offset is the number of seconds east of UT.
	Offset int32
	DST    bool
	// Designation is the abbreviation, like "CEST".
	Designation string
}

// Transition switches to Types[Type] at the Unix time At.
type Transition struct {
	At   int64
	Type int
}

// Build assembles a V2 file from decoded parts. Transitions must be sorted.
// The V1 block receives every transition that fits into 32 bits.
func Build(types []LocalTimeType, transitions []Transition, tz string) (Data, error) {
	if len(types) == 0 {
		return Data{}, fmt.Errorf("build: no local time types")
	}
	if len(types) > math.MaxUint8+1 {
		return Data{}, fmt.Errorf("build: too many local time types: %d", len(types))
	}

	var (
		records []LocalTimeTypeRecord
		chars   []byte
		idx     = map[string]int{}
	)
	for _, t := range types {
		i, ok := idx[t.Designation]
		if !ok {
			i = len(chars)
			idx[t.Designation] = i
			chars = append(chars, t.Designation...)
			chars = append(chars, 0)
		}
		if i > math.MaxUint8 {
			return Data{}, fmt.Errorf("build: designation table too large")
		}
		records = append(records, LocalTimeTypeRecord{Utoff: t.Offset, Dst: t.DST, Idx: uint8(i)})
	}

	var (
		v1 V1DataBlock
		v2 V2DataBlock
	)
	for i, tr := range transitions {
		if tr.Type < 0 || tr.Type >= len(types) {
			return Data{}, fmt.Errorf("build: transition %d: type %d out of range", i, tr.Type)
		}
		if i > 0 && tr.At <= transitions[i-1].At {
			return Data{}, fmt.Errorf("build: transition %d: not in ascending order", i)
		}
		v2.TransitionTimes = append(v2.TransitionTimes, tr.At)
		v2.TransitionTypes = append(v2.TransitionTypes, uint8(tr.Type))
		if tr.At >= math.MinInt32 && tr.At <= math.MaxInt32 {
			v1.TransitionTimes = append(v1.TransitionTimes, int32(tr.At))
			v1.TransitionTypes = append(v1.TransitionTypes, uint8(tr.Type))
		}
	}
	v1.LocalTimeTypeRecord, v2.LocalTimeTypeRecord = records, records
	v1.TimeZoneDesignation, v2.TimeZoneDesignation = chars, chars

	header := func(timecnt int) Header {
		return Header{
			Version: V2,
			Timecnt: uint32(timecnt),
			Typecnt: uint32(len(records)),
			Charcnt: uint32(len(chars)),
		}
	}
	return Data{
		Version:  V2,
		V1Header: header(len(v1.TransitionTimes)),
		V1Data:   v1,
		V2Header: header(len(v2.TransitionTimes)),
		V2Data:   v2,
		V2Footer: Footer{TZString: []byte(tz)},
	}, nil
}

// designation returns the NUL-terminated string starting at idx.
func designation(table []byte, idx uint8) string {
	if int(idx) >= len(table) {
		return ""
	}
	s := table[idx:]
	if end := bytes.IndexByte(s, 0); end >= 0 {
		s = s[:end]
	}
	return string(s)
}
