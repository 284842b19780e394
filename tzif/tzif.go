// Package tzif implements the TZif file format according to RFC8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// Besides encoding and decoding, the package answers the one question a
// formatter needs from a zone: which local time type is in effect at a
// given instant (see [Data.Lookup]).
package tzif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// All multi-octet integers are big-endian two's complement.
var order = binary.BigEndian

// Version represents the version of a TZif file.
// V1 files carry 32-bit time values only; V2 and later add a second data
// block with 64-bit time values and a footer.
type Version byte

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

const (
	// V1 files contain only the version 1 header and data block.
	V1 Version = 0x00
	// V2 files add a version 2+ header, data block and a footer whose TZ
	// string follows POSIX.
	V2 Version = 0x32 // '2'
	// V3 files may use the TZ string extensions of RFC8536 section 3.3.1:
	// hours in the range [-167, 167] and DST all year.
	V3 Version = 0x33 // '3'
	// V4 files are described in tzfile(5): the leap second table may be
	// truncated at the start and may carry an expiration entry.
	V4 Version = 0x34 // '4'
)

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// Header is the header of a TZif file.
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type Header struct {
	Version  Version
	Reserved [15]byte

	// Isutcnt is the number of UT/local indicators, zero or Typecnt.
	Isutcnt uint32
	// Isstdcnt is the number of standard/wall indicators, zero or Typecnt.
	Isstdcnt uint32
	// Leapcnt is the number of leap second records.
	Leapcnt uint32
	// Timecnt is the number of transition times.
	Timecnt uint32
	// Typecnt is the number of local time type records. It is never zero.
	Typecnt uint32
	// Charcnt is the size of the designation table including the final
	// NUL. It is never zero.
	Charcnt uint32
}

// Write writes the Header to w.
func (h Header) Write(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

// ReadHeader reads a Header including the leading magic from r.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if !bytes.Equal(magic[:], Magic[:]) {
		return h, fmt.Errorf("invalid magic: %v", magic)
	}
	err := binary.Read(r, order, &h)
	return h, err
}

// Time is the set of time value sizes used by data blocks:
// int32 in the V1 block and int64 in the V2+ block.
type Time interface {
	int32 | int64
}

// DataBlock is a TZif data block with time values of type T.
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x TIME_SIZE)        |
//	+---------------------------------------------------------+
//	|  transition types          (timecnt)                    |
//	+---------------------------------------------------------+
//	|  local time type records   (typecnt x 6)                |
//	+---------------------------------------------------------+
//	|  time zone designations    (charcnt)                    |
//	+---------------------------------------------------------+
//	|  leap-second records       (leapcnt x (TIME_SIZE + 4))  |
//	+---------------------------------------------------------+
//	|  standard/wall indicators  (isstdcnt)                   |
//	+---------------------------------------------------------+
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
type DataBlock[T Time] struct {
	// TransitionTimes are Unix times in strictly ascending order at which
	// the local time type may change.
	TransitionTimes []T
	// TransitionTypes index LocalTimeTypeRecord, one per transition time.
	TransitionTypes []uint8
	// LocalTimeTypeRecord holds the local time types.
	LocalTimeTypeRecord []LocalTimeTypeRecord
	// TimeZoneDesignation is a table of NUL-terminated abbreviations such
	// as "CET\x00CEST\x00". Designations may overlap when one is a suffix
	// of another.
	TimeZoneDesignation []byte
	// LeapSecondRecords are sorted by occurrence.
	LeapSecondRecords []LeapSecondRecord[T]
	// StandardWallIndicators tell whether transitions of the corresponding
	// type were specified in standard time (true) or wall time.
	StandardWallIndicators []bool
	// UTLocalIndicators tell whether transitions of the corresponding type
	// were specified in UT (true) or local time.
	UTLocalIndicators []bool
}

// V1DataBlock is the data block of a version 1 TZif file.
type V1DataBlock = DataBlock[int32]

// V2DataBlock is the data block of a version 2+ TZif file.
type V2DataBlock = DataBlock[int64]

// V1LeapSecondRecord is a leap second record of a V1DataBlock.
type V1LeapSecondRecord = LeapSecondRecord[int32]

// V2LeapSecondRecord is a leap second record of a V2DataBlock.
type V2LeapSecondRecord = LeapSecondRecord[int64]

// Write writes the data block to w.
func (b DataBlock[T]) Write(w io.Writer) error {
	parts := []any{
		b.TransitionTimes,
		b.TransitionTypes,
		b.LocalTimeTypeRecord,
		b.TimeZoneDesignation,
		b.LeapSecondRecords,
		b.StandardWallIndicators,
		b.UTLocalIndicators,
	}
	for _, p := range parts {
		if err := binary.Write(w, order, p); err != nil {
			return err
		}
	}
	return nil
}

// ReadV1DataBlock reads the data block described by a V1 header.
func ReadV1DataBlock(r io.Reader, h Header) (V1DataBlock, error) {
	return readDataBlock[int32](r, h)
}

// ReadV2DataBlock reads the data block described by a V2+ header.
func ReadV2DataBlock(r io.Reader, h Header) (V2DataBlock, error) {
	if h.Version < V2 {
		return V2DataBlock{}, fmt.Errorf("invalid header version: %v", h.Version)
	}
	return readDataBlock[int64](r, h)
}

func readDataBlock[T Time](r io.Reader, h Header) (DataBlock[T], error) {
	var b DataBlock[T]
	if h.Timecnt > 0 {
		b.TransitionTimes = make([]T, h.Timecnt)
		if err := binary.Read(r, order, b.TransitionTimes); err != nil {
			return b, fmt.Errorf("reading transition times: %w", err)
		}
		b.TransitionTypes = make([]uint8, h.Timecnt)
		if err := binary.Read(r, order, b.TransitionTypes); err != nil {
			return b, fmt.Errorf("reading transition types: %w", err)
		}
	}
	if h.Typecnt > 0 {
		b.LocalTimeTypeRecord = make([]LocalTimeTypeRecord, h.Typecnt)
		if err := binary.Read(r, order, b.LocalTimeTypeRecord); err != nil {
			return b, fmt.Errorf("reading local time type record: %w", err)
		}
	}
	if h.Charcnt > 0 {
		b.TimeZoneDesignation = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, b.TimeZoneDesignation); err != nil {
			return b, fmt.Errorf("reading time zone designation: %w", err)
		}
	}
	if h.Leapcnt > 0 {
		b.LeapSecondRecords = make([]LeapSecondRecord[T], h.Leapcnt)
		if err := binary.Read(r, order, b.LeapSecondRecords); err != nil {
			return b, fmt.Errorf("reading leap second record: %w", err)
		}
	}
	if h.Isstdcnt > 0 {
		b.StandardWallIndicators = make([]bool, h.Isstdcnt)
		if err := binary.Read(r, order, b.StandardWallIndicators); err != nil {
			return b, fmt.Errorf("reading standard/wall indicator: %w", err)
		}
	}
	if h.Isutcnt > 0 {
		b.UTLocalIndicators = make([]bool, h.Isutcnt)
		if err := binary.Read(r, order, b.UTLocalIndicators); err != nil {
			return b, fmt.Errorf("reading UT/local indicator: %w", err)
		}
	}
	return b, nil
}

// LeapSecondRecord is a leap second correction.
//
//	+---------------+---------------+
//	|  occur (TIME_SIZE) |  corr (4) |
//	+---------------+---------------+
type LeapSecondRecord[T Time] struct {
	// Occur is the Unix leap time at which the correction applies.
	Occur T
	// Corr is the total correction in seconds on or after Occur.
	Corr int32
}

// LocalTimeTypeRecord represents a local time type record.
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeTypeRecord struct {
	// Utoff is the number of seconds added to UT to obtain local time.
	// It should be in [-89999, 93599].
	Utoff int32
	// Dst reports whether the type is daylight saving time.
	Dst bool
	// Idx is the start of the designation in the designation table.
	Idx uint8
}

// Write writes the record to w.
func (r LocalTimeTypeRecord) Write(w io.Writer) error {
	return binary.Write(w, order, r)
}

// Footer represents the footer of a TZif file.
//
//	+---+--------------------+---+
//	| NL|  TZ string (0...)  |NL |
//	+---+--------------------+---+
type Footer struct {
	// TZString is a POSIX TZ string describing local time after the last
	// transition of the V2+ data block. It may be empty. See ParseTZString.
	TZString []byte
}

var asciiNewLine = byte(0x0A)

// Write writes the footer to w.
func (f Footer) Write(w io.Writer) error {
	buf := make([]byte, 0, len(f.TZString)+2)
	buf = append(buf, asciiNewLine)
	buf = append(buf, f.TZString...)
	buf = append(buf, asciiNewLine)
	_, err := w.Write(buf)
	return err
}

// ReadFooter reads a footer from r. It consumes exactly the footer.
func ReadFooter(r io.Reader) (Footer, error) {
	var f Footer
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return f, fmt.Errorf("reading newline: %w", err)
	}
	if buf[0] != asciiNewLine {
		return f, fmt.Errorf("expected newline: %v", buf[0])
	}
	var b []byte
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return f, fmt.Errorf("reading TZ string: %w", err)
		}
		if buf[0] == asciiNewLine {
			break
		}
		b = append(b, buf[0])
	}
	f.TZString = b
	return f, nil
}
