package scalarval

import (
	"encoding/binary"
	"io"
	"math"
)

// StreamWriter writes Values to a typed byte stream using big-endian
// primitives, mirroring xsqlvar.go's own binary.Read(b, binary.BigEndian,
// &f64) idiom but for writing parameter sets and export records (§4.I).
type StreamWriter struct {
	w   io.Writer
	err error
}

// NewStreamWriter wraps w.
func NewStreamWriter(w io.Writer) *StreamWriter { return &StreamWriter{w: w} }

// Err returns the first error encountered by any Write* call.
func (s *StreamWriter) Err() error { return s.err }

func (s *StreamWriter) writeRaw(b []byte) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.Write(b)
}

// WriteParam writes v in the parameter (wire) format: a Kind byte
// followed by the value, NULL objects/arrays signaled per-Kind per §6.
func (s *StreamWriter) WriteParam(v Value) error {
	if s.err != nil {
		return s.err
	}
	s.writeRaw([]byte{byte(v.Kind())})
	s.writeValueBody(v, true)
	return s.err
}

// WriteExport writes v in the export format: no NULL tag is written
// (callers arrange a bitmap out of band, per §4.I/§6); Decimal is
// prefixed by (scale byte, byte-count byte) and its limbs are written
// high then low, matching the wire order.
func (s *StreamWriter) WriteExport(v Value) error {
	if s.err != nil {
		return s.err
	}
	if v.Kind() == KindDecimal {
		s.writeRaw([]byte{decimalScale, 16})
	}
	s.writeValueBody(v, false)
	return s.err
}

func (s *StreamWriter) writeValueBody(v Value, withNullTag bool) {
	switch v.Kind() {
	case KindTinyInt:
		s.writeRaw([]byte{byte(v.AsI8())})
	case KindSmallInt:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(v.AsI16()))
		s.writeRaw(b[:])
	case KindInteger:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v.AsI32()))
		s.writeRaw(b[:])
	case KindBigInt, KindTimestamp:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v.AsI64()))
		s.writeRaw(b[:])
	case KindDouble:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v.AsF64()))
		s.writeRaw(b[:])
	case KindBoolean:
		switch {
		case v.IsNull():
			s.writeRaw([]byte{NullBoolean})
		case v.AsBool():
			s.writeRaw([]byte{1})
		default:
			s.writeRaw([]byte{0})
		}
	case KindAddress:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v.AsAddress())
		s.writeRaw(b[:])
	case KindDecimal:
		var b [16]byte
		putInt128BE(b[:], v.decimalRaw())
		s.writeRaw(b[:])
	case KindVarchar, KindVarbinary:
		if withNullTag && v.IsNull() {
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(int32(-1)))
			s.writeRaw(b[:])
			return
		}
		data := v.AsBytes()
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(len(data)))
		s.writeRaw(b[:])
		s.writeRaw(data)
	case KindArray:
		elems := v.Elements()
		s.writeRaw([]byte{byte(v.ElementKind())})
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(len(elems)))
		s.writeRaw(b[:])
		for _, e := range elems {
			s.writeValueBody(e, withNullTag)
		}
	case KindNull:
		// untyped NULL carries no body.
	}
}

// StreamReader reads Values from a typed byte stream, the deserializer
// half of §4.I.
type StreamReader struct {
	r   io.Reader
	err error
}

// NewStreamReader wraps r.
func NewStreamReader(r io.Reader) *StreamReader { return &StreamReader{r: r} }

// Err returns the first error encountered by any Read* call.
func (s *StreamReader) Err() error { return s.err }

func (s *StreamReader) readRaw(n int) []byte {
	if s.err != nil {
		return nil
	}
	b := make([]byte, n)
	_, s.err = io.ReadFull(s.r, b)
	return b
}

// ReadParam reads one parameter-format value: a Kind byte then the
// value body.
func (s *StreamReader) ReadParam() (Value, error) {
	kindByte := s.readRaw(1)
	if s.err != nil {
		return Value{}, s.err
	}
	kind := Kind(kindByte[0])
	v, err := s.readValueBody(kind)
	if err != nil {
		return Value{}, err
	}
	return v, s.err
}

func (s *StreamReader) readValueBody(kind Kind) (Value, error) {
	switch kind {
	case KindNull:
		return Null(), nil
	case KindTinyInt:
		b := s.readRaw(1)
		if s.err != nil {
			return Value{}, s.err
		}
		return FromI8(int8(b[0])), nil
	case KindSmallInt:
		b := s.readRaw(2)
		if s.err != nil {
			return Value{}, s.err
		}
		return FromI16(int16(binary.BigEndian.Uint16(b))), nil
	case KindInteger:
		b := s.readRaw(4)
		if s.err != nil {
			return Value{}, s.err
		}
		return FromI32(int32(binary.BigEndian.Uint32(b))), nil
	case KindBigInt:
		b := s.readRaw(8)
		if s.err != nil {
			return Value{}, s.err
		}
		return FromI64(int64(binary.BigEndian.Uint64(b))), nil
	case KindTimestamp:
		b := s.readRaw(8)
		if s.err != nil {
			return Value{}, s.err
		}
		return FromTimestamp(int64(binary.BigEndian.Uint64(b))), nil
	case KindDouble:
		b := s.readRaw(8)
		if s.err != nil {
			return Value{}, s.err
		}
		return FromF64(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case KindBoolean:
		b := s.readRaw(1)
		if s.err != nil {
			return Value{}, s.err
		}
		if b[0] == NullBoolean {
			return NullOf(KindBoolean), nil
		}
		return FromBool(b[0] != 0), nil
	case KindAddress:
		b := s.readRaw(8)
		if s.err != nil {
			return Value{}, s.err
		}
		return FromAddress(binary.BigEndian.Uint64(b)), nil
	case KindDecimal:
		b := s.readRaw(16)
		if s.err != nil {
			return Value{}, s.err
		}
		scaled := int128FromBE(b)
		return fromDecimalScaled(scaled)
	case KindVarchar, KindVarbinary:
		lb := s.readRaw(4)
		if s.err != nil {
			return Value{}, s.err
		}
		n := int32(binary.BigEndian.Uint32(lb))
		if n < 0 {
			return NullOf(kind), nil
		}
		data := s.readRaw(int(n))
		if s.err != nil {
			return Value{}, s.err
		}
		if kind == KindVarchar {
			return TempString(data), nil
		}
		return TempBinary(data), nil
	case KindArray:
		ekb := s.readRaw(1)
		if s.err != nil {
			return Value{}, s.err
		}
		cb := s.readRaw(2)
		if s.err != nil {
			return Value{}, s.err
		}
		elemKind := Kind(ekb[0])
		count := int(binary.BigEndian.Uint16(cb))
		v := ArrayOf(count, elemKind)
		elems := make([]Value, count)
		for i := 0; i < count; i++ {
			e, err := s.readValueBody(elemKind)
			if err != nil {
				return Value{}, err
			}
			elems[i] = e
		}
		if err := v.SetArrayElements(elems); err != nil {
			return Value{}, err
		}
		return v, nil
	default:
		return Value{}, NewUnsupportedOperation("ReadParam: unknown kind byte")
	}
}
