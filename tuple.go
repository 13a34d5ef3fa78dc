package scalarval

import "encoding/binary"

// InitFromTupleStorage builds a Value by reading it out of tuple storage
// at the start of buf, per §4.H / §6. For fixed-width Kinds, buf must
// have at least kind.TupleSize() bytes. For Varchar/Varbinary with
// inlined==true, buf is the object's region (length prefix, bytes, and
// padding); the returned Value borrows buf directly and must not outlive
// it (§3 Ownership). With inlined==false, buf is the 8-byte handle slot.
func InitFromTupleStorage(buf []byte, kind Kind, inlined bool) (Value, error) {
	v := Value{kind: kind, sourceInlined: inlined}

	if kind == KindArray {
		return Value{}, NewUnsupportedOperation("InitFromTupleStorage: array kind has no tuple layout")
	}

	if !kind.IsObject() {
		n := kind.TupleSize()
		copy(v.data[:n], buf[:n])
		return v, nil
	}

	if inlined {
		length, consumed := DecodeLengthPrefix(buf)
		if length < 0 {
			v.data[13] = nullByte
			return v, nil
		}
		v.bytesInline = buf
		v.cacheObjectMeta(length, byte(consumed))
		return v, nil
	}

	handle := handleByID(binary.LittleEndian.Uint64(buf[:8]))
	if handle == nil {
		v.data[13] = nullByte
		return v, nil
	}
	length, consumed := DecodeLengthPrefix(handle.Bytes())
	if length < 0 {
		v.data[13] = nullByte
		return v, nil
	}
	v.bytesHandle = handle
	v.cacheObjectMeta(length, byte(consumed))
	return v, nil
}

// SerializeToTupleStorage writes v into tuple storage at the start of
// buf, per §4.H. inlined selects the inline-object vs handle-slot
// layout; maxLen bounds the object's size (ObjectTooLarge if exceeded);
// inBytes selects whether maxLen counts bytes (true) or UTF-8 code
// points (false, counted per §4.H by the top-two-bits-not-10 rule).
// pool is used for non-inlined allocation; nil means TempPool.
func SerializeToTupleStorage(buf []byte, v Value, inlined bool, maxLen int, inBytes bool, pool Pool) error {
	if pool == nil {
		pool = TempPool
	}

	if v.Kind() == KindArray {
		return NewUnsupportedOperation("SerializeToTupleStorage: array kind has no tuple layout")
	}

	if !v.Kind().IsObject() {
		n := v.Kind().TupleSize()
		copy(buf[:n], v.data[:n])
		return nil
	}

	if v.IsNull() {
		if inlined {
			EncodeLengthPrefix(buf, -1)
			return nil
		}
		binary.LittleEndian.PutUint64(buf[:8], 0)
		return nil
	}

	payload := v.objectPayload()
	objLen, consumed := DecodeLengthPrefix(payload)
	bytes := payload[consumed : consumed+objLen]

	size := objLen
	if !inBytes {
		size = utf8LeadByteCount(bytes)
	}
	if size > maxLen {
		return NewObjectTooLarge(size, maxLen, v.Kind())
	}

	if inlined {
		prefixSize := EncodeLengthPrefix(buf, objLen)
		n := copy(buf[prefixSize:], bytes)
		for i := prefixSize + n; i < maxLen+prefixSize; i++ {
			buf[i] = 0
		}
		return nil
	}

	handle := pool.Allocate(consumed + objLen)
	hb := handle.Bytes()
	EncodeLengthPrefix(hb, objLen)
	copy(hb[consumed:], bytes)
	binary.LittleEndian.PutUint64(buf[:8], registerHandle(handle))
	return nil
}

// utf8LeadByteCount counts bytes whose top two bits are not 10 — i.e.
// UTF-8 lead bytes — per §4.H's code-point-counting rule.
func utf8LeadByteCount(b []byte) int {
	n := 0
	for _, c := range b {
		if c&0xC0 != 0x80 {
			n++
		}
	}
	return n
}
