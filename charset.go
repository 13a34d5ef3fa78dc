package scalarval

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// charsetDecoders maps the connection-charset names carried over from
// xsqlvar.go's parseString switch to their golang.org/x/text decoders.
// Unlike that switch (which silently aliased ISO8859_4 to the 8859-5
// decoder), each entry here maps to its own correct table.
var charsetDecoders = map[string]encoding.Encoding{
	"ISO8859_1": charmap.ISO8859_1,
	"ISO8859_2": charmap.ISO8859_2,
	"ISO8859_3": charmap.ISO8859_3,
	"ISO8859_4": charmap.ISO8859_4,
	"ISO8859_5": charmap.ISO8859_5,
	"ISO8859_6": charmap.ISO8859_6,
	"ISO8859_7": charmap.ISO8859_7,
	"ISO8859_8": charmap.ISO8859_8,
	"ISO8859_9": charmap.ISO8859_9,
	"WIN1250":   charmap.Windows1250,
	"WIN1251":   charmap.Windows1251,
	"WIN1252":   charmap.Windows1252,
	"WIN1253":   charmap.Windows1253,
	"WIN1254":   charmap.Windows1254,
	"WIN1255":   charmap.Windows1255,
	"WIN1256":   charmap.Windows1256,
	"WIN1257":   charmap.Windows1257,
	"SJIS":      japanese.ShiftJIS,
	"EUCJ":      japanese.EUCJP,
	"KSC_5601":  korean.EUCKR,
	"GB_2312":   simplifiedchinese.HZGB2312,
	"GBK":       simplifiedchinese.GBK,
	"BIG5":      traditionalchinese.Big5,
}

// CastVarbinaryToVarcharCharset decodes v's Varbinary bytes using the
// named connection charset and returns the result as a Varchar Value.
// It supplements the plain Varbinary->Varchar cast (which just
// reinterprets bytes as-is) for callers that know the source bytes are
// encoded in a specific legacy charset rather than raw UTF-8.
func CastVarbinaryToVarcharCharset(v Value, charset string) (Value, error) {
	if v.Kind() != KindVarbinary {
		return Value{}, NewTypeMismatch(v.Kind(), KindVarchar)
	}
	if v.IsNull() {
		return NullOf(KindVarchar), nil
	}
	if charset == "" || charset == "UTF8" || charset == "NONE" {
		return TempString(v.AsBytes()), nil
	}
	dec, ok := charsetDecoders[charset]
	if !ok {
		return Value{}, NewUnsupportedOperation("unknown charset: " + charset)
	}
	out, err := dec.NewDecoder().Bytes(v.AsBytes())
	if err != nil {
		return Value{}, NewInvalidFormat(charset, KindVarchar, err)
	}
	return TempString(out), nil
}
