package xml

// Tag is the pre-resolved discriminant of a WordprocessingML element.
type Tag int

const (
	TagUnknown Tag = iota
	TagText
	TagParagraph
	TagParagraphStyle
	TagTable
	TagRow
	TagCell
	TagGridSpan
	TagTab
	TagBreak
	TagCarriageReturn
)

var tagLocals = map[string]Tag{
	"t":        TagText,
	"p":        TagParagraph,
	"pStyle":   TagParagraphStyle,
	"tbl":      TagTable,
	"tr":       TagRow,
	"tc":       TagCell,
	"gridSpan": TagGridSpan,
	"tab":      TagTab,
	"br":       TagBreak,
	"cr":       TagCarriageReturn,
}

var tagNames = func() map[Tag]string {
	m := make(map[Tag]string, len(tagLocals))
	for local, tag := range tagLocals {
		m[tag] = local
	}
	return m
}()

// Resolve maps an encoding/xml style name (namespace URI + local part) to a
// Tag. Only elements in the WordprocessingML namespace resolve to a known tag.
func Resolve(space, local string) Tag {
	if space != WordprocessingML {
		return TagUnknown
	}
	return tagLocals[local]
}

// ResolveName resolves a prefixed ("w:tbl") or fully-qualified
// ("{uri}tbl") tag name.
func ResolveName(name string) Tag {
	uri, local, ok := splitQualified(Normalize(name))
	if !ok {
		return TagUnknown
	}
	return Resolve(uri, local)
}

// Local returns the element's local name, or "" for TagUnknown.
func (t Tag) Local() string {
	return tagNames[t]
}

// Qualified returns the fully-qualified element name.
func (t Tag) Qualified() string {
	if t == TagUnknown {
		return ""
	}
	return Qualify(WordprocessingML, t.Local())
}

// String returns the prefixed element name, e.g. "w:tbl".
func (t Tag) String() string {
	if t == TagUnknown {
		return "unknown"
	}
	return Shorten(t.Qualified())
}
