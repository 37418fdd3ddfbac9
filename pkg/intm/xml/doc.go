// Package xml provides the tag event layer used by the intermediate markup
// converter.
//
// A WordprocessingML document part (word/document.xml inside a .docx package)
// is consumed as a lazy, forward-only sequence of open/close tag events. This
// package owns everything between the raw bytes and the conversion engine:
//
//   - namespace.go: the prefix↔URI table and the Normalize/Shorten helpers
//   - tags.go: the enumerated Tag discriminant each element name resolves to
//   - events.go: TagEvent, the EventSource contract and its encoding/xml backed
//     implementation
//
// # Key Concepts
//
// TagEvent: one start or end of an element. End events carry the character
// data found directly inside the element before its first child, which is how
// the text of a w:t run reaches the engine.
//
// Tag: element names are resolved to a Tag once, when the event is produced,
// so the engine never compares strings per event.
//
// # XML Namespaces
//
// Only the main WordprocessingML namespace is registered:
//   - w: http://schemas.openxmlformats.org/wordprocessingml/2006/main
//
// Elements from any other namespace resolve to TagUnknown and are ignored by
// the engine.
package xml
