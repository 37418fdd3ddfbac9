package xml

import (
	"sort"
	"strings"
)

// WordprocessingML is the main WordprocessingML namespace URI.
const WordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// namespaces maps registered prefixes to their URIs. Read-only after init.
var namespaces = map[string]string{
	"w": WordprocessingML,
}

// prefixes is the reverse of namespaces.
var prefixes = func() map[string]string {
	m := make(map[string]string, len(namespaces))
	for prefix, uri := range namespaces {
		m[uri] = prefix
	}
	return m
}()

// Normalize expands a prefixed tag ("w:p") to its fully-qualified form
// ("{uri}p"). Tags that are already fully qualified, unprefixed, or use an
// unregistered prefix are returned unchanged.
func Normalize(tag string) string {
	if strings.HasPrefix(tag, "{") {
		return tag
	}
	prefix, local, ok := strings.Cut(tag, ":")
	if !ok {
		return tag
	}
	uri, ok := namespaces[prefix]
	if !ok {
		return tag
	}
	return "{" + uri + "}" + local
}

// Shorten maps a fully-qualified tag back to its prefixed form. A URI that is
// not registered yields ":local", which Normalize cannot reverse. Tags without
// a namespace are returned unchanged.
func Shorten(tag string) string {
	uri, local, ok := splitQualified(tag)
	if !ok {
		return tag
	}
	if prefix, ok := prefixes[uri]; ok {
		return prefix + ":" + local
	}
	return ":" + local
}

// Qualify builds the fully-qualified form of a namespace/local pair as
// produced by encoding/xml. An empty namespace yields the bare local name.
func Qualify(space, local string) string {
	if space == "" {
		return local
	}
	return "{" + space + "}" + local
}

// Prefixes returns the registered prefixes in sorted order.
func Prefixes() []string {
	out := make([]string, 0, len(namespaces))
	for prefix := range namespaces {
		out = append(out, prefix)
	}
	sort.Strings(out)
	return out
}

// LookupPrefix returns the URI registered for prefix.
func LookupPrefix(prefix string) (string, bool) {
	uri, ok := namespaces[prefix]
	return uri, ok
}

func splitQualified(tag string) (uri, local string, ok bool) {
	if !strings.HasPrefix(tag, "{") {
		return "", "", false
	}
	end := strings.IndexByte(tag, '}')
	if end < 0 {
		return "", "", false
	}
	return tag[1:end], tag[end+1:], true
}
