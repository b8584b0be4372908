package browser

// SelectorKind tells how [Selector.Value] is interpreted.
type SelectorKind int

const (
	// KindXPath is an XPath 1.0 expression.
	KindXPath SelectorKind = iota
	// KindCSS is a CSS selector.
	KindCSS
)

// Selector locates one element of a page.
type Selector struct {
	// Name is a short label used in logs and errors.
	Name  string
	Kind  SelectorKind
	Value string
}

// XPath returns an XPath selector.
func XPath(name, expr string) Selector {
	return Selector{Name: name, Kind: KindXPath, Value: expr}
}

// CSS returns a CSS selector.
func CSS(name, query string) Selector {
	return Selector{Name: name, Kind: KindCSS, Value: query}
}

func (s Selector) String() string {
	return s.Name
}
