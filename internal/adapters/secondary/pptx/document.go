package pptx

const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

var defaultPrefixes = map[string]string{
	nsPresentationML: "p",
	nsDrawingML:      "a",
	nsRelationships:  "r",
}

// xmlDoc is a parsed XML part together with the prefixes its root declares
type xmlDoc struct {
	tree     *node
	prefixes map[string]string
}

func parseDoc(data []byte) (*xmlDoc, error) {
	tree, err := parseNodes(data)
	if err != nil {
		return nil, err
	}

	d := &xmlDoc{tree: tree, prefixes: make(map[string]string)}
	for _, a := range tree.root().attrs {
		switch {
		case a.Name.Space == "xmlns":
			d.prefixes[a.Value] = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			d.prefixes[a.Value] = ""
		}
	}
	return d, nil
}

func (d *xmlDoc) root() *node {
	return d.tree.root()
}

// q returns the qualified name of local in namespace ns as this document spells it
func (d *xmlDoc) q(ns, local string) string {
	prefix, ok := d.prefixes[ns]
	if !ok {
		prefix = defaultPrefixes[ns]
	}
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func (d *xmlDoc) p(local string) string { return d.q(nsPresentationML, local) }
func (d *xmlDoc) a(local string) string { return d.q(nsDrawingML, local) }
func (d *xmlDoc) r(local string) string { return d.q(nsRelationships, local) }

// path walks element children by qualified name, returning nil when any step is missing
func (d *xmlDoc) path(from *node, names ...string) *node {
	n := from
	for _, name := range names {
		if n == nil {
			return nil
		}
		n = n.child(name)
	}
	return n
}

func (d *xmlDoc) bytes() []byte {
	return d.tree.bytes()
}
