package pptx

import (
	"fmt"
	"strconv"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

// Slide is a slide part
type Slide struct {
	partName string
	doc      *xmlDoc
}

func loadSlide(pkg *Package, partName string) (*Slide, error) {
	data, ok := pkg.Part(partName)
	if !ok {
		return nil, fmt.Errorf("missing slide %s", partName)
	}
	doc, err := parseDoc(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", partName, err)
	}
	return &Slide{partName: partName, doc: doc}, nil
}

// PartName returns the package part holding the slide
func (s *Slide) PartName() string {
	return s.partName
}

func (s *Slide) spTree() *node {
	return s.doc.path(s.doc.root(), s.doc.p("cSld"), s.doc.p("spTree"))
}

// Shapes returns the top-level p:sp elements that own a text body
func (s *Slide) Shapes() []ports.TextShape {
	tree := s.spTree()
	if tree == nil {
		return nil
	}

	title := s.titleNode()
	var shapes []ports.TextShape
	for _, sp := range tree.childrenNamed(s.doc.p("sp")) {
		if sp.child(s.doc.p("txBody")) == nil {
			continue
		}
		shapes = append(shapes, &Shape{slide: s, el: sp, title: sp == title})
	}
	return shapes
}

// Title returns the title placeholder, or nil
func (s *Slide) Title() ports.TextShape {
	el := s.titleNode()
	if el == nil || el.name != s.doc.p("sp") {
		return nil
	}
	return &Shape{slide: s, el: el, title: true}
}

// Placeholder returns the p:sp placeholder whose idx matches
func (s *Slide) Placeholder(idx int) (ports.TextShape, error) {
	for _, el := range s.placeholderNodes() {
		if placeholderIdx(s.doc, el) != idx {
			continue
		}
		if el.name != s.doc.p("sp") {
			return nil, fmt.Errorf("placeholder %d is not a text shape", idx)
		}
		return &Shape{slide: s, el: el, title: idx == 0}, nil
	}
	return nil, fmt.Errorf("%w: idx %d on %s", entities.ErrPlaceholderNotFound, idx, s.partName)
}

// titleNode returns the first placeholder with idx 0, which is where the title lives
func (s *Slide) titleNode() *node {
	for _, el := range s.placeholderNodes() {
		if placeholderIdx(s.doc, el) == 0 {
			return el
		}
	}
	return nil
}

// placeholderNodes returns the top-level shapes carrying a p:ph, in document order
func (s *Slide) placeholderNodes() []*node {
	tree := s.spTree()
	if tree == nil {
		return nil
	}

	var out []*node
	for _, el := range tree.elements() {
		if phElement(s.doc, el) != nil {
			out = append(out, el)
		}
	}
	return out
}

// nvPrParents maps shape element local names to their non-visual property wrapper
var nvPrParents = map[string]string{
	"sp":           "nvSpPr",
	"pic":          "nvPicPr",
	"graphicFrame": "nvGraphicFramePr",
	"grpSp":        "nvGrpSpPr",
	"cxnSp":        "nvCxnSpPr",
}

func phElement(doc *xmlDoc, shape *node) *node {
	wrapper, ok := nvPrParents[shape.local()]
	if !ok {
		return nil
	}
	return doc.path(shape, doc.p(wrapper), doc.p("nvPr"), doc.p("ph"))
}

// placeholderIdx returns the ph idx, which defaults to 0
func placeholderIdx(doc *xmlDoc, shape *node) int {
	ph := phElement(doc, shape)
	if ph == nil {
		return -1
	}
	v, ok := ph.attr("idx")
	if !ok {
		return 0
	}
	idx, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return idx
}
