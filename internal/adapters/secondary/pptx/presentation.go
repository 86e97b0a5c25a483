package pptx

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

// Presentation is a PresentationML document loaded from a Package
type Presentation struct {
	pkg      *Package
	partName string
	doc      *xmlDoc
	rels     *Relationships
	ct       *contentTypes
	slides   []*Slide
	layouts  []string
}

// OpenPresentation resolves the main presentation part, its slides and its layouts
func OpenPresentation(pkg *Package) (*Presentation, error) {
	ct, err := pkg.readContentTypes()
	if err != nil {
		return nil, err
	}

	rootRels, err := pkg.readRelationships("")
	if err != nil {
		return nil, err
	}
	mainRel, ok := rootRels.byType(relTypeOfficeDocument)
	if !ok {
		return nil, fmt.Errorf("%w: no office document relationship", entities.ErrNotPresentation)
	}

	partName := resolveTarget("", mainRel.Target)
	if !strings.Contains(ct.typeOf(partName), contentTypePresentation) {
		return nil, fmt.Errorf("%w: main part %s has content type %q", entities.ErrNotPresentation, partName, ct.typeOf(partName))
	}

	data, ok := pkg.Part(partName)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", entities.ErrNotPresentation, partName)
	}
	doc, err := parseDoc(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", partName, err)
	}

	rels, err := pkg.readRelationships(partName)
	if err != nil {
		return nil, err
	}

	p := &Presentation{pkg: pkg, partName: partName, doc: doc, rels: rels, ct: ct}

	if err := p.loadSlides(); err != nil {
		return nil, err
	}
	if err := p.loadLayouts(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Presentation) loadSlides() error {
	list := p.doc.root().child(p.doc.p("sldIdLst"))
	if list == nil {
		return nil
	}

	for _, sldID := range list.childrenNamed(p.doc.p("sldId")) {
		rID, _ := sldID.attr(p.doc.r("id"))
		rel, ok := p.rels.byID(rID)
		if !ok {
			return fmt.Errorf("slide relationship %q not found", rID)
		}

		slide, err := loadSlide(p.pkg, resolveTarget(p.partName, rel.Target))
		if err != nil {
			return err
		}
		p.slides = append(p.slides, slide)
	}
	return nil
}

// loadLayouts collects the layouts of the first slide master, in master order
func (p *Presentation) loadLayouts() error {
	masterID := p.doc.path(p.doc.root(), p.doc.p("sldMasterIdLst"), p.doc.p("sldMasterId"))
	if masterID == nil {
		return nil
	}

	rID, _ := masterID.attr(p.doc.r("id"))
	rel, ok := p.rels.byID(rID)
	if !ok {
		return fmt.Errorf("slide master relationship %q not found", rID)
	}
	masterPart := resolveTarget(p.partName, rel.Target)

	data, ok := p.pkg.Part(masterPart)
	if !ok {
		return fmt.Errorf("missing slide master %s", masterPart)
	}
	master, err := parseDoc(data)
	if err != nil {
		return fmt.Errorf("reading %s: %w", masterPart, err)
	}
	masterRels, err := p.pkg.readRelationships(masterPart)
	if err != nil {
		return err
	}

	list := master.root().child(master.p("sldLayoutIdLst"))
	if list == nil {
		return nil
	}
	for _, layoutID := range list.childrenNamed(master.p("sldLayoutId")) {
		rID, _ := layoutID.attr(master.r("id"))
		rel, ok := masterRels.byID(rID)
		if !ok {
			return fmt.Errorf("slide layout relationship %q not found", rID)
		}
		p.layouts = append(p.layouts, resolveTarget(masterPart, rel.Target))
	}
	return nil
}

// Slides returns the slides in presentation order
func (p *Presentation) Slides() []ports.DeckSlide {
	out := make([]ports.DeckSlide, 0, len(p.slides))
	for _, s := range p.slides {
		out = append(out, s)
	}
	return out
}

// LayoutCount returns the number of layouts of the first slide master
func (p *Presentation) LayoutCount() int {
	return len(p.layouts)
}

// AddSlide appends a slide whose placeholders are cloned from the layout at layoutIndex
func (p *Presentation) AddSlide(layoutIndex int) (ports.DeckSlide, error) {
	if layoutIndex < 0 || layoutIndex >= len(p.layouts) {
		return nil, fmt.Errorf("%w: index %d out of range (0-%d)", entities.ErrLayoutNotFound, layoutIndex, len(p.layouts)-1)
	}
	layoutPart := p.layouts[layoutIndex]

	data, ok := p.pkg.Part(layoutPart)
	if !ok {
		return nil, fmt.Errorf("missing slide layout %s", layoutPart)
	}
	layout, err := parseDoc(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", layoutPart, err)
	}

	partName := p.nextSlidePartName()
	slideDoc, err := parseDoc(newSlideXML(layout))
	if err != nil {
		return nil, fmt.Errorf("building slide from %s: %w", layoutPart, err)
	}

	slideRels := &Relationships{}
	slideRels.add(relTypeSlideLayout, relativeTarget(partName, layoutPart))
	if err := p.pkg.writeRelationships(partName, slideRels); err != nil {
		return nil, err
	}

	rID := p.rels.add(relTypeSlide, relativeTarget(p.partName, partName))
	p.appendSlideID(rID)
	p.ct.override(partName, contentTypeSlide)

	slide := &Slide{partName: partName, doc: slideDoc}
	p.slides = append(p.slides, slide)
	return slide, nil
}

func (p *Presentation) nextSlidePartName() string {
	for n := len(p.slides) + 1; ; n++ {
		name := "ppt/slides/slide" + strconv.Itoa(n) + ".xml"
		if _, taken := p.pkg.Part(name); !taken && !p.hasSlidePart(name) {
			return name
		}
	}
}

func (p *Presentation) hasSlidePart(name string) bool {
	for _, s := range p.slides {
		if s.partName == name {
			return true
		}
	}
	return false
}

// appendSlideID adds a p:sldId to p:sldIdLst, creating the list after the master id lists when missing
func (p *Presentation) appendSlideID(rID string) {
	root := p.doc.root()
	list := root.child(p.doc.p("sldIdLst"))
	if list == nil {
		list = newElement(p.doc.p("sldIdLst"))
		var after *node
		for _, name := range []string{"sldMasterIdLst", "notesMasterIdLst", "handoutMasterIdLst"} {
			if n := root.child(p.doc.p(name)); n != nil {
				after = n
			}
		}
		p.insertAfter(root, list, after)
	}

	next := 256
	for _, sldID := range list.childrenNamed(p.doc.p("sldId")) {
		v, _ := sldID.attr("id")
		if n, err := strconv.Atoi(v); err == nil && n >= next {
			next = n + 1
		}
	}

	list.appendChild(newElement(p.doc.p("sldId"), "id", strconv.Itoa(next), p.doc.r("id"), rID))
}

func (p *Presentation) insertAfter(parent, child, after *node) {
	if after == nil {
		parent.prependChild(child)
		return
	}
	for i, c := range parent.children {
		if c == after {
			if i+1 < len(parent.children) {
				parent.insertBefore(child, parent.children[i+1])
			} else {
				parent.appendChild(child)
			}
			return
		}
	}
	parent.appendChild(child)
}

// flush writes every parsed part back into the package
func (p *Presentation) flush() error {
	p.pkg.SetPart(p.partName, p.doc.bytes())
	for _, s := range p.slides {
		p.pkg.SetPart(s.partName, s.doc.bytes())
	}
	if err := p.pkg.writeRelationships(p.partName, p.rels); err != nil {
		return err
	}
	return p.pkg.writeContentTypes(p.ct)
}

// Write serializes the presentation as a .pptx zip
func (p *Presentation) Write(w io.Writer) error {
	if err := p.flush(); err != nil {
		return err
	}
	return p.pkg.Write(w)
}

// Package returns the underlying package
func (p *Presentation) Package() *Package {
	return p.pkg
}

// placeholdersExcluded are layout placeholders python-style slide creation does not copy
var placeholdersExcluded = nameSet("dt", "ftr", "sldNum")

// newSlideXML renders a slide part holding an empty clone of each layout placeholder
func newSlideXML(layout *xmlDoc) []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<p:sld xmlns:a="` + nsDrawingML + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentationML + `">`)
	sb.WriteString(`<p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	sb.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	id := 2
	tree := layout.path(layout.root(), layout.p("cSld"), layout.p("spTree"))
	if tree != nil {
		for _, sp := range tree.childrenNamed(layout.p("sp")) {
			ph := layout.path(sp, layout.p("nvSpPr"), layout.p("nvPr"), layout.p("ph"))
			if ph == nil {
				continue
			}
			phType, _ := ph.attr("type")
			if placeholdersExcluded[phType] {
				continue
			}

			sb.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="` + strconv.Itoa(id) + `" name="`)
			sb.WriteString(html.EscapeString(placeholderName(phType) + " " + strconv.Itoa(id-1)))
			sb.WriteString(`"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph`)
			for _, attr := range []string{"type", "orient", "sz", "idx"} {
				if v, ok := ph.attr(attr); ok {
					sb.WriteString(` ` + attr + `="` + html.EscapeString(v) + `"`)
				}
			}
			sb.WriteString(`/></p:nvPr></p:nvSpPr><p:spPr/>`)
			sb.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody></p:sp>`)
			id++
		}
	}

	sb.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return []byte(sb.String())
}

func placeholderName(phType string) string {
	switch phType {
	case "title", "ctrTitle":
		return "Title"
	case "subTitle":
		return "Subtitle"
	case "body":
		return "Text Placeholder"
	case "", "obj":
		return "Content Placeholder"
	case "pic":
		return "Picture Placeholder"
	case "tbl":
		return "Table Placeholder"
	case "chart":
		return "Chart Placeholder"
	default:
		return "Placeholder"
	}
}
