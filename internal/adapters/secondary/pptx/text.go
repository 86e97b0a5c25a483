package pptx

import (
	"strconv"
	"strings"

	"github.com/fredcamaral/slidefmt/internal/domain/entities"
	"github.com/fredcamaral/slidefmt/internal/domain/ports"
)

// Shape is a p:sp with a text body
type Shape struct {
	slide *Slide
	el    *node
	title bool
}

// Name returns the cNvPr name
func (s *Shape) Name() string {
	cNvPr := s.slide.doc.path(s.el, s.slide.doc.p("nvSpPr"), s.slide.doc.p("cNvPr"))
	if cNvPr == nil {
		return ""
	}
	name, _ := cNvPr.attr("name")
	return name
}

// IsTitle reports whether this is the slide's title placeholder
func (s *Shape) IsTitle() bool {
	return s.title
}

func (s *Shape) txBody() *node {
	doc := s.slide.doc
	body := s.el.child(doc.p("txBody"))
	if body == nil {
		body = newElement(doc.p("txBody"))
		body.appendChild(newElement(doc.a("bodyPr")))
		body.appendChild(newElement(doc.a("lstStyle")))
		body.appendChild(newElement(doc.a("p")))
		s.el.appendChild(body)
	}
	return body
}

// Paragraphs returns the a:p elements of the text body
func (s *Shape) Paragraphs() []ports.TextParagraph {
	var out []ports.TextParagraph
	for _, p := range s.txBody().childrenNamed(s.slide.doc.a("p")) {
		out = append(out, &Paragraph{doc: s.slide.doc, el: p})
	}
	return out
}

// Text returns the paragraph texts joined with "\n"
func (s *Shape) Text() string {
	paragraphs := s.Paragraphs()
	texts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		texts = append(texts, p.(*Paragraph).Text())
	}
	return strings.Join(texts, "\n")
}

// SetText replaces the text. The first paragraph keeps its properties;
// every other paragraph is removed before the new ones are added.
func (s *Shape) SetText(text string) {
	doc := s.slide.doc
	body := s.txBody()

	paragraphs := body.childrenNamed(doc.a("p"))
	var first *node
	if len(paragraphs) == 0 {
		first = newElement(doc.a("p"))
		body.appendChild(first)
	} else {
		first = paragraphs[0]
		for _, extra := range paragraphs[1:] {
			body.removeChild(extra)
		}
	}
	(&Paragraph{doc: doc, el: first}).clearContent()

	last := first
	for i, line := range strings.Split(text, "\n") {
		p := first
		if i > 0 {
			p = newElement(doc.a("p"))
			insertAfterNode(body, p, last)
			last = p
		}
		(&Paragraph{doc: doc, el: p}).setText(line)
	}
}

func insertAfterNode(parent, child, after *node) {
	for i, c := range parent.children {
		if c == after && i+1 < len(parent.children) {
			parent.insertBefore(child, parent.children[i+1])
			return
		}
	}
	parent.appendChild(child)
}

// Paragraph is an a:p element
type Paragraph struct {
	doc *xmlDoc
	el  *node
}

// Text returns run, field and line-break text ("\v" for a:br)
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, c := range p.el.elements() {
		switch c.local() {
		case "r", "fld":
			if t := c.child(p.doc.a("t")); t != nil {
				sb.WriteString(t.text())
			}
		case "br":
			sb.WriteString("\v")
		}
	}
	return sb.String()
}

func (p *Paragraph) clearContent() {
	kept := p.el.children[:0]
	for _, c := range p.el.children {
		if c.kind == elementNode && (c.name == p.doc.a("pPr") || c.name == p.doc.a("endParaRPr")) {
			kept = append(kept, c)
		}
	}
	p.el.children = kept
}

// setText appends runs for line, splitting on "\v" into line breaks
func (p *Paragraph) setText(line string) {
	end := p.el.child(p.doc.a("endParaRPr"))
	for i, segment := range strings.Split(line, "\v") {
		if i > 0 {
			p.el.insertBefore(newElement(p.doc.a("br")), end)
		}
		if segment == "" {
			continue
		}
		t := newElement(p.doc.a("t"))
		t.appendChild(newText(segment))
		r := newElement(p.doc.a("r"))
		r.appendChild(t)
		p.el.insertBefore(r, end)
	}
}

// Alignment returns the explicit algn, or "" when inherited
func (p *Paragraph) Alignment() entities.Alignment {
	pPr := p.el.child(p.doc.a("pPr"))
	if pPr == nil {
		return ""
	}
	v, ok := pPr.attr("algn")
	if !ok {
		return ""
	}
	a, err := entities.ParseAlignment(v)
	if err != nil {
		return ""
	}
	return a
}

// SetAlignment sets a:pPr algn, adding a:pPr when missing
func (p *Paragraph) SetAlignment(a entities.Alignment) {
	pPr := p.el.child(p.doc.a("pPr"))
	if pPr == nil {
		pPr = newElement(p.doc.a("pPr"))
		p.el.prependChild(pPr)
	}
	pPr.setAttr("algn", a.OOXML())
}

// Runs returns the a:r elements
func (p *Paragraph) Runs() []ports.TextRun {
	var out []ports.TextRun
	for _, r := range p.el.childrenNamed(p.doc.a("r")) {
		out = append(out, &Run{doc: p.doc, el: r})
	}
	return out
}

// Run is an a:r element
type Run struct {
	doc *xmlDoc
	el  *node
}

// Text returns the a:t text
func (r *Run) Text() string {
	t := r.el.child(r.doc.a("t"))
	if t == nil {
		return ""
	}
	return t.text()
}

// Font returns the explicit character formatting of the run
func (r *Run) Font() ports.RunFont {
	var f ports.RunFont
	rPr := r.el.child(r.doc.a("rPr"))
	if rPr == nil {
		return f
	}

	if latin := rPr.child(r.doc.a("latin")); latin != nil {
		f.Family, _ = latin.attr("typeface")
	}
	if v, ok := rPr.attr("sz"); ok {
		if sz, err := strconv.Atoi(v); err == nil {
			f.Size = entities.PointsFromCentipoints(sz)
		}
	}
	if clr := r.doc.path(rPr, r.doc.a("solidFill"), r.doc.a("srgbClr")); clr != nil {
		if v, ok := clr.attr("val"); ok {
			if c, err := entities.ParseRGBColor(v); err == nil {
				f.Color = c
				f.HasColor = true
			}
		}
	}
	return f
}

func (r *Run) rPr() *node {
	rPr := r.el.child(r.doc.a("rPr"))
	if rPr == nil {
		rPr = newElement(r.doc.a("rPr"))
		r.el.prependChild(rPr)
	}
	return rPr
}

// Elements that follow a fill choice and a:latin inside a:rPr, in schema order
var (
	afterFill  = nameSet("effectLst", "effectDag", "highlight", "uLnTx", "uLn", "uFillTx", "uFill", "latin", "ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst")
	afterLatin = nameSet("ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst")
	fillChoice = nameSet("noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill")
)

// SetFontFamily sets the a:latin typeface
func (r *Run) SetFontFamily(family string) {
	rPr := r.rPr()
	latin := rPr.child(r.doc.a("latin"))
	if latin == nil {
		latin = newElement(r.doc.a("latin"))
		rPr.insertBefore(latin, rPr.firstChildIn(afterLatin))
	}
	latin.setAttr("typeface", family)
}

// SetSize sets the sz attribute
func (r *Run) SetSize(size entities.Points) {
	r.rPr().setAttr("sz", strconv.Itoa(size.Centipoints()))
}

// SetColor replaces any fill with a solid sRGB fill
func (r *Run) SetColor(color entities.RGBColor) {
	rPr := r.rPr()
	for {
		existing := rPr.firstChildIn(fillChoice)
		if existing == nil {
			break
		}
		rPr.removeChild(existing)
	}

	fill := newElement(r.doc.a("solidFill"))
	fill.appendChild(newElement(r.doc.a("srgbClr"), "val", color.Hex()))
	rPr.insertBefore(fill, rPr.firstChildIn(afterFill))
}
