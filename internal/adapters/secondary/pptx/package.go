package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
)

const contentTypesPart = "[Content_Types].xml"

// Part is a single file inside the package
type Part struct {
	Name string
	Data []byte
}

// Package is an Open Packaging Conventions zip held in memory.
// Part order is kept so untouched packages write back in their original layout.
type Package struct {
	parts []*Part
	index map[string]*Part
}

// NewPackage creates an empty package
func NewPackage() *Package {
	return &Package{index: make(map[string]*Part)}
}

// ReadPackage reads every part of the zip at r
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	pkg := NewPackage()
	for _, file := range zr.File {
		if strings.HasSuffix(file.Name, "/") {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", file.Name, err)
		}

		pkg.SetPart(file.Name, data)
	}

	if _, ok := pkg.Part(contentTypesPart); !ok {
		return nil, fmt.Errorf("not an OPC package: missing %s", contentTypesPart)
	}
	return pkg, nil
}

// Part returns the data of the named part
func (p *Package) Part(name string) ([]byte, bool) {
	part, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return part.Data, true
}

// SetPart adds a part or replaces its data
func (p *Package) SetPart(name string, data []byte) {
	if part, ok := p.index[name]; ok {
		part.Data = data
		return
	}
	part := &Part{Name: name, Data: data}
	p.parts = append(p.parts, part)
	p.index[name] = part
}

// PartNames returns part names in package order
func (p *Package) PartNames() []string {
	names := make([]string, 0, len(p.parts))
	for _, part := range p.parts {
		names = append(names, part.Name)
	}
	return names
}

// Write serializes the package as a zip, content types first
func (p *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	ordered := make([]*Part, 0, len(p.parts))
	if ct, ok := p.index[contentTypesPart]; ok {
		ordered = append(ordered, ct)
	}
	for _, part := range p.parts {
		if part.Name != contentTypesPart {
			ordered = append(ordered, part)
		}
	}

	for _, part := range ordered {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: part.Name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("creating part %s: %w", part.Name, err)
		}
		if _, err := fw.Write(part.Data); err != nil {
			return fmt.Errorf("writing part %s: %w", part.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip: %w", err)
	}
	return nil
}

// Bytes returns the serialized package
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Relationship represents a relationship in the package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships of one part
type Relationships struct {
	XMLName      xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Relationship []Relationship `xml:"Relationship"`
}

const (
	relTypeOfficeDocument = "/officeDocument"
	relTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
)

// relsPartName converts a part name to its relationships part name,
// e.g. "ppt/presentation.xml" -> "ppt/_rels/presentation.xml.rels"
func relsPartName(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// readRelationships parses the relationships of partName. A missing rels part is not an error.
func (p *Package) readRelationships(partName string) (*Relationships, error) {
	data, ok := p.Part(relsPartName(partName))
	if !ok {
		return &Relationships{}, nil
	}

	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships of %s: %w", partName, err)
	}
	return &rels, nil
}

func (p *Package) writeRelationships(partName string, rels *Relationships) error {
	data, err := xml.Marshal(rels)
	if err != nil {
		return fmt.Errorf("encoding relationships of %s: %w", partName, err)
	}
	p.SetPart(relsPartName(partName), append([]byte(xml.Header), data...))
	return nil
}

// byID returns the relationship with the given id
func (r *Relationships) byID(id string) (Relationship, bool) {
	for _, rel := range r.Relationship {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relationship{}, false
}

// byType returns the first relationship whose type ends with suffix
func (r *Relationships) byType(suffix string) (Relationship, bool) {
	for _, rel := range r.Relationship {
		if strings.HasSuffix(rel.Type, suffix) {
			return rel, true
		}
	}
	return Relationship{}, false
}

// add appends a relationship with the next free rIdN and returns its id
func (r *Relationships) add(relType, target string) string {
	next := 1
	for _, rel := range r.Relationship {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n >= next {
			next = n + 1
		}
	}
	id := "rId" + strconv.Itoa(next)
	r.Relationship = append(r.Relationship, Relationship{ID: id, Type: relType, Target: target})
	return id
}

// resolveTarget turns a relationship target into a part name
func resolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(sourcePart), target)
}

// relativeTarget expresses partName relative to the directory of sourcePart
func relativeTarget(sourcePart, partName string) string {
	from := strings.Split(path.Dir(sourcePart), "/")
	to := strings.Split(partName, "/")

	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}

	var parts []string
	for j := i; j < len(from); j++ {
		if from[j] != "." && from[j] != "" {
			parts = append(parts, "..")
		}
	}
	parts = append(parts, to[i:]...)
	return strings.Join(parts, "/")
}

type contentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypes struct {
	XMLName   xml.Name              `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []contentTypeDefault  `xml:"Default"`
	Overrides []contentTypeOverride `xml:"Override"`
}

const (
	contentTypeSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	contentTypePresentation = "presentationml"
)

func (p *Package) readContentTypes() (*contentTypes, error) {
	data, ok := p.Part(contentTypesPart)
	if !ok {
		return nil, fmt.Errorf("missing %s", contentTypesPart)
	}

	var ct contentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("failed to parse content types: %w", err)
	}
	return &ct, nil
}

func (p *Package) writeContentTypes(ct *contentTypes) error {
	sort.SliceStable(ct.Overrides, func(i, j int) bool {
		return ct.Overrides[i].PartName < ct.Overrides[j].PartName
	})
	data, err := xml.Marshal(ct)
	if err != nil {
		return fmt.Errorf("encoding content types: %w", err)
	}
	p.SetPart(contentTypesPart, append([]byte(xml.Header), data...))
	return nil
}

// typeOf returns the content type of a part name
func (ct *contentTypes) typeOf(partName string) string {
	for _, o := range ct.Overrides {
		if strings.TrimPrefix(o.PartName, "/") == partName {
			return o.ContentType
		}
	}
	ext := strings.TrimPrefix(path.Ext(partName), ".")
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType
		}
	}
	return ""
}

func (ct *contentTypes) override(partName, contentType string) {
	name := "/" + partName
	for i, o := range ct.Overrides {
		if o.PartName == name {
			ct.Overrides[i].ContentType = contentType
			return
		}
	}
	ct.Overrides = append(ct.Overrides, contentTypeOverride{PartName: name, ContentType: contentType})
}
