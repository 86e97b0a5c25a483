package entities

import "fmt"

// RestyleReport counts what a restyle pass touched
type RestyleReport struct {
	Slides     int `json:"slides"`
	Shapes     int `json:"shapes"`
	Paragraphs int `json:"paragraphs"`
	Runs       int `json:"runs"`
}

// Add accumulates another report into r
func (r *RestyleReport) Add(other RestyleReport) {
	r.Slides += other.Slides
	r.Shapes += other.Shapes
	r.Paragraphs += other.Paragraphs
	r.Runs += other.Runs
}

// String returns a one-line summary for logs
func (r RestyleReport) String() string {
	return fmt.Sprintf("%d slides, %d shapes, %d paragraphs, %d runs", r.Slides, r.Shapes, r.Paragraphs, r.Runs)
}
