package organizer

import "photo-sorter/internal/yearresolver"

// ImageEntry is a direct child of the folder whose content sniffs as an image.
type ImageEntry struct {
	Path string
	Name string
}

// Plan groups images by year. Years keep the order in which they were first
// populated and images keep directory traversal order within a year.
type Plan struct {
	years  []yearresolver.YearKey
	groups map[yearresolver.YearKey][]ImageEntry
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{groups: make(map[yearresolver.YearKey][]ImageEntry)}
}

// Add appends img to year's group.
func (p *Plan) Add(year yearresolver.YearKey, img ImageEntry) {
	if _, ok := p.groups[year]; !ok {
		p.years = append(p.years, year)
	}
	p.groups[year] = append(p.groups[year], img)
}

// Years returns the planned years in first-populated order.
func (p *Plan) Years() []yearresolver.YearKey {
	out := make([]yearresolver.YearKey, len(p.years))
	copy(out, p.years)
	return out
}

// Images returns the images planned for year.
func (p *Plan) Images(year yearresolver.YearKey) []ImageEntry {
	return p.groups[year]
}

// Len counts every planned image.
func (p *Plan) Len() int {
	n := 0
	for _, imgs := range p.groups {
		n += len(imgs)
	}
	return n
}

// Empty reports whether no images were planned.
func (p *Plan) Empty() bool {
	return len(p.years) == 0
}
