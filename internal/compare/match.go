package compare

import "github.com/ginjaninja78/hfm-metadata-compare/internal/metadata"

// Pairing is the outcome of matching the sections of two split files.
type Pairing struct {
	// Pairs lists the section names present in both files, in file 1 order.
	Pairs []string

	// OnlyIn1 lists sections of file 1 that file 2 lacks.
	OnlyIn1 []string

	// OnlyIn2 lists sections of file 2 that file 1 lacks.
	OnlyIn2 []string
}

// MatchSections pairs sections by name. Each name is scheduled at most once.
func MatchSections(a, b *metadata.SplitResult) Pairing {
	var p Pairing
	seen := make(map[string]bool, len(a.Sections))

	for _, s := range a.Sections {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		if b.Has(s.Name) {
			p.Pairs = append(p.Pairs, s.Name)
		} else {
			p.OnlyIn1 = append(p.OnlyIn1, s.Name)
		}
	}
	for _, s := range b.Sections {
		if !a.Has(s.Name) {
			p.OnlyIn2 = append(p.OnlyIn2, s.Name)
		}
	}
	return p
}
