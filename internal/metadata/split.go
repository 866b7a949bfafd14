// =============================================================================
// HFM Metadata Compare - Section Splitter
// =============================================================================
//
// A metadata file is a sequence of sections, each opened by a marker line:
//
//   !FILE_FORMAT=11.12            <- skipped
//   !VERSION=11.1.5250            <- skipped
//   !CUSTOM_ORDER=Products;Flows  <- skipped (read separately)
//   !APPLICATION_SETTINGS         -> section "APPLICATION_SETTINGS"
//   !CURRENCIES                   -> section "CURRENCIES"
//   !MEMBERS=Account              -> section "AccountM"
//   !HIERARCHIES=Account          -> section "AccountH"
//   !CONSOLIDATION_METHODS        -> section "CONSOLIDATION_METHODS"
//
// Every other line belongs to the most recently opened section.
//
// =============================================================================

package metadata

import "strings"

// sectionKeywords open a new section.
var sectionKeywords = map[string]bool{
	"APPLICATION_SETTINGS":  true,
	"CURRENCIES":            true,
	"MEMBERS":               true,
	"HIERARCHIES":           true,
	"CONSOLIDATION_METHODS": true,
}

// skippedKeywords are dropped without closing the open section.
var skippedKeywords = map[string]bool{
	"FILE_FORMAT":  true,
	"VERSION":      true,
	"CUSTOM_ORDER": true,
	"LABEL":        true,
}

// =============================================================================
// SPLIT RESULT
// =============================================================================

// Section is a named block of records sharing one schema.
type Section struct {
	// Name is the section file name, e.g. "AccountM" or "CURRENCIES".
	Name string

	// Lines holds the section's records in file order.
	Lines []string
}

// SplitResult holds the sections of one metadata file.
type SplitResult struct {
	// Sections in the order their markers first appeared.
	Sections []*Section

	// Orphans counts content lines that appeared before any section marker.
	Orphans int

	index map[string]*Section
}

// Section returns the named section, or nil.
func (r *SplitResult) Section(name string) *Section {
	return r.index[name]
}

// Has reports whether the named section exists.
func (r *SplitResult) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns the section names in order.
func (r *SplitResult) Names() []string {
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Name
	}
	return names
}

func (r *SplitResult) open(name string) *Section {
	if s, ok := r.index[name]; ok {
		return s
	}
	s := &Section{Name: name}
	r.Sections = append(r.Sections, s)
	r.index[name] = s
	return s
}

// =============================================================================
// SPLITTER
// =============================================================================

// Split separates normalized metadata content into its sections.
func Split(content string) *SplitResult {
	result := &SplitResult{index: make(map[string]*Section)}

	var current *Section
	for _, line := range splitLines(content) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		keyword, qualifier, isMarker := parseMarker(line)
		if isMarker {
			if skippedKeywords[keyword] {
				continue
			}
			if sectionKeywords[keyword] {
				current = result.open(SectionName(keyword, qualifier))
				continue
			}
		}

		if current == nil {
			result.Orphans++
			continue
		}
		current.Lines = append(current.Lines, line)
	}

	return result
}

// SectionName builds the section file name from a marker keyword and its
// optional qualifier: "MEMBERS" + "Account" gives "AccountM", a bare
// "CURRENCIES" gives "CURRENCIES".
func SectionName(keyword, qualifier string) string {
	keyword = strings.ToUpper(keyword)
	if qualifier == "" {
		return keyword
	}
	return qualifier + keyword[:1]
}

// parseMarker extracts the upper-cased keyword and trimmed qualifier from a
// "!KEYWORD[=Qualifier]" line.
func parseMarker(line string) (keyword, qualifier string, ok bool) {
	if !strings.HasPrefix(line, "!") {
		return "", "", false
	}
	head, tail, _ := strings.Cut(line[1:], "=")
	return strings.ToUpper(strings.TrimSpace(head)), strings.TrimSpace(tail), true
}

// CustomDimensions returns the custom dimension names declared on the
// "!CUSTOM_ORDER=" line, or nil when the file has none.
func CustomDimensions(content string) []string {
	for _, line := range splitLines(content) {
		keyword, qualifier, ok := parseMarker(strings.TrimSpace(line))
		if !ok || keyword != "CUSTOM_ORDER" {
			continue
		}
		if qualifier == "" {
			return []string{}
		}
		names := strings.Split(qualifier, FieldSeparator)
		for i, n := range names {
			names[i] = strings.TrimSpace(n)
		}
		return names
	}
	return nil
}
