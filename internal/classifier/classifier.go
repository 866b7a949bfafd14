// =============================================================================
// HFM Metadata Compare - Record Classifier
// =============================================================================
//
// The classifier turns the lines unique to each side of a section into report
// rows. Each line is classified by its number of fields and matched against
// the other side's unique lines:
//
//   | Fields | Record      | Match key                          |
//   |--------|-------------|------------------------------------|
//   | 1      | key=value   | key (case-sensitive)               |
//   | 2      | list entry  | whole line (case-insensitive)      |
//   | 3      | hierarchy   | parent;child (case-sensitive)      |
//   | N > 3  | member      | label (case-insensitive) + N       |
//
// DIRECTIONS:
//   Forward (file 1 -> file 2) reports value changes and missing records.
//   Reverse (file 2 -> file 1) only reports missing records, so a changed
//   value is never reported twice.
//
// SILENT RULES FOR MEMBER RECORDS:
//   - DefaultParent "#root" and "" are equivalent
//   - Descriptions are never compared
//
// =============================================================================

package classifier

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/metadata"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/schema"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/types"
)

// Property labels of changed rows that are not schema properties.
const (
	ValueProperty      = "Value"
	AggrWeightProperty = "aggrweight"
)

// rootParent is the default parent value equivalent to an empty one.
const rootParent = "#root"

// =============================================================================
// RECORDS
// =============================================================================

// record is one parsed unique line.
type record struct {
	line   string
	fields []string
}

// parse keeps the raw fields; a record's field count is part of its
// identity.
func parse(line string) record {
	return record{line: line, fields: metadata.SplitFields(line)}
}

// settingKV splits a "key=value" record. A record without "=" has an empty value.
func settingKV(r record) (string, string) {
	k, v, _ := strings.Cut(r.fields[0], "=")
	return k, v
}

func hierarchyKey(r record) string {
	return r.fields[0] + metadata.FieldSeparator + r.fields[1]
}

func memberKey(r record) string {
	return strings.ToUpper(r.fields[0]) + "#" + strconv.Itoa(len(r.fields))
}

// =============================================================================
// INDEX
// =============================================================================

// index groups one side's unique records by match key. It is built once per
// section pair so each lookup is a map access instead of a rescan.
type index struct {
	settings  map[string][]record
	lists     map[string]bool
	hierarchy map[string][]record
	members   map[string][]record
}

func buildIndex(records []record) *index {
	idx := &index{
		settings:  make(map[string][]record),
		lists:     make(map[string]bool),
		hierarchy: make(map[string][]record),
		members:   make(map[string][]record),
	}
	for _, r := range records {
		switch n := len(r.fields); {
		case n == 1:
			k, _ := settingKV(r)
			idx.settings[k] = append(idx.settings[k], r)
		case n == 2:
			idx.lists[strings.ToUpper(r.line)] = true
		case n == 3:
			k := hierarchyKey(r)
			idx.hierarchy[k] = append(idx.hierarchy[k], r)
		default:
			k := memberKey(r)
			idx.members[k] = append(idx.members[k], r)
		}
	}
	return idx
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classify compares the unique lines of one section pair and returns the
// report rows in discovery order: all file 1 rows first, then file 2 rows.
//
// PARAMETERS:
//   - info: The identity of the section being compared.
//   - sch: The property schema of the section, or nil for generic sections.
//   - only1: Lines found only in file 1.
//   - only2: Lines found only in file 2.
func Classify(info schema.SectionInfo, sch *schema.Schema, only1, only2 []string) []types.DiffRow {
	recs1 := parseAll(only1)
	recs2 := parseAll(only2)

	c := &classifier{info: info, schema: sch}
	c.forward(recs1, buildIndex(recs2))
	c.reverse(recs2, buildIndex(recs1))
	return c.rows
}

func parseAll(lines []string) []record {
	out := make([]record, len(lines))
	for i, l := range lines {
		out[i] = parse(l)
	}
	return out
}

type classifier struct {
	info   schema.SectionInfo
	schema *schema.Schema
	rows   []types.DiffRow
}

func (c *classifier) emit(row types.DiffRow) {
	row.Dimension = c.info.Dimension
	c.rows = append(c.rows, row)
}

func (c *classifier) missing(kind types.RowKind, member string) {
	c.emit(types.DiffRow{Kind: kind, Member: member, Property: c.info.Kind})
}

// forward walks file 1's records and reports changes and records missing
// from file 2.
func (c *classifier) forward(recs []record, other *index) {
	for _, r := range recs {
		switch n := len(r.fields); {
		case n == 1:
			key, value := settingKV(r)
			cands, ok := other.settings[key]
			if !ok {
				c.missing(types.RowMissingInFile2, r.line)
				continue
			}
			for _, cand := range cands {
				_, otherValue := settingKV(cand)
				if value != otherValue {
					c.emit(types.DiffRow{
						Kind:       types.RowChanged,
						Member:     key,
						Property:   ValueProperty,
						File1Value: value,
						File2Value: otherValue,
					})
					break
				}
			}

		case n == 2:
			if !other.lists[strings.ToUpper(r.line)] {
				c.missing(types.RowMissingInFile2, r.line)
			}

		case n == 3:
			key := hierarchyKey(r)
			cands, ok := other.hierarchy[key]
			if !ok {
				c.missing(types.RowMissingInFile2, r.line)
				continue
			}
			for _, cand := range cands {
				if r.fields[2] != cand.fields[2] {
					c.emit(types.DiffRow{
						Kind:       types.RowChanged,
						Member:     key,
						Property:   AggrWeightProperty,
						File1Value: r.fields[2],
						File2Value: cand.fields[2],
					})
				}
			}

		default:
			cands, ok := other.members[memberKey(r)]
			if !ok {
				c.missing(types.RowMissingInFile2, strings.TrimSpace(r.fields[0]))
				continue
			}
			for _, cand := range cands {
				c.compareMember(r, cand)
			}
		}
	}
}

// reverse walks file 2's records and reports only those missing from file 1.
func (c *classifier) reverse(recs []record, other *index) {
	for _, r := range recs {
		var found bool
		member := r.line
		switch n := len(r.fields); {
		case n == 1:
			key, _ := settingKV(r)
			_, found = other.settings[key]
		case n == 2:
			found = other.lists[strings.ToUpper(r.line)]
		case n == 3:
			_, found = other.hierarchy[hierarchyKey(r)]
		default:
			_, found = other.members[memberKey(r)]
			member = strings.TrimSpace(r.fields[0])
		}
		if !found {
			c.missing(types.RowMissingInFile1, member)
		}
	}
}

// compareMember reports every differing property of two member records with
// the same label and field count.
func (c *classifier) compareMember(r1, r2 record) {
	// Both records carry the same number of description fields, so folding
	// keeps them aligned.
	fields1 := c.schema.FoldDescriptions(r1.fields)
	fields2 := c.schema.FoldDescriptions(r2.fields)
	n := len(fields1)

	// A schema that does not fit the record cannot place the roles; fall
	// back to positional roles and to the names that do not move.
	layout := c.schema
	if layout.Len() != n {
		layout = nil
	}
	defaultParent := layout.DefaultParentIndex(n)
	descriptions := layout.DescriptionsIndex(n)

	for i := 0; i < n; i++ {
		f1, f2 := fields1[i], fields2[i]
		if strings.EqualFold(f1, f2) || i == descriptions {
			continue
		}

		v1, v2 := propertyValue(f1), propertyValue(f2)
		if i == defaultParent && isRoot(v1) && isRoot(v2) {
			continue
		}

		property := c.schema.FallbackName(i, n)
		if layout != nil {
			property = layout.PropertyName(i)
		}
		c.emit(types.DiffRow{
			Kind:       types.RowChanged,
			Member:     strings.TrimSpace(fields1[0]),
			Property:   property,
			File1Value: v1,
			File2Value: v2,
		})
	}
}

// propertyValue strips the "Property=" prefix some fields carry
// ("DefaultParent=Income").
func propertyValue(field string) string {
	if _, v, ok := strings.Cut(field, "="); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(field)
}

// isRoot reports whether a default parent value means "top of the hierarchy".
func isRoot(v string) bool {
	return v == "" || strings.EqualFold(v, rootParent)
}
