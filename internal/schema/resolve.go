package schema

import (
	"regexp"
	"strings"
)

// Section kinds, used as the property label of Missing rows.
const (
	KindMember    = "Member"
	KindHierarchy = "Hierarchy"
	KindSetting   = "Setting"
)

// SectionInfo identifies a split section.
type SectionInfo struct {
	// Name is the section file name, e.g. "AccountM".
	Name string

	// Dimension is the dimension name shown in the report, e.g. "Account".
	// Non-dimensional sections keep their full name, e.g. "CURRENCIES".
	Dimension string

	// Kind is KindMember, KindHierarchy or KindSetting.
	Kind string

	// Type selects the property schema.
	Type DimensionType
}

// Label is the human readable section name used in log lines,
// e.g. "Account Members".
func (s SectionInfo) Label() string {
	switch {
	case s.Dimension == s.Name:
		return s.Name
	case s.Kind == KindHierarchy:
		return s.Dimension + " Hierarchies"
	default:
		return s.Dimension + " Members"
	}
}

var customNamePattern = regexp.MustCompile(`(?i)^custom\d+$`)

// Resolve derives the identity of a section from its name. customNames are
// the custom dimension names declared by the files' custom order.
func Resolve(name string, customNames []string) SectionInfo {
	switch name {
	case "APPLICATION_SETTINGS":
		return SectionInfo{Name: name, Dimension: name, Kind: KindSetting, Type: Settings}
	case "CURRENCIES":
		return SectionInfo{Name: name, Dimension: name, Kind: KindMember, Type: Currency}
	case "CONSOLIDATION_METHODS":
		return SectionInfo{Name: name, Dimension: name, Kind: KindMember, Type: Consolidation}
	}

	info := SectionInfo{Name: name, Dimension: name, Kind: KindMember, Type: Generic}
	if len(name) < 2 {
		return info
	}

	switch name[len(name)-1] {
	case 'M':
		info.Kind = KindMember
	case 'H':
		info.Kind = KindHierarchy
	default:
		return info
	}
	info.Dimension = name[:len(name)-1]
	info.Type = dimensionType(info.Dimension, customNames)
	return info
}

func dimensionType(dimension string, customNames []string) DimensionType {
	for _, t := range []DimensionType{Account, Entity, Scenario} {
		if strings.EqualFold(dimension, string(t)) {
			return t
		}
	}
	if customNamePattern.MatchString(dimension) {
		return Custom
	}
	for _, c := range customNames {
		if strings.EqualFold(dimension, c) {
			return Custom
		}
	}
	return Generic
}
