// =============================================================================
// HFM Metadata Compare - Property Schemas
// =============================================================================
//
// A property schema is the ordered list of property names of a dimension's
// member records. It is used only to label differences; values are never
// type-checked.
//
// SCHEMA SELECTION:
//   The schema of a section is chosen from the dimension type derived from
//   the section name (see Resolve), never from the number of fields on a line.
//   Two dimensions whose records happen to have the same number of fields are
//   therefore never confused.
//
// CUSTOMIZATION:
//   - Override any property list in the YAML config ("schemas:" key)
//   - Or supply a workbook with one sheet per dimension type (see workbook.go)
//
// =============================================================================

package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// =============================================================================
// DIMENSION TYPES
// =============================================================================

// DimensionType is the stable identifier of a dimension's record layout.
type DimensionType string

const (
	Settings      DimensionType = "Settings"
	Currency      DimensionType = "Currency"
	Consolidation DimensionType = "Consolidation"
	Account       DimensionType = "Account"
	Entity        DimensionType = "Entity"
	Scenario      DimensionType = "Scenario"
	Custom        DimensionType = "Custom"
	Generic       DimensionType = "Generic"
)

// KnownTypes lists the types that carry a property schema.
var KnownTypes = []DimensionType{Currency, Scenario, Entity, Account, Custom, Consolidation}

// ParseDimensionType matches a type name case-insensitively.
func ParseDimensionType(s string) (DimensionType, error) {
	all := []DimensionType{Settings, Currency, Consolidation, Account, Entity, Scenario, Custom, Generic}
	for _, t := range all {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown dimension type %q", s)
}

// Property names with special comparison rules.
const (
	DefaultParentProperty = "DefaultParent"
	DescriptionsProperty  = "Descriptions"
)

// =============================================================================
// SCHEMA
// =============================================================================

// Schema is the ordered property list of one dimension type.
type Schema struct {
	Type       DimensionType
	Properties []string
}

// Len returns the number of fields a record of this schema has.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Properties)
}

// PropertyName returns the label of the field at index i. Positions outside
// the schema are labelled "Field<N>" (1-based).
func (s *Schema) PropertyName(i int) string {
	if s != nil && i >= 0 && i < len(s.Properties) {
		return s.Properties[i]
	}
	return fmt.Sprintf("Field%d", i+1)
}

// FallbackName labels field i of an n-field record that does not fit the
// schema. The leading properties that precede the custom dependent ones keep
// their names, as do DefaultParent and Descriptions in their positional
// roles (second to last and last). Everything else is "Field<N>".
func (s *Schema) FallbackName(i, n int) string {
	if s.Len() == 0 || i < 0 || i >= n {
		return fmt.Sprintf("Field%d", i+1)
	}
	if i < s.fixedPrefix() {
		return s.Properties[i]
	}
	last := len(s.Properties) - 1
	switch {
	case i == n-1 && s.Properties[last] == DescriptionsProperty:
		return DescriptionsProperty
	case i == n-2 && last > 0 && s.Properties[last-1] == DefaultParentProperty:
		return DefaultParentProperty
	}
	return fmt.Sprintf("Field%d", i+1)
}

// customDependent matches the properties whose number depends on the custom
// dimension count ("Custom1TopMember", "EnableCustom1Aggr").
var customDependent = regexp.MustCompile(`^(Enable)?Custom\d+`)

// fixedPrefix returns how many leading properties keep their position
// whatever the record length. Schemas without custom dependent properties
// only pin the label.
func (s *Schema) fixedPrefix() int {
	for i, p := range s.Properties {
		if customDependent.MatchString(p) {
			return i
		}
	}
	return 1
}

// DefaultParentIndex returns the position of the DefaultParent field for a
// record with n fields, or -1 when the schema has none. Without a schema the
// second to last field is assumed.
func (s *Schema) DefaultParentIndex(n int) int {
	if s == nil {
		return n - 2
	}
	return s.indexOf(DefaultParentProperty)
}

// DescriptionsIndex returns the position of the Descriptions field for a
// record with n fields, or -1 when the schema has none. Without a schema the
// last field is assumed.
func (s *Schema) DescriptionsIndex(n int) int {
	if s == nil {
		return n - 1
	}
	return s.indexOf(DescriptionsProperty)
}

// FoldDescriptions joins trailing fields into the Descriptions field when a
// record has more fields than the schema and the schema ends with
// Descriptions. Multi-language descriptions ("English=Sales;French=Ventes")
// would otherwise shift the field count.
func (s *Schema) FoldDescriptions(fields []string) []string {
	n := s.Len()
	if n == 0 || len(fields) <= n || s.Properties[n-1] != DescriptionsProperty {
		return fields
	}
	folded := make([]string, n)
	copy(folded, fields[:n-1])
	folded[n-1] = strings.Join(fields[n-1:], ";")
	return folded
}

func (s *Schema) indexOf(property string) int {
	for i, p := range s.Properties {
		if p == property {
			return i
		}
	}
	return -1
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps dimension types to their property schemas.
type Registry struct {
	schemas map[DimensionType]*Schema
}

// NewRegistry returns a registry holding the default HFM property lists for
// an application with the given number of custom dimensions.
func NewRegistry(customCount int) *Registry {
	r := &Registry{schemas: make(map[DimensionType]*Schema)}
	r.Set(Currency, split(currencyProperties))
	r.Set(Scenario, split(scenarioProperties))
	r.Set(Entity, split(entityProperties))
	r.Set(Account, AccountProperties(customCount))
	r.Set(Custom, split(customProperties))
	r.Set(Consolidation, split(consolidationProperties))
	return r
}

// Set replaces the property list of a dimension type.
func (r *Registry) Set(t DimensionType, properties []string) {
	props := make([]string, len(properties))
	copy(props, properties)
	r.schemas[t] = &Schema{Type: t, Properties: props}
}

// Override applies a set of property lists on top of the registry.
func (r *Registry) Override(overrides map[DimensionType][]string) {
	for t, props := range overrides {
		if len(props) > 0 {
			r.Set(t, props)
		}
	}
}

// Lookup returns the schema of a dimension type, or nil.
func (r *Registry) Lookup(t DimensionType) *Schema {
	return r.schemas[t]
}

// Types returns the registered types in a stable order.
func (r *Registry) Types() []DimensionType {
	types := make([]DimensionType, 0, len(r.schemas))
	for t := range r.schemas {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// =============================================================================
// DEFAULT PROPERTY LISTS
// =============================================================================

const (
	currencyProperties      = "Label,Scale,TranslationOperator,DisplayInICT,Descriptions"
	scenarioProperties      = "Label,DefaultFreq,DefaultView,ZeroViewForNonadj,ZeroViewForAdj,ConsolidateYTD,UserDefined1,UserDefined2,UserDefined3,SupportsProcessManagement,SecurityClass,MaximumReviewLevel,UsesLineItems,EnableDataAudit,DefFreqForICTrans,PhasedSubStartYear,DefaultParent,Descriptions"
	entityProperties        = "Label,DefaultValueID,AllowAdjustments,IsICP,AllowChildrenAdjs,SecurityClassID,UserDefined1,UserDefined2,UserDefined3,HoldingCompany,EAPSecurityClassID,DefaultParent,Descriptions"
	customProperties        = "Label,IsCalculated,SwitchSignForFlow,SwitchTypeForFlow,UserDefined1,UserDefined2,UserDefined3,SecurityClass,SubmissionGroup,DefaultParent,Descriptions"
	consolidationProperties = "Label,UsedByCalcRoutine,IsHoldingMethod,ToPercentControlComp,ToPercentControl,PercentConsol,Control,Descriptions"
)

// DefaultCustomCount is the number of custom dimensions assumed when the
// files do not declare a custom order.
const DefaultCustomCount = 4

// AccountProperties builds the Account property list. The top member and
// aggregation flags repeat once per custom dimension.
func AccountProperties(customCount int) []string {
	if customCount < 0 {
		customCount = 0
	}

	props := []string{"Label", "AccountType", "IsCalculated", "IsConsolidated", "IsICP", "PlugAcct"}
	for i := 1; i <= customCount; i++ {
		props = append(props, fmt.Sprintf("Custom%dTopMember", i))
	}
	props = append(props, "NumDecimalPlaces", "UsesLineItems")
	for i := 1; i <= customCount; i++ {
		props = append(props, fmt.Sprintf("EnableCustom%dAggr", i))
	}
	return append(props,
		"UserDefined1", "UserDefined2", "UserDefined3", "XBRLTags", "SecurityClass",
		"ICPTopMember", "EnableDataAudit", "CalcAttribute", "SubmissionGroup",
		DefaultParentProperty, DescriptionsProperty,
	)
}

func split(list string) []string {
	return strings.Split(list, ",")
}
