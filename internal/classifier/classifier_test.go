package classifier

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/schema"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/types"
)

var registry = schema.NewRegistry(schema.DefaultCustomCount)

func section(name string) (schema.SectionInfo, *schema.Schema) {
	info := schema.Resolve(name, nil)
	return info, registry.Lookup(info.Type)
}

// accountLine builds a 27-field Account record. Overrides are keyed by
// property name.
func accountLine(label string, overrides map[string]string) string {
	props := registry.Lookup(schema.Account).Properties
	fields := make([]string, len(props))
	for i, p := range props {
		switch p {
		case "Label":
			fields[i] = label
		case "AccountType":
			fields[i] = "Asset"
		case "DefaultParent":
			fields[i] = "DefaultParent=Parent1"
		case "Descriptions":
			fields[i] = "English=Desc1"
		default:
			fields[i] = "N"
		}
		if v, ok := overrides[p]; ok {
			fields[i] = v
		}
	}
	return strings.Join(fields, ";")
}

func cells(rows []types.DiffRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Cells()
	}
	return out
}

func TestClassify_NoUniqueLines(t *testing.T) {
	info, sch := section("AccountM")
	if rows := Classify(info, sch, nil, nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", cells(rows))
	}
}

func TestClassify_SettingValueChanged(t *testing.T) {
	info, sch := section("APPLICATION_SETTINGS")
	rows := Classify(info, sch, []string{"ConsolidationRules=Y"}, []string{"ConsolidationRules=R"})

	want := [][]string{{"APPLICATION_SETTINGS", "ConsolidationRules", "Value", "Y", "R"}}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestClassify_SettingMissing(t *testing.T) {
	info, sch := section("APPLICATION_SETTINGS")
	rows := Classify(info, sch, []string{"UseSecurityForAccounts=Y"}, []string{"NodeSecurity=Entity"})

	want := [][]string{
		{"APPLICATION_SETTINGS", "UseSecurityForAccounts=Y", "Setting", "", "Missing"},
		{"APPLICATION_SETTINGS", "NodeSecurity=Entity", "Setting", "Missing"},
	}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestClassify_HierarchyWeight(t *testing.T) {
	info, sch := section("AccountH")

	rows := Classify(info, sch, []string{"Parent1;Child1;1"}, []string{"Parent1;Child1;0.5"})
	want := [][]string{{"Account", "Parent1;Child1", "aggrweight", "1", "0.5"}}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestClassify_HierarchyMissing(t *testing.T) {
	info, sch := section("EntityH")

	rows := Classify(info, sch, []string{"Parent1;Child1;1"}, []string{"Parent2;Child1;1"})
	want := [][]string{
		{"Entity", "Parent1;Child1;1", "Hierarchy", "", "Missing"},
		{"Entity", "Parent2;Child1;1", "Hierarchy", "Missing"},
	}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestClassify_HierarchyKeyIsCaseSensitive(t *testing.T) {
	info, sch := section("AccountH")

	rows := Classify(info, sch, []string{"parent1;Child1;1"}, []string{"Parent1;Child1;1"})
	if len(rows) != 2 || rows[0].Kind != types.RowMissingInFile2 || rows[1].Kind != types.RowMissingInFile1 {
		t.Errorf("expected two missing rows, got %v", cells(rows))
	}
}

func TestClassify_ListRecordsCaseInsensitive(t *testing.T) {
	info, sch := section("Custom1H")

	rows := Classify(info, sch, []string{"TopC1;ChildA"}, []string{"TOPC1;childa"})
	if len(rows) != 0 {
		t.Errorf("case-only difference should match, got %v", cells(rows))
	}

	rows = Classify(info, sch, []string{"TopC1;ChildA"}, nil)
	want := [][]string{{"Custom1", "TopC1;ChildA", "Hierarchy", "", "Missing"}}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestClassify_PropertyEndToEnd(t *testing.T) {
	info, sch := section("AccountM")
	line1 := accountLine("Acct1", nil)
	line2 := accountLine("Acct1", map[string]string{
		"AccountType":   "Liability",
		"DefaultParent": "DefaultParent=#root",
	})

	rows := Classify(info, sch, []string{line1}, []string{line2})
	want := [][]string{
		{"Account", "Acct1", "AccountType", "Asset", "Liability"},
		{"Account", "Acct1", "DefaultParent", "Parent1", "#root"},
	}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestClassify_DefaultParentRootEquivalence(t *testing.T) {
	info, sch := section("AccountM")
	tests := []struct {
		name     string
		p1, p2   string
		wantRows int
	}{
		{"root vs empty", "DefaultParent=#root", "DefaultParent=", 0},
		{"empty vs root", "DefaultParent=", "DefaultParent=#root", 0},
		{"root vs parent", "DefaultParent=#root", "DefaultParent=Parent1", 1},
		{"parent vs other", "DefaultParent=Parent1", "DefaultParent=Parent2", 1},
		{"case only", "DefaultParent=parent1", "DefaultParent=Parent1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l1 := accountLine("Acct1", map[string]string{"DefaultParent": tt.p1})
			l2 := accountLine("Acct1", map[string]string{"DefaultParent": tt.p2})
			rows := Classify(info, sch, []string{l1}, []string{l2})
			if len(rows) != tt.wantRows {
				t.Errorf("got %d rows, want %d: %v", len(rows), tt.wantRows, cells(rows))
			}
		})
	}
}

func TestClassify_DescriptionsIgnored(t *testing.T) {
	info, sch := section("AccountM")
	l1 := accountLine("Acct1", map[string]string{"Descriptions": "English=Cash"})
	l2 := accountLine("Acct1", map[string]string{"Descriptions": "English=Cash and equivalents"})

	if rows := Classify(info, sch, []string{l1}, []string{l2}); len(rows) != 0 {
		t.Errorf("description change must not be reported, got %v", cells(rows))
	}
}

func TestClassify_ExtraDescriptionFieldIsNoMatch(t *testing.T) {
	info, sch := section("CURRENCIES")
	l1 := "EUR;0;Multiply;Y;English=Euro"
	l2 := "EUR;0;Divide;Y;English=Euro;French=Euro"

	rows := Classify(info, sch, []string{l1}, []string{l2})
	want := [][]string{
		{"CURRENCIES", "EUR", "Member", "", "Missing"},
		{"CURRENCIES", "EUR", "Member", "Missing"},
	}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}

	info, sch = section("AccountM")
	a1 := accountLine("Acct1", nil)
	a2 := accountLine("Acct1", map[string]string{"AccountType": "Liability"}) + ";French=X"
	if rows := Classify(info, sch, []string{a1}, []string{a2}); len(rows) != 2 ||
		rows[0].Kind != types.RowMissingInFile2 || rows[1].Kind != types.RowMissingInFile1 {
		t.Errorf("expected two missing rows, got %v", cells(rows))
	}
}

func TestClassify_MultiLanguageDescriptionsSameCount(t *testing.T) {
	info, sch := section("CURRENCIES")
	l1 := "EUR;0;Multiply;Y;English=Euro;French=Euro"
	l2 := "EUR;0;Divide;Y;English=Euro;French=Euros"

	rows := Classify(info, sch, []string{l1}, []string{l2})
	want := [][]string{{"CURRENCIES", "EUR", "TranslationOperator", "Multiply", "Divide"}}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestClassify_AccountSchemaShorterThanRecord(t *testing.T) {
	// An application schema one property short of the records still names
	// the fixed leading properties and the trailing roles.
	reg := schema.NewRegistry(schema.DefaultCustomCount)
	props := reg.Lookup(schema.Account).Properties
	short := make([]string, 0, len(props)-1)
	for _, p := range props {
		if p != "XBRLTags" {
			short = append(short, p)
		}
	}
	reg.Set(schema.Account, short)

	info := schema.Resolve("AccountM", nil)
	line1 := accountLine("Acct1", nil)
	line2 := accountLine("Acct1", map[string]string{
		"AccountType":   "Liability",
		"DefaultParent": "DefaultParent=#root",
	})

	rows := Classify(info, reg.Lookup(schema.Account), []string{line1}, []string{line2})
	want := [][]string{
		{"Account", "Acct1", "AccountType", "Asset", "Liability"},
		{"Account", "Acct1", "DefaultParent", "Parent1", "#root"},
	}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func TestClassify_MemberMissingShapes(t *testing.T) {
	info, sch := section("AccountM")
	rows := Classify(info, sch, []string{accountLine("OnlyIn1", nil)}, []string{accountLine("OnlyIn2", nil)})

	want := [][]string{
		{"Account", "OnlyIn1", "Member", "", "Missing"},
		{"Account", "OnlyIn2", "Member", "Missing"},
	}
	got := cells(rows)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	if len(got[1]) != len(got[0])-1 {
		t.Errorf("file 2 missing row should have one fewer column")
	}
}

func TestClassify_LabelCaseInsensitiveButFieldCountStrict(t *testing.T) {
	info, sch := section("EntityM")
	entity := "E1;[None];Y;N;Y;[None];;;;N;[None];DefaultParent=Group;English=E1"

	rows := Classify(info, sch, []string{entity}, []string{strings.Replace(entity, "E1;", "e1;", 1)})
	if len(rows) != 0 {
		t.Errorf("label case must not matter, got %v", cells(rows))
	}

	short := "E1;[None];Y;N;Y"
	rows = Classify(info, sch, []string{entity}, []string{short})
	if len(rows) != 2 {
		t.Errorf("different field count must not match, got %v", cells(rows))
	}
}

func TestClassify_SchemaChosenBySection(t *testing.T) {
	// Currency and a five-field generic record have the same arity; only the
	// section decides the labels and the DefaultParent role.
	cur, curSchema := section("CURRENCIES")
	rows := Classify(cur, curSchema, []string{"USD;0;Multiply;#root;English=Dollar"}, []string{"USD;0;Multiply;;English=Dollar"})
	want := [][]string{{"CURRENCIES", "USD", "DisplayInICT", "#root", ""}}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("currency rows = %v, want %v", got, want)
	}

	gen, genSchema := section("ICPM")
	rows = Classify(gen, genSchema, []string{"X;0;Multiply;#root;English=X"}, []string{"X;1;Multiply;;English=Y"})
	want = [][]string{{"ICP", "X", "Field2", "0", "1"}}
	if got := cells(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("generic rows = %v, want %v", got, want)
	}
}
