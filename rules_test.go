package prep

import (
	"fmt"
	"strings"
	"testing"
)

func TestReadRuleTable(Te *testing.T) {
	table, err := ReadRuleTable("test/replace.csv")
	if err != nil {
		Te.Fatal(err)
	}
	r := table.Rule("XLI", "A3")
	if r == nil {
		Te.Fatal("rule for XLI/A3 not found")
	}
	if r.Name != "B3" || r.MolName != "LIP" || r.Order != 2 || r.NAtoms != 4 || r.Ter {
		Te.Errorf("wrong rule for XLI/A3: %+v", r)
	}
	if !table.Rule("XLI", "A4").Ter {
		Te.Errorf("terminal flag lost for XLI/A4")
	}
	if table.Rule("XLI", "ZZ") != nil || table.Rule("GLY", "N") != nil {
		Te.Errorf("ungoverned atoms should have no rule")
	}
	fmt.Println("rule table read,", len(table), "residues governed")
}

func TestReadRuleTableGz(Te *testing.T) {
	plain, err := ReadRuleTable("test/replace.csv")
	if err != nil {
		Te.Fatal(err)
	}
	gz, err := ReadRuleTable("test/replace.csv.gz")
	if err != nil {
		Te.Fatal(err)
	}
	for res, atoms := range plain {
		for at, r := range atoms {
			g := gz.Rule(res, at)
			if g == nil || *g != *r {
				Te.Errorf("gz table differs for %s/%s: %+v vs %+v", res, at, g, r)
			}
		}
	}
}

func TestReadRuleTableMalformed(Te *testing.T) {
	_, err := ReadRuleTable("test/replace_bad.csv")
	if err == nil {
		Te.Fatal("malformed rule table should not parse")
	}
	if err.(Error).Kind() != Format {
		Te.Errorf("expected a %s error, got %s", Format, err.(Error).Kind())
	}
	if !strings.Contains(err.Error(), "row 2") {
		Te.Errorf("error should name the malformed row: %s", err.Error())
	}
}
