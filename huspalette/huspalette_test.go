package huspalette

import "testing"

func TestTableHasTwentyNineEntries(t *testing.T) {
	if len(Table) != 29 {
		t.Fatalf("len(Table) = %d, want 29", len(Table))
	}
	if MaxIndex != 28 {
		t.Fatalf("MaxIndex = %d, want 28", MaxIndex)
	}
}

func TestThreadCarriesHusBrandForEveryEntry(t *testing.T) {
	for i := range Table {
		th := Thread(i)
		if th.Brand != "Hus" {
			t.Fatalf("Thread(%d).Brand = %q, want %q", i, th.Brand, "Hus")
		}
		if th.CatalogNumber != Table[i].Catalog {
			t.Fatalf("Thread(%d).CatalogNumber = %q, want %q", i, th.CatalogNumber, Table[i].Catalog)
		}
	}
}

func TestThreadIndexZeroIsBlack(t *testing.T) {
	th := Thread(0)
	if th.HexColor() != "#000000" {
		t.Fatalf("Thread(0).HexColor() = %s, want #000000", th.HexColor())
	}
	if th.Description != "Black" {
		t.Fatalf("Thread(0).Description = %q, want Black", th.Description)
	}
}
