package wagetax

import (
	"testing"

	"lohnrechner/internal/money"
)

func TestForYearSupported(t *testing.T) {
	for _, year := range []int{2025, 2026} {
		p, ok := ForYear(year)
		if !ok {
			t.Fatalf("year %d should be supported", year)
		}
		if p.Year != year {
			t.Fatalf("params carry year %d, expected %d", p.Year, year)
		}
	}
	if _, ok := ForYear(2019); ok {
		t.Fatal("2019 must not be supported")
	}
}

func TestYearsSorted(t *testing.T) {
	got := Years()
	if len(got) != 2 || got[0] != 2025 || got[1] != 2026 {
		t.Fatalf("unexpected years: %v", got)
	}
}

func TestReliefTablesRunOut(t *testing.T) {
	p, _ := ForYear(2025)
	if len(p.PensionRelief) != 54 || len(p.AgeRelief) != 54 {
		t.Fatalf("table lengths: %d / %d", len(p.PensionRelief), len(p.AgeRelief))
	}
	last := p.PensionRelief[len(p.PensionRelief)-1]
	if !last.Rate.IsZero() || !last.Max.IsZero() || !last.Bonus.IsZero() {
		t.Fatalf("pension relief must phase out to zero, got %+v", last)
	}
	lastAge := p.AgeRelief[len(p.AgeRelief)-1]
	if !lastAge.Rate.IsZero() || !lastAge.Max.IsZero() {
		t.Fatalf("age relief must phase out to zero, got %+v", lastAge)
	}
}

func TestReliefTablePublishedEntries(t *testing.T) {
	p, _ := ForYear(2025)

	// Commencement 2005: the full 40% relief.
	first := p.PensionRelief[0]
	if first.Rate.Cmp(money.MustParse("0.40")) != 0 || first.Max.Cmp(money.FromInt(3000)) != 0 || first.Bonus.Cmp(money.FromInt(900)) != 0 {
		t.Fatalf("2005 entry wrong: %+v", first)
	}

	// Commencement 2025: 13.2%, capped at 990, bonus 297.
	idx := reliefIndex(2025, len(p.PensionRelief))
	entry := p.PensionRelief[idx]
	if entry.Rate.Cmp(money.MustParse("0.132")) != 0 || entry.Max.Cmp(money.FromInt(990)) != 0 || entry.Bonus.Cmp(money.FromInt(297)) != 0 {
		t.Fatalf("2025 entry wrong: %+v", entry)
	}

	// Age relief for a 65th year in 2025: 13.2%, capped at 627.
	age := p.AgeRelief[reliefIndex(2025, len(p.AgeRelief))]
	if age.Rate.Cmp(money.MustParse("0.132")) != 0 || age.Max.Cmp(money.FromInt(627)) != 0 {
		t.Fatalf("2025 age entry wrong: %+v", age)
	}
}

func TestReliefIndexClamped(t *testing.T) {
	if reliefIndex(1990, 54) != 0 {
		t.Fatal("pre-2005 start must clamp to index 0")
	}
	if reliefIndex(2100, 54) != 53 {
		t.Fatal("far-future start must clamp to the last index")
	}
}

func TestYearParamsDiffer(t *testing.T) {
	a, _ := ForYear(2025)
	b, _ := ForYear(2026)
	if a.BasicAllowance.Cmp(b.BasicAllowance) >= 0 {
		t.Fatal("basic allowance should rise year over year")
	}
	if a.ChildAllowance.Cmp(b.ChildAllowance) >= 0 {
		t.Fatal("child allowance should rise year over year")
	}
	if a.PensionCeiling.Cmp(b.PensionCeiling) >= 0 {
		t.Fatal("pension ceiling should rise year over year")
	}
}
