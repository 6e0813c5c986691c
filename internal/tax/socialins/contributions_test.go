package socialins

import (
	"testing"

	"lohnrechner/internal/money"
)

func table(t *testing.T, year int) Params {
	t.Helper()
	p, ok := ForYear(year)
	if !ok {
		t.Fatalf("year %d not supported", year)
	}
	return p
}

func TestPensionContributionPlain(t *testing.T) {
	p := table(t, 2025)
	got, err := Compute(p, money.FromInt(3000), Options{SupplementRate: money.MustParse("0.025")})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got.Pension.String() != "279.00" {
		t.Fatalf("pension: expected 279.00, got %s", got.Pension)
	}
	if got.Unemployment.String() != "39.00" {
		t.Fatalf("unemployment: expected 39.00, got %s", got.Unemployment)
	}
	// 7.3% + half of the 2.5% supplement = 8.55%
	if got.Health.String() != "256.50" {
		t.Fatalf("health: expected 256.50, got %s", got.Health)
	}
}

func TestCeilingCapsContribution(t *testing.T) {
	p := table(t, 2025)
	high, err := Compute(p, money.FromInt(12000), Options{SupplementRate: money.MustParse("0.025")})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	higher, err := Compute(p, money.FromInt(25000), Options{SupplementRate: money.MustParse("0.025")})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if high.Pension.Cmp(higher.Pension) != 0 {
		t.Fatalf("pension above ceiling must plateau: %s vs %s", high.Pension, higher.Pension)
	}
	if high.Health.Cmp(higher.Health) != 0 {
		t.Fatalf("health above ceiling must plateau: %s vs %s", high.Health, higher.Health)
	}
}

func TestPrivateHealthSkipsHealthAndCare(t *testing.T) {
	p := table(t, 2025)
	got, err := Compute(p, money.FromInt(5000), Options{PrivateHealth: true})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !got.Health.IsZero() || !got.Care.IsZero() {
		t.Fatalf("private insurance must zero health/care, got %s / %s", got.Health, got.Care)
	}
	if got.Pension.IsZero() || got.Unemployment.IsZero() {
		t.Fatal("pension and unemployment still apply to privately insured")
	}
}

func TestCareSurchargeAndDiscount(t *testing.T) {
	p := table(t, 2025)
	wage := money.FromInt(3000)

	childless, _ := Compute(p, wage, Options{SupplementRate: money.MustParse("0.025"), Childless: true})
	parent, _ := Compute(p, wage, Options{SupplementRate: money.MustParse("0.025")})
	large, _ := Compute(p, wage, Options{SupplementRate: money.MustParse("0.025"), DiscountUnits: 3})

	if childless.Care.Cmp(parent.Care) <= 0 {
		t.Fatalf("childless surcharge missing: %s vs %s", childless.Care, parent.Care)
	}
	if large.Care.Cmp(parent.Care) >= 0 {
		t.Fatalf("multi-child discount missing: %s vs %s", large.Care, parent.Care)
	}
	// 1.8% - 3 * 0.25% = 1.05% of 3000
	if large.Care.String() != "31.50" {
		t.Fatalf("expected 31.50, got %s", large.Care)
	}
}

func TestSaxonySplit(t *testing.T) {
	p := table(t, 2025)
	wage := money.FromInt(3000)
	saxony, _ := Compute(p, wage, Options{SupplementRate: money.MustParse("0.025"), Saxony: true})
	other, _ := Compute(p, wage, Options{SupplementRate: money.MustParse("0.025")})
	if saxony.Care.Cmp(other.Care) <= 0 {
		t.Fatalf("Saxony employee share must exceed the national split: %s vs %s", saxony.Care, other.Care)
	}
}

func TestDefaultSupplementUsedWhenNegative(t *testing.T) {
	p := table(t, 2025)
	withDefault, _ := Compute(p, money.FromInt(3000), Options{SupplementRate: money.FromInt(-1)})
	explicit, _ := Compute(p, money.FromInt(3000), Options{SupplementRate: money.MustParse("0.025")})
	if withDefault.Health.Cmp(explicit.Health) != 0 {
		t.Fatalf("default supplement mismatch: %s vs %s", withDefault.Health, explicit.Health)
	}
}
