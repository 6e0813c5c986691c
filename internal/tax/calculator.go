package tax

import (
	"fmt"

	"lohnrechner/internal/money"
	"lohnrechner/internal/tax/socialins"
	"lohnrechner/internal/tax/wagetax"
)

// careDiscountMax caps the multi-child discount at four additional
// children, as published.
const careDiscountMax = 4

// SupportedYears lists the tax years a profile may select.
func SupportedYears() []int {
	return wagetax.Years()
}

// Calculate derives the monthly net-salary breakdown for one profile. The
// computation is pure and deterministic; identical profiles always yield
// identical results.
func Calculate(p Profile) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	params, ok := wagetax.ForYear(p.Year)
	if !ok {
		return Result{}, fmt.Errorf("%w: tax year %d is not supported", ErrInvalidProfile, p.Year)
	}
	contribParams, ok := socialins.ForYear(p.Year)
	if !ok {
		return Result{}, fmt.Errorf("%w: no contribution table for year %d", ErrInvalidProfile, p.Year)
	}

	monthlyGross, err := p.YearlySalary.Div(money.FromInt(12), 2, money.RoundDown)
	if err != nil {
		return Result{}, fmt.Errorf("tax: monthly gross: %v", err)
	}

	supplement := money.FromInt(-1)
	if p.HealthSupplementRate != nil {
		supplement = *p.HealthSupplementRate
	}
	engineSupplement := supplement
	if engineSupplement.IsNegative() {
		engineSupplement = params.DefaultHealthSupplement
	}

	discountUnits := p.ChildCount - 1
	if discountUnits < 0 {
		discountUnits = 0
	}
	if discountUnits > careDiscountMax {
		discountUnits = careDiscountMax
	}

	raw, err := wagetax.Compute(params, wagetax.Input{
		Period:                 wagetax.PeriodMonth,
		Wage:                   monthlyGross,
		TaxClass:               p.TaxClass,
		ChildUnits:             money.FromInt(int64(p.ChildCount)),
		BirthYear:              p.BirthYear,
		PrivateHealth:          p.PrivateHealthInsurance,
		HealthSupplementRate:   engineSupplement,
		CareChildless:          !p.HasChildren,
		CareChildDiscountUnits: discountUnits,
		Saxony:                 p.State == StateSachsen,
	})
	if err != nil {
		return Result{}, fmt.Errorf("tax: wage tax: %w", err)
	}

	contrib, err := socialins.Compute(contribParams, monthlyGross, socialins.Options{
		PrivateHealth:  p.PrivateHealthInsurance,
		SupplementRate: supplement,
		Childless:      !p.HasChildren,
		DiscountUnits:  discountUnits,
		Saxony:         p.State == StateSachsen,
	})
	if err != nil {
		return Result{}, fmt.Errorf("tax: contributions: %w", err)
	}

	church := money.Zero()
	if p.ChurchTax {
		church = raw.ChurchTaxBase.Mul(churchRate(p.State)).Rescale(2, money.RoundDown)
	}

	netto := monthlyGross.
		Sub(raw.WageTax).
		Sub(raw.SolidaritySurcharge).
		Sub(church).
		Sub(contrib.Total())

	round := func(a money.Amount) money.Amount { return a.Rescale(2, money.RoundDown) }
	return Result{
		Netto: round(netto),
		Taxes: TaxBreakdown{
			Lohnsteuer:    round(raw.WageTax),
			Soli:          round(raw.SolidaritySurcharge),
			Kirchensteuer: round(church),
		},
		SocialSecurity: SocialSecurityBreakdown{
			KV: round(contrib.Health),
			RV: round(contrib.Pension),
			AV: round(contrib.Unemployment),
			PV: round(contrib.Care),
		},
	}, nil
}
