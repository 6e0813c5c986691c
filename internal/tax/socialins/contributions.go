// Package socialins computes the employee's statutory social-insurance
// contributions from the published per-year rates and income ceilings. It is
// deliberately independent of the wage-tax pipeline: contributions are a
// separate legal regime with their own tables.
package socialins

import "lohnrechner/internal/money"

// Params holds one year's employee-side rates and annual income ceilings.
type Params struct {
	Year int

	// Annual ceilings; pension insurance and unemployment insurance share
	// one ceiling, health and long-term care share the other.
	PensionCeiling money.Amount
	HealthCeiling  money.Amount

	// Employee shares of the statutory rates.
	PensionRate      money.Amount
	UnemploymentRate money.Amount
	HealthRate       money.Amount

	// DefaultSupplement is the average supplemental health rate used when a
	// profile does not carry its fund's own rate. The employee pays half.
	DefaultSupplement money.Amount

	CareRate           money.Amount
	CareRateSaxony     money.Amount
	ChildlessSurcharge money.Amount
	ChildDiscount      money.Amount
}

var years = map[int]Params{
	2025: {
		Year:               2025,
		PensionCeiling:     money.FromInt(96600),
		HealthCeiling:      money.FromInt(66150),
		PensionRate:        money.MustParse("0.093"),
		UnemploymentRate:   money.MustParse("0.013"),
		HealthRate:         money.MustParse("0.073"),
		DefaultSupplement:  money.MustParse("0.025"),
		CareRate:           money.MustParse("0.018"),
		CareRateSaxony:     money.MustParse("0.023"),
		ChildlessSurcharge: money.MustParse("0.006"),
		ChildDiscount:      money.MustParse("0.0025"),
	},
	2026: {
		Year:               2026,
		PensionCeiling:     money.FromInt(101400),
		HealthCeiling:      money.FromInt(69750),
		PensionRate:        money.MustParse("0.093"),
		UnemploymentRate:   money.MustParse("0.013"),
		HealthRate:         money.MustParse("0.073"),
		DefaultSupplement:  money.MustParse("0.029"),
		CareRate:           money.MustParse("0.018"),
		CareRateSaxony:     money.MustParse("0.023"),
		ChildlessSurcharge: money.MustParse("0.006"),
		ChildDiscount:      money.MustParse("0.0025"),
	},
}

// ForYear returns the contribution table for a supported year.
func ForYear(year int) (Params, bool) {
	p, ok := years[year]
	return p, ok
}

// Options carries the profile facts that modify the contribution rates.
type Options struct {
	PrivateHealth bool

	// SupplementRate is the fund's full supplemental health rate as a
	// fraction; negative means "use the published average".
	SupplementRate money.Amount

	Childless     bool
	DiscountUnits int
	Saxony        bool
}

// Breakdown is the employee's monthly contribution per insurance branch.
type Breakdown struct {
	Pension      money.Amount
	Unemployment money.Amount
	Health       money.Amount
	Care         money.Amount
}

// Compute derives the monthly employee contributions for a monthly gross
// wage. Income above a ceiling contributes nothing; privately insured
// employees pay no statutory health or care contribution here.
func Compute(p Params, monthlyGross money.Amount, opts Options) (Breakdown, error) {
	pensionBase, err := cappedBase(monthlyGross, p.PensionCeiling)
	if err != nil {
		return Breakdown{}, err
	}
	healthBase, err := cappedBase(monthlyGross, p.HealthCeiling)
	if err != nil {
		return Breakdown{}, err
	}

	out := Breakdown{
		Pension:      pensionBase.Mul(p.PensionRate).Rescale(2, money.RoundDown),
		Unemployment: pensionBase.Mul(p.UnemploymentRate).Rescale(2, money.RoundDown),
	}
	if opts.PrivateHealth {
		return out, nil
	}

	supplement := opts.SupplementRate
	if supplement.IsNegative() {
		supplement = p.DefaultSupplement
	}
	healthRate := p.HealthRate.Add(supplement.Mul(money.MustParse("0.5")))
	out.Health = healthBase.Mul(healthRate).Rescale(2, money.RoundDown)
	out.Care = healthBase.Mul(p.careRate(opts)).Rescale(2, money.RoundDown)
	return out, nil
}

// Total sums the four branches.
func (b Breakdown) Total() money.Amount {
	return b.Pension.Add(b.Unemployment).Add(b.Health).Add(b.Care)
}

func (p Params) careRate(opts Options) money.Amount {
	rate := p.CareRate
	if opts.Saxony {
		rate = p.CareRateSaxony
	}
	if opts.Childless {
		rate = rate.Add(p.ChildlessSurcharge)
	}
	discount := p.ChildDiscount.Mul(money.FromInt(int64(opts.DiscountUnits)))
	return rate.Sub(discount).FloorZero()
}

// cappedBase clamps a monthly wage at one twelfth of the annual ceiling.
func cappedBase(monthlyGross, annualCeiling money.Amount) (money.Amount, error) {
	monthlyCeiling, err := annualCeiling.Div(money.FromInt(12), 2, money.RoundDown)
	if err != nil {
		return money.Zero(), err
	}
	return monthlyGross.Min(monthlyCeiling), nil
}
