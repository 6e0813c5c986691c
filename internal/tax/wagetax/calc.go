// Package wagetax implements the statutory German wage-tax procedure as a
// single staged pipeline driven by per-year published constants. The stage
// ordering and the rounding direction of every step follow the official
// procedure; neither is an implementation choice.
package wagetax

import (
	"errors"
	"fmt"

	"lohnrechner/internal/money"
)

var (
	ErrTaxClass = errors.New("wagetax: tax class must be between 1 and 6")
	ErrPeriod   = errors.New("wagetax: unknown pay period")
)

// Compute executes the full procedure for one input and returns the raw
// period amounts. A fresh computation context is built per call; nothing is
// shared between invocations.
func Compute(p Params, in Input) (Output, error) {
	if in.TaxClass < 1 || in.TaxClass > 6 {
		return Output{}, ErrTaxClass
	}
	if in.Period < PeriodYear || in.Period > PeriodDay {
		return Output{}, ErrPeriod
	}

	ordinary, err := run(p, in, money.Zero())
	if err != nil {
		return Output{}, err
	}

	out := Output{
		WageTax:                   ordinary.periodTax,
		SolidaritySurcharge:       ordinary.periodSolz,
		ChurchTaxBase:             ordinary.periodBase,
		PrivateInsuranceDeduction: ordinary.periodVKV,
	}

	// One-off payments are taxed as the annual delta between a run with and
	// without them. A negative delta is absorbed, not reported.
	if !in.OneOffPayment.IsZero() && !in.OneOffPayment.IsNegative() {
		combined, err := run(p, in, in.OneOffPayment)
		if err != nil {
			return Output{}, err
		}
		out.WageTax = out.WageTax.Add(combined.annualTax.Sub(ordinary.annualTax).FloorZero())
		out.SolidaritySurcharge = out.SolidaritySurcharge.Add(combined.annualSolz.Sub(ordinary.annualSolz).FloorZero())
		out.ChurchTaxBase = out.ChurchTaxBase.Add(combined.annualBase.Sub(ordinary.annualBase).FloorZero())
	}
	return out, nil
}

// result carries one pipeline run's outputs on both the annual and the
// pay-period basis.
type result struct {
	annualTax  money.Amount
	annualSolz money.Amount
	annualBase money.Amount

	periodTax  money.Amount
	periodSolz money.Amount
	periodBase money.Amount
	periodVKV  money.Amount
}

// calc is the computation context threaded through the stages. Fields are
// populated strictly in stage order.
type calc struct {
	p     Params
	in    Input
	extra money.Amount

	wageYear    money.Amount
	pensionYear money.Amount

	fvb  money.Amount // pension-income relief
	fvbz money.Amount // relief bonus allowance
	alte money.Amount // age-related allowance

	zre4   money.Amount // assessable annual income
	zre4vp money.Amount // precaution assessment base

	vsp  money.Amount // precautionary-expense deduction
	vsp3 money.Amount // itemized health/care part

	zve  money.Amount // taxable annual income
	st   money.Amount // annual wage tax
	jbmg money.Amount // surcharge base after child allowance
	solz money.Amount // annual solidarity surcharge
}

func run(p Params, in Input, extra money.Amount) (result, error) {
	c := &calc{p: p, in: in, extra: extra}

	stages := []func() error{
		c.annualize,
		c.pensionRelief,
		c.ageRelief,
		c.assessable,
		c.precaution,
		c.tariff,
		c.childPass,
		c.surcharge,
	}
	for _, stage := range stages {
		if err := stage(); err != nil {
			return result{}, err
		}
	}
	return c.periodize()
}

// annualFactor returns the multiplier and divisor converting a period wage
// to an annual wage.
func (c *calc) annualFactor() (money.Amount, money.Amount) {
	switch c.in.Period {
	case PeriodMonth:
		return money.FromInt(12), money.FromInt(1)
	case PeriodWeek:
		return money.FromInt(360), money.FromInt(7)
	case PeriodDay:
		return money.FromInt(360), money.FromInt(1)
	default:
		return money.FromInt(1), money.FromInt(1)
	}
}

func (c *calc) toAnnual(v money.Amount) (money.Amount, error) {
	num, den := c.annualFactor()
	return v.Mul(num).Div(den, 2, money.RoundDown)
}

func (c *calc) toPeriod(v money.Amount) (money.Amount, error) {
	num, den := c.annualFactor()
	return v.Mul(den).Div(num, 2, money.RoundDown)
}

func (c *calc) annualize() error {
	wage, err := c.toAnnual(c.in.Wage)
	if err != nil {
		return fmt.Errorf("annualize wage: %w", err)
	}
	pension, err := c.toAnnual(c.in.PensionPayments)
	if err != nil {
		return fmt.Errorf("annualize pension payments: %w", err)
	}
	c.wageYear = wage.Add(c.extra)
	c.pensionYear = pension
	return nil
}

func (c *calc) pensionRelief() error {
	if c.pensionYear.IsZero() || c.in.PensionStartYear == 0 {
		return nil
	}
	entry := c.p.PensionRelief[reliefIndex(c.in.PensionStartYear, len(c.p.PensionRelief))]
	c.fvb = c.pensionYear.Mul(entry.Rate).Rescale(2, money.RoundUp).Min(entry.Max)
	c.fvbz = entry.Bonus.Min(c.pensionYear.Sub(c.fvb).FloorZero()).Rescale(0, money.RoundUp)
	return nil
}

func (c *calc) ageRelief() error {
	if c.in.BirthYear == 0 || c.p.Year-c.in.BirthYear < 65 {
		return nil
	}
	entry := c.p.AgeRelief[reliefIndex(c.in.BirthYear+65, len(c.p.AgeRelief))]
	base := c.wageYear.Sub(c.pensionYear).FloorZero()
	c.alte = base.Mul(entry.Rate).Rescale(0, money.RoundUp).Min(entry.Max)
	return nil
}

func (c *calc) assessable() error {
	c.zre4 = c.wageYear.Sub(c.fvb).Sub(c.fvbz).Sub(c.alte).FloorZero()
	c.zre4vp = c.wageYear.Sub(c.fvb).Sub(c.fvbz).FloorZero()
	return nil
}

func (c *calc) precaution() error {
	vsp1 := money.Zero()
	if !c.in.PensionExempt {
		vsp1 = c.zre4vp.Min(c.p.PensionCeiling).Mul(c.p.PensionEmployeeRate).Rescale(2, money.RoundDown)
	}

	cap := c.p.MinPrecautionCap
	if c.in.TaxClass == 3 {
		cap = c.p.MinPrecautionCapSplit
	}
	vsp2 := c.zre4vp.Mul(c.p.MinPrecautionRate).Rescale(2, money.RoundDown).Min(cap)

	healthRate := c.p.HealthEmployeeRate.Add(c.in.HealthSupplementRate.Mul(money.MustParse("0.5")))
	c.vsp3 = c.zre4vp.Min(c.p.HealthCeiling).Mul(healthRate.Add(c.careRate())).Rescale(2, money.RoundDown)

	flat := vsp1.Add(vsp2).Rescale(0, money.RoundUp)
	itemized := vsp1.Add(c.vsp3).Rescale(0, money.RoundUp)
	c.vsp = flat.Max(itemized)
	return nil
}

// careRate is the employee's long-term-care contribution rate including the
// childless surcharge and the multi-child discount.
func (c *calc) careRate() money.Amount {
	rate := c.p.CareEmployeeRate
	if c.in.Saxony {
		rate = c.p.CareEmployeeRateSaxony
	}
	if c.in.CareChildless {
		rate = rate.Add(c.p.CareChildlessSurcharge)
	}
	discount := c.p.CareChildDiscount.Mul(money.FromInt(int64(c.in.CareChildDiscountUnits)))
	return rate.Sub(discount).FloorZero()
}

func (c *calc) tariff() error {
	deductions := c.vsp
	if c.in.TaxClass <= 5 {
		// The pensioner lump sum covers pension income; the employee lump
		// sum only applies when there is active wage beyond it.
		if !c.pensionYear.IsZero() {
			deductions = deductions.Add(c.p.PensionerLumpSum)
		}
		if c.wageYear.Cmp(c.pensionYear) > 0 {
			deductions = deductions.Add(c.p.EmployeeLumpSum)
		}
		deductions = deductions.Add(c.p.SpecialExpensesLumpSum)
	}
	if c.in.TaxClass == 2 {
		deductions = deductions.Add(c.p.SingleParentRelief)
	}
	c.zve = c.zre4.Sub(deductions).FloorZero()

	st, err := c.taxOn(c.zve)
	if err != nil {
		return err
	}
	c.st = st
	return nil
}

// childPass recomputes the tariff with the child allowance deducted. The
// result feeds the solidarity surcharge and the church-tax base only; the
// wage tax itself stays on the allowance-free figure.
func (c *calc) childPass() error {
	kfb := c.in.ChildUnits.Mul(c.p.ChildAllowance)
	jbmg, err := c.taxOn(c.zve.Sub(kfb).FloorZero())
	if err != nil {
		return err
	}
	c.jbmg = jbmg
	return nil
}

func (c *calc) surcharge() error {
	free := c.p.SoliExemption.Mul(c.splitting())
	if c.jbmg.Cmp(free) <= 0 {
		return nil
	}
	flat := c.jbmg.Mul(c.p.SoliRate)
	marginal := c.jbmg.Sub(free).Mul(c.p.SoliMarginalRate)
	c.solz = flat.Min(marginal).Rescale(2, money.RoundDown)
	return nil
}

func (c *calc) periodize() (result, error) {
	res := result{
		annualTax:  c.st,
		annualSolz: c.solz,
		annualBase: c.jbmg,
	}
	var err error
	if res.periodTax, err = c.toPeriod(c.st); err != nil {
		return result{}, err
	}
	if res.periodSolz, err = c.toPeriod(c.solz); err != nil {
		return result{}, err
	}
	if res.periodBase, err = c.toPeriod(c.jbmg); err != nil {
		return result{}, err
	}
	if c.in.PrivateHealth {
		if res.periodVKV, err = c.toPeriod(c.vsp3); err != nil {
			return result{}, err
		}
	}
	return res, nil
}

// splitting returns the tax-class splitting divisor: 2 for the married
// joint class, 1 otherwise.
func (c *calc) splitting() money.Amount {
	if c.in.TaxClass == 3 {
		return money.FromInt(2)
	}
	return money.FromInt(1)
}

// taxOn evaluates the tariff for an annual taxable income, applying the
// splitting divisor for classes 1 to 4 and the doubling approximation for
// classes 5 and 6. The income is truncated to full euros first, as is the
// resulting tax.
func (c *calc) taxOn(zve money.Amount) (money.Amount, error) {
	x := zve.FloorZero().Rescale(0, money.RoundDown)
	if c.in.TaxClass >= 5 {
		return c.tax56(x)
	}

	split := c.splitting()
	if split.Cmp(money.FromInt(1)) == 0 {
		return c.tariffAt(x)
	}
	half, err := x.Div(split, 0, money.RoundDown)
	if err != nil {
		return money.Zero(), err
	}
	st, err := c.tariffAt(half)
	if err != nil {
		return money.Zero(), err
	}
	return st.Mul(split), nil
}

// tariffAt evaluates the published piecewise tariff at one full-euro income.
func (c *calc) tariffAt(x money.Amount) (money.Amount, error) {
	switch {
	case x.Cmp(c.p.BasicAllowance) <= 0:
		return money.Zero(), nil

	case x.Cmp(c.p.ProgZone1End) <= 0:
		y, err := x.Sub(c.p.BasicAllowance).Div(money.FromInt(10000), 6, money.RoundDown)
		if err != nil {
			return money.Zero(), err
		}
		rw := y.Mul(c.p.Prog1Coeff).Add(c.p.Prog1Linear)
		return rw.Mul(y).Rescale(0, money.RoundDown), nil

	case x.Cmp(c.p.ProgZone2End) <= 0:
		z, err := x.Sub(c.p.ProgZone1End).Div(money.FromInt(10000), 6, money.RoundDown)
		if err != nil {
			return money.Zero(), err
		}
		rw := z.Mul(c.p.Prog2Coeff).Add(c.p.Prog2Linear)
		return rw.Mul(z).Add(c.p.Prog2Const).Rescale(0, money.RoundDown), nil

	case x.Cmp(c.p.TopZoneStart) <= 0:
		return x.Mul(c.p.Rate3).Sub(c.p.Rate3Const).Rescale(0, money.RoundDown), nil

	default:
		return x.Mul(c.p.Rate4).Sub(c.p.Rate4Const).Rescale(0, money.RoundDown), nil
	}
}

// tax56 implements the withholding approximation for the secondary-earner
// classes: the tariff difference at 1.25x and 0.75x, doubled, floored at 14%
// of the income, with incomes above the flat-zone boundaries taxed there at
// the marginal rate directly. The direct tariff must not be substituted
// here; the approximation is the prescribed behavior.
func (c *calc) tax56(x money.Amount) (money.Amount, error) {
	zzx := x
	marginal := money.Zero()

	switch {
	case zzx.Cmp(c.p.TopZoneStart) > 0:
		marginal = zzx.Sub(c.p.TopZoneStart).Mul(c.p.Rate4).Rescale(0, money.RoundDown)
		zzx = c.p.TopZoneStart
	case zzx.Cmp(c.p.ProgZone2End) > 0:
		marginal = zzx.Sub(c.p.ProgZone2End).Mul(c.p.Rate3).Rescale(0, money.RoundDown)
		zzx = c.p.ProgZone2End
	}

	hi, err := c.tariffAt(zzx.Mul(money.MustParse("1.25")).Rescale(0, money.RoundDown))
	if err != nil {
		return money.Zero(), err
	}
	lo, err := c.tariffAt(zzx.Mul(money.MustParse("0.75")).Rescale(0, money.RoundDown))
	if err != nil {
		return money.Zero(), err
	}
	diff := hi.Sub(lo).Mul(money.FromInt(2))
	floor := zzx.Mul(money.MustParse("0.14")).Rescale(0, money.RoundDown)

	return diff.Max(floor).Add(marginal), nil
}
