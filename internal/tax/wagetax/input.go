package wagetax

import "lohnrechner/internal/money"

// Period encodes the pay-period length of the wage input.
type Period int

const (
	PeriodYear Period = iota + 1
	PeriodMonth
	PeriodWeek
	PeriodDay
)

// Input mirrors the named variables of the statutory procedure for one
// calculation. Monetary fields are euro amounts for the given pay period
// unless noted otherwise.
type Input struct {
	Period Period

	// Wage is the gross cash wage for the period. PensionPayments is the
	// part of Wage that is supplementary pension income; OneOffPayment is
	// an irregular payment on an annual basis, taxed via the delta pass.
	Wage            money.Amount
	PensionPayments money.Amount
	OneOffPayment   money.Amount

	// PensionStartYear is the calendar year the pension commenced; only
	// read when PensionPayments is positive.
	PensionStartYear int

	TaxClass int

	// ChildUnits counts child-allowance units; one unit per fully
	// attributed child, half units allowed.
	ChildUnits money.Amount

	// BirthYear enables the age-related allowance; zero means unknown.
	BirthYear int

	// Health and long-term-care parameters. HealthSupplementRate is the
	// full supplemental contribution rate as a fraction (e.g. 0.025).
	PrivateHealth          bool
	HealthSupplementRate   money.Amount
	CareChildless          bool
	CareChildDiscountUnits int
	Saxony                 bool

	// PensionExempt marks employees outside statutory pension insurance.
	PensionExempt bool
}

// Output carries the raw period results of the staged procedure.
type Output struct {
	// WageTax, SolidaritySurcharge and ChurchTaxBase are period amounts in
	// euros at two decimal places; taxes on a one-off payment are included.
	WageTax             money.Amount
	SolidaritySurcharge money.Amount
	ChurchTaxBase       money.Amount

	// PrivateInsuranceDeduction is the statutory substitute deduction for
	// privately insured employees, scaled to the pay period.
	PrivateInsuranceDeduction money.Amount
}
