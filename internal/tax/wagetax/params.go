package wagetax

import "lohnrechner/internal/money"

// Params carries every published constant the staged procedure consumes for
// one tax year. Adding a supported year means adding a Params value here;
// the pipeline itself never changes between years.
type Params struct {
	Year int

	// Tariff zone boundaries (annual, full euro). BasicAllowance is the
	// upper end of the no-tax zone, ProgZone1End and ProgZone2End close the
	// two progressive zones, TopZoneStart opens the top flat zone.
	BasicAllowance money.Amount
	ProgZone1End   money.Amount
	ProgZone2End   money.Amount
	TopZoneStart   money.Amount

	// Quadratic and linear tariff coefficients as published.
	Prog1Coeff  money.Amount
	Prog1Linear money.Amount
	Prog2Coeff  money.Amount
	Prog2Linear money.Amount
	Prog2Const  money.Amount
	Rate3       money.Amount
	Rate3Const  money.Amount
	Rate4       money.Amount
	Rate4Const  money.Amount

	// Solidarity surcharge.
	SoliExemption    money.Amount
	SoliRate         money.Amount
	SoliMarginalRate money.Amount

	// Annual allowances.
	ChildAllowance         money.Amount
	EmployeeLumpSum        money.Amount
	PensionerLumpSum       money.Amount
	SpecialExpensesLumpSum money.Amount
	SingleParentRelief     money.Amount

	// Precautionary-expense deduction.
	MinPrecautionCap        money.Amount
	MinPrecautionCapSplit   money.Amount
	MinPrecautionRate       money.Amount
	PensionCeiling          money.Amount
	PensionEmployeeRate     money.Amount
	HealthCeiling           money.Amount
	HealthEmployeeRate      money.Amount
	DefaultHealthSupplement money.Amount
	CareEmployeeRate        money.Amount
	CareEmployeeRateSaxony  money.Amount
	CareChildlessSurcharge  money.Amount
	CareChildDiscount       money.Amount

	// Relief lookup tables, indexed by years since the 2005 reference year
	// and clamped at both ends.
	PensionRelief []PensionReliefEntry
	AgeRelief     []AgeReliefEntry
}

// PensionReliefEntry holds the relief percentage, its cap and the flat
// bonus allowance for one year of pension commencement.
type PensionReliefEntry struct {
	Rate  money.Amount
	Max   money.Amount
	Bonus money.Amount
}

// AgeReliefEntry holds the age-relief percentage and cap for one year.
type AgeReliefEntry struct {
	Rate money.Amount
	Max  money.Amount
}

// reliefTableBase is the reference year of index 0 in both relief tables.
const reliefTableBase = 2005

var years = map[int]Params{
	2025: params2025(),
	2026: params2026(),
}

// ForYear returns the constant set for a supported tax year.
func ForYear(year int) (Params, bool) {
	p, ok := years[year]
	return p, ok
}

// Years lists the supported tax years in ascending order.
func Years() []int {
	out := make([]int, 0, len(years))
	for y := 2000; y < 2100; y++ {
		if _, ok := years[y]; ok {
			out = append(out, y)
		}
	}
	return out
}

func params2025() Params {
	return Params{
		Year:           2025,
		BasicAllowance: money.FromInt(12096),
		ProgZone1End:   money.FromInt(17443),
		ProgZone2End:   money.FromInt(68480),
		TopZoneStart:   money.FromInt(277825),
		Prog1Coeff:     money.MustParse("932.30"),
		Prog1Linear:    money.FromInt(1400),
		Prog2Coeff:     money.MustParse("176.64"),
		Prog2Linear:    money.FromInt(2397),
		Prog2Const:     money.MustParse("1015.13"),
		Rate3:          money.MustParse("0.42"),
		Rate3Const:     money.MustParse("10911.92"),
		Rate4:          money.MustParse("0.45"),
		Rate4Const:     money.MustParse("19246.67"),

		SoliExemption:    money.FromInt(19950),
		SoliRate:         money.MustParse("0.055"),
		SoliMarginalRate: money.MustParse("0.119"),

		ChildAllowance:         money.FromInt(9600),
		EmployeeLumpSum:        money.FromInt(1230),
		PensionerLumpSum:       money.FromInt(102),
		SpecialExpensesLumpSum: money.FromInt(36),
		SingleParentRelief:     money.FromInt(4260),

		MinPrecautionCap:        money.FromInt(1900),
		MinPrecautionCapSplit:   money.FromInt(3000),
		MinPrecautionRate:       money.MustParse("0.12"),
		PensionCeiling:          money.FromInt(96600),
		PensionEmployeeRate:     money.MustParse("0.093"),
		HealthCeiling:           money.FromInt(66150),
		HealthEmployeeRate:      money.MustParse("0.073"),
		DefaultHealthSupplement: money.MustParse("0.025"),
		CareEmployeeRate:        money.MustParse("0.018"),
		CareEmployeeRateSaxony:  money.MustParse("0.023"),
		CareChildlessSurcharge:  money.MustParse("0.006"),
		CareChildDiscount:       money.MustParse("0.0025"),

		PensionRelief: pensionReliefTable(),
		AgeRelief:     ageReliefTable(),
	}
}

func params2026() Params {
	p := params2025()
	p.Year = 2026
	p.BasicAllowance = money.FromInt(12348)
	p.ProgZone1End = money.FromInt(17799)
	p.ProgZone2End = money.FromInt(69878)
	p.Prog1Coeff = money.MustParse("914.51")
	p.Prog2Coeff = money.MustParse("173.10")
	p.Prog2Const = money.MustParse("1034.87")
	p.Rate3Const = money.MustParse("11135.63")
	p.Rate4Const = money.MustParse("19470.38")
	p.ChildAllowance = money.FromInt(9756)
	p.PensionCeiling = money.FromInt(101400)
	p.HealthCeiling = money.FromInt(69750)
	p.DefaultHealthSupplement = money.MustParse("0.029")
	return p
}

// pensionReliefTable builds the published phase-out schedule for the
// pension-income relief: 40% / 3000 / 900 for a 2005 commencement, reduced
// in the legally fixed steps until it reaches zero for 2058.
func pensionReliefTable() []PensionReliefEntry {
	rate := money.MustParse("0.40")
	max := money.FromInt(3000)
	bonus := money.FromInt(900)

	table := make([]PensionReliefEntry, 0, 54)
	for year := 2005; year <= 2058; year++ {
		table = append(table, PensionReliefEntry{Rate: rate.FloorZero(), Max: max.FloorZero(), Bonus: bonus.FloorZero()})

		rateStep, maxStep, bonusStep := reliefStep(year)
		rate = rate.Sub(rateStep)
		max = max.Sub(maxStep)
		bonus = bonus.Sub(bonusStep)
	}
	return table
}

// ageReliefTable builds the matching schedule for the age-related
// allowance: 40% / 1900 for 2005, phased out on the same step pattern.
func ageReliefTable() []AgeReliefEntry {
	rate := money.MustParse("0.40")
	max := money.FromInt(1900)

	table := make([]AgeReliefEntry, 0, 54)
	for year := 2005; year <= 2058; year++ {
		table = append(table, AgeReliefEntry{Rate: rate.FloorZero(), Max: max.FloorZero()})

		rateStep, _, _ := reliefStep(year)
		rate = rate.Sub(rateStep)
		switch {
		case year < 2020:
			max = max.Sub(money.FromInt(76))
		case year < 2022:
			max = max.Sub(money.FromInt(38))
		default:
			max = max.Sub(money.FromInt(19))
		}
	}
	return table
}

// reliefStep returns the annual reduction applied after the given year:
// full steps through 2020, half steps for 2021 and 2022, quarter steps
// thereafter.
func reliefStep(year int) (rate, max, bonus money.Amount) {
	switch {
	case year < 2020:
		return money.MustParse("0.016"), money.FromInt(120), money.FromInt(36)
	case year < 2022:
		return money.MustParse("0.008"), money.FromInt(60), money.FromInt(18)
	default:
		return money.MustParse("0.004"), money.FromInt(30), money.FromInt(9)
	}
}

// reliefIndex clamps a commencement year into the relief tables.
func reliefIndex(startYear, tableLen int) int {
	idx := startYear - reliefTableBase
	if idx < 0 {
		idx = 0
	}
	if idx >= tableLen {
		idx = tableLen - 1
	}
	return idx
}
