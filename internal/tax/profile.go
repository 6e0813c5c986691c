// Package tax maps a salary profile onto the statutory wage-tax procedure
// and the social-insurance contribution rules and assembles the net-salary
// result.
package tax

import (
	"errors"
	"fmt"

	"lohnrechner/internal/money"
	"lohnrechner/internal/tax/wagetax"
)

// ErrInvalidProfile marks a profile that violates the calculation
// preconditions. The caller validated formats upstream; this guards the
// legal input domain.
var ErrInvalidProfile = errors.New("tax: invalid profile")

// State identifies a German federal state.
type State string

const (
	StateBadenWuerttemberg     State = "BW"
	StateBayern                State = "BY"
	StateBerlin                State = "BE"
	StateBrandenburg           State = "BB"
	StateBremen                State = "HB"
	StateHamburg               State = "HH"
	StateHessen                State = "HE"
	StateMecklenburgVorpommern State = "MV"
	StateNiedersachsen         State = "NI"
	StateNordrheinWestfalen    State = "NW"
	StateRheinlandPfalz        State = "RP"
	StateSaarland              State = "SL"
	StateSachsen               State = "SN"
	StateSachsenAnhalt         State = "ST"
	StateSchleswigHolstein     State = "SH"
	StateThueringen            State = "TH"
)

var states = map[State]struct{}{
	StateBadenWuerttemberg: {}, StateBayern: {}, StateBerlin: {},
	StateBrandenburg: {}, StateBremen: {}, StateHamburg: {},
	StateHessen: {}, StateMecklenburgVorpommern: {}, StateNiedersachsen: {},
	StateNordrheinWestfalen: {}, StateRheinlandPfalz: {}, StateSaarland: {},
	StateSachsen: {}, StateSachsenAnhalt: {}, StateSchleswigHolstein: {},
	StateThueringen: {},
}

// Profile is the immutable input of one net-salary calculation.
type Profile struct {
	YearlySalary money.Amount `json:"yearlySalary"`
	Year         int          `json:"year"`
	TaxClass     int          `json:"taxClass"`
	ChurchTax    bool         `json:"churchTax"`
	HasChildren  bool         `json:"hasChildren"`
	ChildCount   int          `json:"childCount"`
	State        State        `json:"state"`

	PrivateHealthInsurance bool `json:"isPrivateHealthInsurance"`

	// HealthSupplementRate is the fund's full supplemental rate as a
	// fraction (e.g. 0.025); nil selects the published average.
	HealthSupplementRate *money.Amount `json:"healthInsuranceAddOnRate,omitempty"`

	// BirthYear enables age-related allowances; zero means unknown.
	BirthYear int `json:"birthYear,omitempty"`
}

// Validate checks the calculation preconditions. Unsupported years and
// out-of-range tax classes are rejected here rather than silently coerced.
func (p Profile) Validate() error {
	if p.YearlySalary.IsZero() || p.YearlySalary.IsNegative() {
		return fmt.Errorf("%w: yearly salary must be positive", ErrInvalidProfile)
	}
	if _, ok := wagetax.ForYear(p.Year); !ok {
		return fmt.Errorf("%w: tax year %d is not supported", ErrInvalidProfile, p.Year)
	}
	if p.TaxClass < 1 || p.TaxClass > 6 {
		return fmt.Errorf("%w: tax class %d outside 1..6", ErrInvalidProfile, p.TaxClass)
	}
	if p.ChildCount < 0 {
		return fmt.Errorf("%w: child count must not be negative", ErrInvalidProfile)
	}
	if p.State != "" {
		if _, ok := states[p.State]; !ok {
			return fmt.Errorf("%w: unknown federal state %q", ErrInvalidProfile, p.State)
		}
	}
	if p.HealthSupplementRate != nil && p.HealthSupplementRate.IsNegative() {
		return fmt.Errorf("%w: health supplement rate must not be negative", ErrInvalidProfile)
	}
	if p.BirthYear != 0 && (p.BirthYear < 1900 || p.BirthYear > p.Year) {
		return fmt.Errorf("%w: implausible birth year %d", ErrInvalidProfile, p.BirthYear)
	}
	return nil
}

// churchRate is the state's church-tax rate on the church-tax base.
func churchRate(s State) money.Amount {
	if s == StateBadenWuerttemberg || s == StateBayern {
		return money.MustParse("0.08")
	}
	return money.MustParse("0.09")
}
