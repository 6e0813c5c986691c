package tax

import "lohnrechner/internal/money"

// TaxBreakdown lists the monthly withheld taxes.
type TaxBreakdown struct {
	Lohnsteuer    money.Amount `json:"lohnsteuer"`
	Soli          money.Amount `json:"soli"`
	Kirchensteuer money.Amount `json:"kirchensteuer"`
}

// SocialSecurityBreakdown lists the monthly employee contributions.
type SocialSecurityBreakdown struct {
	KV money.Amount `json:"kv"`
	RV money.Amount `json:"rv"`
	AV money.Amount `json:"av"`
	PV money.Amount `json:"pv"`
}

// Result is the monthly net-salary breakdown. All amounts carry exactly two
// decimal places; rounding happens once, at this boundary.
type Result struct {
	Netto          money.Amount            `json:"netto"`
	Taxes          TaxBreakdown            `json:"taxes"`
	SocialSecurity SocialSecurityBreakdown `json:"socialSecurity"`
}
