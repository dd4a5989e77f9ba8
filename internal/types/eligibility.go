package types

// Eligibility is the outcome of checking whether a coupon assignment may
// discount a reservation. Anything other than EligibilityEligible and
// EligibilityAlreadyApplied yields a zero discount.
type Eligibility string

const (
	EligibilityEligible        Eligibility = "eligible"
	EligibilityAlreadyApplied  Eligibility = "already_applied"
	EligibilityNoCoupon        Eligibility = "no_coupon"
	EligibilityWrongPair       Eligibility = "wrong_pair"
	EligibilityNotYetValid     Eligibility = "not_yet_valid"
	EligibilityExpired         Eligibility = "expired"
	EligibilityInactive        Eligibility = "inactive"
	EligibilityUnauthorized    Eligibility = "unauthorized"
	EligibilityAlreadyConsumed Eligibility = "already_consumed"
	EligibilityExhausted       Eligibility = "exhausted"
)

var eligibilityReasons = map[Eligibility]string{
	EligibilityEligible:        "coupon applied",
	EligibilityAlreadyApplied:  "coupon already applied to this reservation",
	EligibilityNoCoupon:        "no coupon referenced",
	EligibilityWrongPair:       "coupon assignment does not belong to this coupon and guest",
	EligibilityNotYetValid:     "coupon is not valid yet",
	EligibilityExpired:         "coupon has expired",
	EligibilityInactive:        "coupon is inactive",
	EligibilityUnauthorized:    "coupon assignment is not authorized",
	EligibilityAlreadyConsumed: "coupon has already been used",
	EligibilityExhausted:       "coupon has no remaining uses",
}

// Reason returns a short explanation suitable for display
func (e Eligibility) Reason() string {
	return eligibilityReasons[e]
}

// Discounts reports whether the outcome carries a non-zero discount
func (e Eligibility) Discounts() bool {
	return e == EligibilityEligible || e == EligibilityAlreadyApplied
}

// ReasonConflict is reported when a concurrent reservation consumed the
// assignment between the eligibility check and the consume.
const ReasonConflict = "coupon no longer available"
