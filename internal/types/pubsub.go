package types

const (
	// TopicCouponAssigned carries one message per newly created coupon assignment
	TopicCouponAssigned = "coupon.assigned"
)
