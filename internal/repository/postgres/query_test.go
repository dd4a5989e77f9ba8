package postgres

import (
	"testing"

	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

// Reservation inserts take KEY SHARE locks on the coupon and assignment they
// reference. The redemption locks must not conflict with those, or two
// bookings with the same code deadlock.
func TestRedemptionLocksAllowForeignKeyChecks(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"coupon", couponQuery("id", lockForRedemption)},
		{"coupon assignment", couponAssignmentByIDQuery + lockForRedemption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.query, "FOR NO KEY UPDATE")
			assert.NotContains(t, tt.query, "FOR UPDATE")
		})
	}

	assert.NotContains(t, couponQuery("code", ""), " FOR ")
}

func TestCouponAssignmentConditions(t *testing.T) {
	filter := types.NewCouponAssignmentFilter()
	filter.CouponID = "cpn_1"
	filter.Consumed = lo.ToPtr(true)

	b := couponAssignmentConditions(filter)
	assert.Equal(t, " WHERE status = ? AND coupon_id = ? AND consumed = ?", b.clause())
	assert.Equal(t, []interface{}{string(types.StatusPublished), "cpn_1", true}, b.args)
}
