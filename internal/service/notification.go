package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/hotelhub/hotelhub/internal/domain/coupon"
	"github.com/hotelhub/hotelhub/internal/domain/couponassignment"
	"github.com/hotelhub/hotelhub/internal/domain/user"
	"github.com/hotelhub/hotelhub/internal/email"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CouponAssignedEvent is published once per newly created assignment
type CouponAssignedEvent struct {
	AssignmentID   string             `json:"assignment_id"`
	CouponID       string             `json:"coupon_id"`
	CouponCode     string             `json:"coupon_code"`
	RecipientID    string             `json:"recipient_id"`
	RecipientEmail string             `json:"recipient_email"`
	RecipientName  string             `json:"recipient_name"`
	DiscountType   types.DiscountType `json:"discount_type"`
	Value          decimal.Decimal    `json:"value"`
	EndDate        time.Time          `json:"end_date"`
}

// NotificationService tells guests about coupons granted to them. Delivery
// is best-effort: nothing here fails the operation that triggered it.
type NotificationService interface {
	PublishCouponAssigned(ctx context.Context, c *coupon.Coupon, recipient *user.User, a *couponassignment.CouponAssignment)
	HandleCouponAssigned(msg *message.Message) error
}

type notificationService struct {
	ServiceParams
}

func NewNotificationService(params ServiceParams) NotificationService {
	return &notificationService{
		ServiceParams: params,
	}
}

func (s *notificationService) PublishCouponAssigned(ctx context.Context, c *coupon.Coupon, recipient *user.User, a *couponassignment.CouponAssignment) {
	if s.NotificationPublisher == nil {
		return
	}

	event := CouponAssignedEvent{
		AssignmentID:   a.ID,
		CouponID:       c.ID,
		CouponCode:     c.Code,
		RecipientID:    recipient.ID,
		RecipientEmail: recipient.Email,
		RecipientName:  recipient.Name,
		DiscountType:   c.DiscountType,
		Value:          c.Value,
		EndDate:        c.EndDate,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.Logger.Errorw("failed to marshal coupon assigned event", "assignment_id", a.ID, "error", err)
		return
	}

	msg := message.NewMessage(types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT), payload)
	if requestID := types.GetRequestID(ctx); requestID != "" {
		middleware.SetCorrelationID(requestID, msg)
	}

	if err := s.NotificationPublisher.Publish(ctx, types.TopicCouponAssigned, msg); err != nil {
		s.Logger.Errorw("failed to publish coupon assigned event",
			"assignment_id", a.ID,
			"coupon_id", c.ID,
			"recipient_id", recipient.ID,
			"error", err,
		)
		return
	}

	s.Logger.Debugw("published coupon assigned event", "assignment_id", a.ID, "message_uuid", msg.UUID)
}

// HandleCouponAssigned emails the recipient. Errors are returned to the
// router, which logs them and parks the message.
func (s *notificationService) HandleCouponAssigned(msg *message.Message) error {
	var event CouponAssignedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return ierr.WithError(err).
			WithHint("Malformed coupon assigned event").
			Mark(ierr.ErrValidation)
	}

	if event.RecipientEmail == "" {
		s.Logger.Warnw("recipient has no email, skipping coupon notification", "assignment_id", event.AssignmentID)
		return nil
	}

	resp, err := s.Email.SendEmailWithTemplate(msg.Context(), email.SendEmailWithTemplateRequest{
		ToAddress: event.RecipientEmail,
		Subject:   fmt.Sprintf("Your coupon %s", event.CouponCode),
		Template:  email.TemplateCouponAssigned,
		Data: map[string]interface{}{
			"recipient_name": event.RecipientName,
			"coupon_code":    event.CouponCode,
			"discount":       formatDiscount(event.DiscountType, event.Value),
			"valid_until":    event.EndDate.Format("2006-01-02"),
		},
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("coupon notification processed",
		"assignment_id", event.AssignmentID,
		"recipient_id", event.RecipientID,
		"sent", resp != nil && resp.Success,
	)
	return nil
}

func formatDiscount(kind types.DiscountType, value decimal.Decimal) string {
	if kind == types.DiscountTypePercentage {
		return value.String() + "%"
	}
	return value.StringFixed(2)
}
