package service

import (
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/stretchr/testify/suite"
)

type NotificationServiceSuite struct {
	hotelSuite
}

func TestNotificationService(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) TestCouponAssignedIsEmailed() {
	c := s.validCoupon("WELCOME", types.DiscountTypePercentage, 15, 10)
	_, err := s.ledger.AssignCoupon(s.GetContext(), c.ID, s.testData.guest.ID)
	s.NoError(err)

	messages := s.GetPubSub().GetMessages(types.TopicCouponAssigned)
	s.Require().Len(messages, 1)
	s.True(strings.HasPrefix(messages[0].UUID, types.UUID_PREFIX_EVENT+"_"))

	event := CouponAssignedEvent{}
	s.NoError(json.Unmarshal(messages[0].Payload, &event))
	s.Equal(c.Code, event.CouponCode)
	s.Equal(s.testData.guest.Email, event.RecipientEmail)

	s.NoError(s.notification.HandleCouponAssigned(messages[0]))

	sent := s.GetEmailSender().Sent()
	s.Require().Len(sent, 1)
	s.Equal(s.testData.guest.Email, sent[0].To)
	s.Contains(sent[0].Subject, "WELCOME")
	s.Contains(sent[0].Text, "WELCOME")
	s.Contains(sent[0].Text, "15%")
	s.Contains(sent[0].Text, s.testData.guest.Name)
	s.NotContains(sent[0].Text, "{{")
}

func (s *NotificationServiceSuite) TestHandleCouponAssigned() {
	tests := []struct {
		name          string
		payload       string
		expectedSent  int
		expectedError func(error) bool
	}{
		{
			name:         "recipient_without_email_is_skipped",
			payload:      `{"assignment_id":"cpa_1","coupon_code":"X","recipient_id":"user_1"}`,
			expectedSent: 0,
		},
		{
			name:          "malformed_payload",
			payload:       `{"assignment_id":`,
			expectedError: ierr.IsValidation,
		},
		{
			name:         "fixed_discount",
			payload:      `{"assignment_id":"cpa_2","coupon_code":"TEN","recipient_email":"ada@example.com","discount_type":"fixed","value":"10"}`,
			expectedSent: 1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.GetEmailSender().Reset()
			err := s.notification.HandleCouponAssigned(message.NewMessage(watermill.NewUUID(), []byte(tt.payload)))
			if tt.expectedError != nil {
				s.True(tt.expectedError(err), "unexpected error %v", err)
				return
			}
			s.NoError(err)
			s.Len(s.GetEmailSender().Sent(), tt.expectedSent)
		})
	}
}

func (s *NotificationServiceSuite) TestPublishWithoutPublisherIsNoop() {
	params := s.params
	params.NotificationPublisher = nil
	ledger := NewCouponAssignmentService(params, NewNotificationService(params))

	c := s.validCoupon("QUIET", types.DiscountTypeFixed, 10, 10)
	_, err := ledger.AssignCoupon(s.GetContext(), c.ID, s.testData.guest.ID)
	s.NoError(err)
	s.Empty(s.GetPubSub().GetMessages(types.TopicCouponAssigned))
}
