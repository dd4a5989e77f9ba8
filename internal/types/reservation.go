package types

import (
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/samber/lo"
)

// ReservationStatus is the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusCheckedIn, ReservationStatusCancelled},
	ReservationStatusCheckedIn: {ReservationStatusCheckedOut},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	return lo.Contains(reservationTransitions[s], next)
}

// IsTerminal reports whether no further transition is possible
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

func (s ReservationStatus) Validate() error {
	switch s {
	case ReservationStatusPending, ReservationStatusCheckedIn,
		ReservationStatusCheckedOut, ReservationStatusCancelled:
		return nil
	}
	return ierr.NewError("invalid reservation status").
		WithHint("Unknown reservation status").
		WithReportableDetails(map[string]any{"status": s}).
		Mark(ierr.ErrValidation)
}

type ReservationFilter struct {
	*QueryFilter
	*TimeRangeFilter

	ReservationIDs    []string            `json:"reservation_ids,omitempty" form:"reservation_ids"`
	RecipientID       string              `json:"recipient_id,omitempty" form:"recipient_id"`
	RoomID            string              `json:"room_id,omitempty" form:"room_id"`
	ReservationStatus []ReservationStatus `json:"reservation_status,omitempty" form:"reservation_status"`
}

func NewReservationFilter() *ReservationFilter {
	return &ReservationFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitReservationFilter() *ReservationFilter {
	return &ReservationFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *ReservationFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	for _, s := range f.ReservationStatus {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
