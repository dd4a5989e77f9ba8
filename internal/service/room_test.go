package service

import (
	"testing"

	"github.com/hotelhub/hotelhub/internal/api/dto"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RoomServiceSuite struct {
	hotelSuite
}

func TestRoomService(t *testing.T) {
	suite.Run(t, new(RoomServiceSuite))
}

func (s *RoomServiceSuite) TestCreateSiteAndRoomType() {
	st, err := s.sites.CreateSite(s.GetContext(), dto.CreateSiteRequest{Name: "Old Town"})
	s.NoError(err)

	_, err = s.sites.CreateSite(s.GetContext(), dto.CreateSiteRequest{Name: "old town"})
	s.True(ierr.IsAlreadyExists(err))

	got, err := s.sites.GetSite(s.GetContext(), st.ID)
	s.NoError(err)
	s.Equal("Old Town", got.Name)

	_, err = s.sites.CreateRoomType(s.GetContext(), dto.CreateRoomTypeRequest{Name: "Suite"})
	s.NoError(err)
	roomTypes, err := s.sites.ListRoomTypes(s.GetContext(), nil)
	s.NoError(err)
	s.Len(roomTypes.Items, 2)
}

func (s *RoomServiceSuite) TestCreateRoom() {
	tests := []struct {
		name          string
		request       dto.CreateRoomRequest
		expectedError func(error) bool
	}{
		{
			name: "available_by_default",
			request: dto.CreateRoomRequest{
				Number: "102", SiteID: s.testData.site.ID, RoomTypeID: s.testData.roomTyp.ID, NightlyPrice: decimal.NewFromInt(120),
			},
		},
		{
			name: "duplicate_number",
			request: dto.CreateRoomRequest{
				Number: "101", SiteID: s.testData.site.ID, RoomTypeID: s.testData.roomTyp.ID, NightlyPrice: decimal.NewFromInt(120),
			},
			expectedError: ierr.IsAlreadyExists,
		},
		{
			name: "free_room",
			request: dto.CreateRoomRequest{
				Number: "103", SiteID: s.testData.site.ID, RoomTypeID: s.testData.roomTyp.ID,
			},
			expectedError: ierr.IsValidation,
		},
		{
			name: "unknown_site",
			request: dto.CreateRoomRequest{
				Number: "104", SiteID: "site_missing", RoomTypeID: s.testData.roomTyp.ID, NightlyPrice: decimal.NewFromInt(120),
			},
			expectedError: ierr.IsNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.rooms.CreateRoom(s.GetContext(), tt.request)
			if tt.expectedError != nil {
				s.True(tt.expectedError(err), "unexpected error %v", err)
				return
			}
			s.NoError(err)
			s.Equal(types.RoomAvailable, resp.Availability)
		})
	}
}

func (s *RoomServiceSuite) TestUpdateRoomRefreshesCache() {
	rm := s.testData.room
	before, err := s.rooms.GetRoom(s.GetContext(), rm.ID)
	s.NoError(err)
	s.True(decimal.NewFromInt(100).Equal(before.NightlyPrice))

	_, err = s.rooms.UpdateRoom(s.GetContext(), rm.ID, dto.UpdateRoomRequest{
		NightlyPrice: lo.ToPtr(decimal.NewFromInt(140)),
	})
	s.NoError(err)

	after, err := s.rooms.GetRoom(s.GetContext(), rm.ID)
	s.NoError(err)
	s.True(decimal.NewFromInt(140).Equal(after.NightlyPrice))

	checkIn, checkOut := s.stay(2)
	quote, err := s.reservations.QuoteReservation(s.as(s.testData.guest), dto.QuoteReservationRequest{
		RoomID: rm.ID, CheckIn: checkIn, CheckOut: checkOut,
	})
	s.NoError(err)
	s.True(decimal.NewFromInt(280).Equal(quote.GrossTotal))

	_, err = s.rooms.UpdateRoom(s.GetContext(), rm.ID, dto.UpdateRoomRequest{})
	s.True(ierr.IsValidation(err))
}

func (s *RoomServiceSuite) TestListRoomsByAvailability() {
	s.createRoom("900", decimal.NewFromInt(90), types.RoomUnavailable)

	filter := types.NewRoomFilter()
	filter.Availability = lo.ToPtr(types.RoomAvailable)
	resp, err := s.rooms.ListRooms(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(s.testData.room.ID, resp.Items[0].ID)
}
