package types

import (
	"time"

	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/samber/lo"
)

const (
	FILTER_DEFAULT_LIMIT = 50
	FILTER_MAX_LIMIT     = 1000
	FILTER_DEFAULT_SORT  = "created_at"
	FILTER_DEFAULT_ORDER = OrderDesc

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// BaseFilter is what list queries need from any filter
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	GetStatus() string
	GetSort() string
	GetOrder() string
	Validate() error
	IsUnlimited() bool
}

// QueryFilter holds paging, ordering and the row status. Nil fields fall
// back to defaults; a nil Limit means no limit.
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int    `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
	Status *Status `json:"status,omitempty" form:"status"`
	Sort   *string `json:"sort,omitempty" form:"sort"`
	Order  *string `json:"order,omitempty" form:"order" validate:"omitempty,oneof=asc desc"`
}

func NewDefaultQueryFilter() *QueryFilter {
	f := NewNoLimitQueryFilter()
	f.Limit = lo.ToPtr(FILTER_DEFAULT_LIMIT)
	return f
}

// NewNoLimitQueryFilter is used for internal scans that must see every row
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Offset: lo.ToPtr(0),
		Status: lo.ToPtr(StatusPublished),
		Sort:   lo.ToPtr(FILTER_DEFAULT_SORT),
		Order:  lo.ToPtr(FILTER_DEFAULT_ORDER),
	}
}

func (f QueryFilter) IsUnlimited() bool { return f.Limit == nil }
func (f QueryFilter) GetLimit() int     { return lo.FromPtr(f.Limit) }
func (f QueryFilter) GetOffset() int    { return lo.FromPtr(f.Offset) }

func (f QueryFilter) GetSort() string {
	return lo.CoalesceOrEmpty(lo.FromPtr(f.Sort), FILTER_DEFAULT_SORT)
}

func (f QueryFilter) GetOrder() string {
	return lo.CoalesceOrEmpty(lo.FromPtr(f.Order), FILTER_DEFAULT_ORDER)
}

func (f QueryFilter) GetStatus() string {
	return string(lo.FromPtrOr(f.Status, StatusPublished))
}

func (f QueryFilter) Validate() error {
	switch {
	case f.Limit != nil && (*f.Limit < 1 || *f.Limit > FILTER_MAX_LIMIT):
		return invalidFilter("limit must be between 1 and 1000")
	case f.Offset != nil && *f.Offset < 0:
		return invalidFilter("offset must be non-negative")
	case f.Order != nil && *f.Order != OrderAsc && *f.Order != OrderDesc:
		return invalidFilter("order must be asc or desc")
	}
	return nil
}

// TimeRangeFilter selects rows overlapping [StartTime, EndTime)
type TimeRangeFilter struct {
	StartTime *time.Time `json:"start_time,omitempty" form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   *time.Time `json:"end_time,omitempty" form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (f TimeRangeFilter) Validate() error {
	if f.StartTime != nil && f.EndTime != nil && f.EndTime.Before(*f.StartTime) {
		return invalidFilter("end_time must not be before start_time")
	}
	return nil
}

func invalidFilter(msg string) error {
	return ierr.NewError(msg).WithHint(msg).Mark(ierr.ErrValidation)
}
