package postgres

import (
	"fmt"
	"strings"

	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/lib/pq"
)

// lockForRedemption locks a coupon or assignment row for the rest of the
// transaction. NO KEY UPDATE does not conflict with the KEY SHARE locks the
// foreign key checks of a reservation insert hold on the same rows.
const lockForRedemption = " FOR NO KEY UPDATE"

// queryBuilder accumulates WHERE conditions written with ? placeholders;
// the caller rebinds the final statement for the driver.
type queryBuilder struct {
	conditions []string
	args       []interface{}
}

func (b *queryBuilder) where(condition string, args ...interface{}) *queryBuilder {
	b.conditions = append(b.conditions, condition)
	b.args = append(b.args, args...)
	return b
}

func (b *queryBuilder) whereIn(column string, values []string) *queryBuilder {
	if len(values) == 0 {
		return b
	}
	return b.where(column+" = ANY(?)", pq.Array(values))
}

func (b *queryBuilder) whereStatus(filter types.BaseFilter) *queryBuilder {
	if filter == nil {
		return b.where("status = ?", string(types.StatusPublished))
	}
	return b.where("status = ?", filter.GetStatus())
}

func (b *queryBuilder) clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conditions, " AND ")
}

// paginate appends ORDER BY, LIMIT and OFFSET. Sort columns outside
// sortable fall back to created_at.
func (b *queryBuilder) paginate(query string, filter types.BaseFilter, sortable ...string) string {
	if filter == nil {
		return query + " ORDER BY created_at DESC"
	}

	sort := types.FILTER_DEFAULT_SORT
	for _, column := range sortable {
		if column == filter.GetSort() {
			sort = column
			break
		}
	}
	order := "DESC"
	if filter.GetOrder() == types.OrderAsc {
		order = "ASC"
	}

	query = fmt.Sprintf("%s ORDER BY %s %s, id %s", query, sort, order, order)
	if !filter.IsUnlimited() {
		query += " LIMIT ?"
		b.args = append(b.args, filter.GetLimit())
	}
	if filter.GetOffset() > 0 {
		query += " OFFSET ?"
		b.args = append(b.args, filter.GetOffset())
	}
	return query
}

// baseFilter avoids wrapping a nil *QueryFilter in a non-nil interface
func baseFilter(f *types.QueryFilter) types.BaseFilter {
	if f == nil {
		return nil
	}
	return f
}
