package site

import (
	"github.com/hotelhub/hotelhub/internal/types"
)

// Site is a physical hotel location that owns rooms
type Site struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	types.BaseModel
}
