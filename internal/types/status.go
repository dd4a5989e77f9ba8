package types

// Status tracks the row lifecycle of a persisted resource and decides whether
// it is returned by list queries. Keep in sync with the migrations.
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
	StatusArchived  Status = "archived"
)
