package domain

// Category labels ledger entries. Categories form a global registry shared by all associations.
type Category struct {
	CategoryID int64     `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	Type       EntryType `json:"type"`
	Version    int       `json:"version"`
}
