package model

// Group is one node of the display-group forest. The forest is stored as a
// nested document, the same shape the dashboard edits: each node carries its
// subgroups inline.
type Group struct {
	ID        string  `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Subgroups []Group `json:"subgroups,omitempty"`
}
