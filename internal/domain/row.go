package domain

// Arrow separates an action from the commit it applies to in a ResultRow.
const Arrow = "->"

// ResultRow is one line of output: what happened, an arrow or blank, and the commit summary.
type ResultRow struct {
	Status      string
	Arrow       string
	Description string
}

// Cells returns the row as its three columns.
func (r ResultRow) Cells() []string {
	return []string{r.Status, r.Arrow, r.Description}
}

// Action identifies one of the three marking actions.
type Action string

const (
	ActionTagUpstream Action = "tag_upstream"
	ActionTagHead     Action = "tag_head"
	ActionBranchHead  Action = "branch_head"
)
