package domain

// Action names the operation a Result reports on
type Action string

const (
	ActionAdd        Action = "add"
	ActionRemove     Action = "remove"
	ActionEdit       Action = "edit"
	ActionFavorite   Action = "favorite"
	ActionUnfavorite Action = "unfavorite"
	ActionSave       Action = "save"
)

// Result is the outcome of one store operation as shown to the caller
type Result struct {
	Action   Action
	English  string
	Favorite bool
	// Applied is true once the primary change was written, even if propagation failed afterwards.
	Applied bool
	Message string
	// Cleared lists the stale markers removed by propagation.
	Cleared []Location
}
