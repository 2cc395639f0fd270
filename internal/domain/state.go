package domain

// FavoriteState is the lifecycle state of a record inside one source file
type FavoriteState string

const (
	StateUnfavorited FavoriteState = "unfavorited"
	StateFavorited   FavoriteState = "favorited"
	StateRemoved     FavoriteState = "removed"
)

// StateOf returns the favorite state of rec in a file of category c.
// inLedger is consulted for categories whose favorite status lives in the ledger.
func StateOf(rec WordRecord, c Category, inLedger bool) FavoriteState {
	favorite := rec.Favorite
	if c.Policy().LedgerDerived {
		favorite = inLedger
	}
	if favorite {
		return StateFavorited
	}
	return StateUnfavorited
}

// Next returns the state reached by toggling
func (s FavoriteState) Next() FavoriteState {
	switch s {
	case StateUnfavorited:
		return StateFavorited
	case StateFavorited:
		return StateUnfavorited
	}
	return s
}
