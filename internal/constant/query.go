package constant

const (
	LeaderboardLimit = 100

	LeaderboardOrderRecord   = "record"
	LeaderboardOrderMaxCombo = "maxcombo"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// LeaderboardOrderColumns maps an accepted order parameter to its column.
// The map must not be modified.
var LeaderboardOrderColumns = map[string]string{
	LeaderboardOrderRecord:   "record",
	LeaderboardOrderMaxCombo: "max_combo",
}
