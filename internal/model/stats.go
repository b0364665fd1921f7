package model

// Stats is the admin dashboard snapshot. Each count is independently
// accurate at read time; the set as a whole is not taken at one instant.
// This is a reporting surface, not a transaction boundary.
type Stats struct {
	UsersCount     int `json:"usersCount"`
	HistoryCount   int `json:"historyCount"`
	ProfilesCount  int `json:"profilesCount"`
	RecentSearches int `json:"recentSearches"` // history entries in the trailing 24h
	RecentUsers    int `json:"recentUsers"`    // registrations in the trailing 7 days
}

// UserExport is the full data snapshot for one user, shaped for
// disclosure/portability requests. History is ordered newest-first.
// Profile is nil when the user never created one.
type UserExport struct {
	UserInfo UserSummary    `json:"user_info"`
	History  []HistoryEntry `json:"symptom_history"`
	Profile  *Profile       `json:"user_profile"`
}
