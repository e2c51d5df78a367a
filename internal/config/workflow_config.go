package config

const (
	// Reports
	MaxReportImages = 5

	// Accounts
	MinPasswordLength = 6

	// Dashboard
	RecentItemsLimit = 5
)
