package utils

// Redis key prefixes.
const (
	SessionCachePrefix  = "session:"
	CatalogCachePrefix  = "catalog:"
	HoursCachePrefix    = "hours:"
	SettingsCachePrefix = "settings:"
)
