package internal

const (
	DotEnvPath         = "./.env"
	ConfigPath         = "config.json"
	MigrationsDir      = "migrations"
	SessionCookie      = "session"
	AuthTokenHeader    = "X-Auth-Token"
	DefaultCatalogPath = "catalog.yaml"
)
