package config

const (
	// EnvPrefix is the envconfig prefix for all settings.
	EnvPrefix = "labtrack"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "LABTRACK_DB_DSN"
	EnvDBHost = "LABTRACK_DB_HOST"
	EnvDBUser = "LABTRACK_DB_USER"
	EnvDBName = "LABTRACK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
