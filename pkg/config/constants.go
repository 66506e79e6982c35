package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "UNICART_APP_ENV"
	EnvDBDSN  = "UNICART_DB_DSN"
	EnvDBHost = "UNICART_DB_HOST"
	EnvDBUser = "UNICART_DB_USER"
	EnvDBName = "UNICART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
