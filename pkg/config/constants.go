package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "CHARM"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "CHARM_APP_ENV"
	EnvPort     = "CHARM_APP_PORT"
	EnvDBDSN    = "CHARM_DB_DSN"
	EnvDBHost   = "CHARM_DB_HOST"
	EnvDBUser   = "CHARM_DB_USER"
	EnvDBName   = "CHARM_DB_NAME"
	EnvRedisURL = "CHARM_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
