package config

// EnvPrefix is the envconfig prefix applied to every variable below.
const EnvPrefix = "MEDIATEAM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MEDIATEAM_DB_DSN"
	EnvDBHost = "MEDIATEAM_DB_HOST"
	EnvDBUser = "MEDIATEAM_DB_USER"
	EnvDBName = "MEDIATEAM_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
