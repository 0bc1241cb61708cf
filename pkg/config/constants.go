package config

// EnvPrefix namespaces every environment variable the app reads.
const EnvPrefix = "BEAUTYSHELF"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	// DefaultSQLiteDSN is the local-run database used when the sqlite
	// feature flag is on and no DSN is supplied.
	DefaultSQLiteDSN = "file:beautyshelf.db?_foreign_keys=on"
)

const (
	EnvDBDSN  = "BEAUTYSHELF_DB_DSN"
	EnvDBHost = "BEAUTYSHELF_DB_HOST"
	EnvDBUser = "BEAUTYSHELF_DB_USER"
	EnvDBName = "BEAUTYSHELF_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
