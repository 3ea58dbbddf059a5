package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix mostly matters for error reporting.
const EnvPrefix = "stitchbay"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv     = "STITCHBAY_APP_ENV"
	EnvPort       = "STITCHBAY_APP_PORT"
	EnvDBDSN      = "STITCHBAY_DB_DSN"
	EnvDBHost     = "STITCHBAY_DB_HOST"
	EnvDBUser     = "STITCHBAY_DB_USER"
	EnvDBName     = "STITCHBAY_DB_NAME"
	EnvRedisURL   = "STITCHBAY_REDIS_URL"
	EnvJWTSecret  = "STITCHBAY_JWT_SECRET"
	EnvJWTIssuer  = "STITCHBAY_JWT_ISSUER"
	EnvJWTExpMins = "STITCHBAY_JWT_EXPIRATION_MINUTES"
)
