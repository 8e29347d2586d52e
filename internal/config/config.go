package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations,
// costs and byte budgets.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	AdminEmail    string // seed email for the dashboard account (optional)
	AdminPassword string // seed password for the dashboard account (optional)

	SMTPHost    string // SMTP relay host
	SMTPPort    string // SMTP relay port
	SMTPSender  string // sender address for outgoing mail
	SMTPAppPass string // app password for the sender account
	NotifyInbox string // owner notification inbox for booking requests

	S3Bucket      string // bucket holding listing photos
	S3Region      string // AWS region of the bucket
	ImageBaseURL  string // public CDN prefix for stored photos
	ImageMaxBytes int64  // optimizer byte budget per uploaded photo
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Mail and storage
// settings are optional so the API can run locally without those
// collaborators; the corresponding features degrade at startup.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),  // environment (dev/test/prod)
		Port:           must("APP_PORT"), // port to bind the HTTP server
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    getenv("SMTP_PORT", "587"),
		SMTPSender:  os.Getenv("SMTP_SENDER"),
		SMTPAppPass: os.Getenv("SMTP_APP_PASSWORD"),
		NotifyInbox: os.Getenv("BOOKING_NOTIFY_EMAIL"),

		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      getenv("AWS_REGION", "us-east-1"),
		ImageBaseURL:  os.Getenv("IMAGE_BASE_URL"),
		ImageMaxBytes: int64(atoi(getenv("IMAGE_MAX_BYTES", "2097152"))), // 2 MiB
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
