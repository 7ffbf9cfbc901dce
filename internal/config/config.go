package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The two horizon fields configure the two
// booking surfaces: the single-hall detail view reaches far ahead, the
// multi-hall overview only a couple of months.  Both feed the same
// window policy – only the number differs.
type Config struct {
	Env                   string // application environment (e.g. "dev", "prod")
	Port                  string // HTTP port to listen on
	DBUser                string // database username
	DBPass                string // database password (optional)
	DBHost                string // database host address
	DBPort                string // database port number
	DBName                string // database name
	HoldTTLMin            int    // minutes an unconfirmed hold survives
	DetailHorizonMonths   int    // booking window for the hall detail surface
	OverviewHorizonMonths int    // booking window for the overview surface
	RefreshIntervalSec    int    // seconds between background index refreshes
	ExpireSweepSec        int    // seconds between lapsed-hold sweeps
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message;
// tunables fall back to service defaults.
func Load() Config {
	return Config{
		Env:                   must("APP_ENV"),      // environment (dev/test/prod)
		Port:                  must("APP_PORT"),     // port to bind the HTTP server
		DBUser:                must("DB_USER"),      // database user
		DBPass:                os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:                must("DB_HOST"),      // database host
		DBPort:                must("DB_PORT"),      // database port
		DBName:                must("DB_NAME"),      // database name
		HoldTTLMin:            intDefault("HOLD_TTL_MIN", 15),
		DetailHorizonMonths:   intDefault("DETAIL_HORIZON_MONTHS", 36),
		OverviewHorizonMonths: intDefault("OVERVIEW_HORIZON_MONTHS", 2),
		RefreshIntervalSec:    intDefault("AVAILABILITY_REFRESH_SEC", 30),
		ExpireSweepSec:        intDefault("HOLD_EXPIRE_SWEEP_SEC", 60),
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

// intDefault retrieves an integer environment variable, falling back to
// def when unset.  A malformed value is fatal rather than silently
// defaulted so misconfigured deployments fail loudly.
func intDefault(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
