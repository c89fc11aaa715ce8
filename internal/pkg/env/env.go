package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var values map[string]string

// SetupEnvFile loads the first .env file it can find, walking up from the
// binary's working directory. OS environment variables win over file
// values, so containerized deployments can skip the file entirely.
func SetupEnvFile() {
	for _, candidate := range []string{".env", "../../.env", "../../../.env"} {
		if loaded, err := godotenv.Read(candidate); err == nil {
			values = loaded
			return
		}
	}

	if os.Getenv("APP_ENV") != "" {
		values = map[string]string{}
		return
	}

	panic("no .env file found and APP_ENV is not set")
}

// GetEnv returns the value for key, preferring the process environment
// over the loaded .env file, falling back to def.
func GetEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if val, ok := values[key]; ok && val != "" {
		return val
	}
	return def
}

// GetEnvInt is GetEnv for numeric settings. Unparseable values fall back.
func GetEnvInt(key string, def int) int {
	if raw := GetEnv(key, ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return def
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
