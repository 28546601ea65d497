package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadServer reads the server env file named by START (e.g. .env-local or
// .env.docker) and fails fast on anything the server cannot run without.
func LoadServer() {
	if err := godotenv.Load(os.Getenv("START")); err != nil {
		log.Fatalf("Env file not found")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatalf("JWT_SECRET is not set in environment")
	}
	if os.Getenv("MYSQL_DSN") == "" {
		log.Fatalf("MYSQL_DSN is not set in environment")
	}
	if os.Getenv("MONGO_URI") == "" {
		log.Fatalf("MONGO_URI is not set in environment")
	}
	if os.Getenv("MONGO_DB_NAME") == "" {
		log.Fatalf("MONGO_DB_NAME is not set in environment")
	}
}

type Client struct {
	APIURL      string
	SessionFile string
}

// LoadClient resolves the CLI's settings. Everything has a default; a .env
// in the working directory may override it but is not required.
func LoadClient() Client {
	_ = godotenv.Load() // optional for the client

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8082/api"
	}

	sessionFile := os.Getenv("SESSION_FILE")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		sessionFile = filepath.Join(home, ".geotodo", "session.json")
	}

	return Client{
		APIURL:      apiURL,
		SessionFile: sessionFile,
	}
}
