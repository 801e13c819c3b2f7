package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultTokenTTL = time.Hour

// Server is the API process configuration, read from the environment.
type Server struct {
	Addr        string
	JWTSecret   []byte
	TokenTTL    time.Duration
	MySQLDSN    string
	MongoURI    string
	MongoDBName string
	LogLevel    string
}

func Load() *Server {
	/*
		START names the env file to load (.env-local, .env.docker);
		when it is empty godotenv falls back to ./.env
	*/
	if err := godotenv.Load(envFiles()...); err != nil {
		log.Printf("env file not loaded: %v", err)
	}

	for _, key := range []string{"JWT_SECRET", "MYSQL_DSN", "MONGO_URI", "MONGO_DB_NAME"} {
		if os.Getenv(key) == "" {
			log.Fatalf("%s is not set in environment", key)
		}
	}

	ttl := defaultTokenTTL
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("JWT_TTL is not a duration: %v", err)
		}
		ttl = parsed
	}

	return &Server{
		Addr:        getEnv("ADDR", ":8082"),
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:    ttl,
		MySQLDSN:    os.Getenv("MYSQL_DSN"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDBName: os.Getenv("MONGO_DB_NAME"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func envFiles() []string {
	if f := os.Getenv("START"); f != "" {
		return []string{f}
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
