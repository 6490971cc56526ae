package config

// Config holds the service's infrastructure settings.
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string
}

// Load reads the infrastructure configuration from the environment.
func Load() *Config {
	return &Config{
		MongoURI:  getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnvOrDefault("MONGO_DB", "gayishdb"),
		RedisAddr: getEnvOrDefault("REDIS_URI", "localhost:6379"),
		HTTPPort:  getEnvOrDefault("PORT", "8080"),
	}
}
