// api/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server ServerConfiguration
	Auth   AuthConfiguration
	Cache  CacheConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// AuthConfiguration stores bearer-token verification settings
type AuthConfiguration struct {
	JWTSecret string
}

// CacheConfiguration stores the cache backend selection and TTL windows.
// It is read once at process start and treated as immutable afterwards.
type CacheConfiguration struct {
	Enabled bool
	Kind    string
	Redis   RedisConfiguration
	TTL     TTLConfiguration
}

// RedisConfiguration stores data for the redis backend connection
type RedisConfiguration struct {
	Host      string
	Port      int
	AccessKey string
	DB        int
}

// TTLConfiguration stores per-kind expiry windows in seconds
type TTLConfiguration struct {
	UserSeconds          int `json:"userSeconds"`
	ProjectAccessSeconds int `json:"projectAccessSeconds"`
	UserProjectsSeconds  int `json:"userProjectsSeconds"`
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("auth.jwtSecret", "")
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.kind", "memory")
	viper.SetDefault("cache.redis.host", "")
	viper.SetDefault("cache.redis.port", 6380)
	viper.SetDefault("cache.redis.accessKey", "")
	viper.SetDefault("cache.redis.db", 0)
	viper.SetDefault("cache.ttl.user", 3600)
	viper.SetDefault("cache.ttl.projectAccess", 1800)
	viper.SetDefault("cache.ttl.userProjects", 600)
	viper.SetDefault("log.dir", "logging")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	config = &Configuration{
		Server: ServerConfiguration{
			Port: viper.GetString("server.port"),
		},
		Auth: AuthConfiguration{
			JWTSecret: viper.GetString("auth.jwtSecret"),
		},
		Cache: CacheConfig(),
	}

	return nil
}

// CacheConfig builds the cache section from the loaded settings.
func CacheConfig() CacheConfiguration {
	return CacheConfiguration{
		Enabled: viper.GetBool("cache.enabled"),
		Kind:    viper.GetString("cache.kind"),
		Redis: RedisConfiguration{
			Host:      viper.GetString("cache.redis.host"),
			Port:      viper.GetInt("cache.redis.port"),
			AccessKey: viper.GetString("cache.redis.accessKey"),
			DB:        viper.GetInt("cache.redis.db"),
		},
		TTL: TTLConfiguration{
			UserSeconds:          viper.GetInt("cache.ttl.user"),
			ProjectAccessSeconds: viper.GetInt("cache.ttl.projectAccess"),
			UserProjectsSeconds:  viper.GetInt("cache.ttl.userProjects"),
		},
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}
