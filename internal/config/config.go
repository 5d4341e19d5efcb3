package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the map service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - HTTPPort: The port of the web server serving the map page and its API.
// - Port: The port for the monitoring server.
// - ProviderType: The POI source to use (overpass, google).
// - APIKey: The API key for the POI source (required for Google).
// - ProviderURL: Optional endpoint override for the POI source.
// - Workers: The maximum number of concurrent category queries.
// - RequestTimeout: The timeout of a single category query.
// - AreaName: The area every query is restricted to.
// - LocateArea: Whether to geocode AreaName at startup to center the map.
// - Map: Initial map view and tile layer.
// - SessionTTL: How long an idle session is kept.
// - SweepInterval: The duration between idle session sweeps.
type Config struct {
	Env            string
	HTTPPort       int
	Port           int
	ProviderType   string
	APIKey         string
	ProviderURL    string
	Workers        int
	RequestTimeout time.Duration
	AreaName       string
	LocateArea     bool
	Map            MapConfig
	SessionTTL     time.Duration
	SweepInterval  time.Duration
}

// MapConfig holds the initial view of the map and its tile layer.
type MapConfig struct {
	CenterLat   float64 // CenterLat is the initial latitude of the map center.
	CenterLon   float64 // CenterLon is the initial longitude of the map center.
	Zoom        int     // Zoom is the initial zoom level.
	TileURL     string  // TileURL is the Leaflet tile URL template.
	Attribution string  // Attribution is shown in the map corner.
}

// MustLoad loads the configuration from the environment (and an optional .env file) and returns a Config struct.
func MustLoad() *Config {
	_ = godotenv.Load()

	env := viper.New()
	env.SetEnvPrefix("CITYMAP")
	env.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	env.AutomaticEnv()
	setDefaults(env)

	return &Config{
		Env:            env.GetString("env"),
		HTTPPort:       mustInt(env, "http_port", "failed to parse port for web server from configuration"),
		Port:           mustInt(env, "health_port", "failed to parse port for monitoring server from configuration"),
		ProviderType:   env.GetString("provider_type"),
		APIKey:         env.GetString("provider_key"),
		ProviderURL:    env.GetString("provider_url"),
		Workers:        mustInt(env, "workers", "failed to parse workers from configuration, must be an integer types"),
		RequestTimeout: mustDuration(env, "request_timeout", "failed to parse request timeout from configuration"),
		AreaName:       env.GetString("area_name"),
		LocateArea:     mustBool(env, "locate_area", "failed to parse locate area flag from configuration"),
		Map: MapConfig{
			CenterLat:   mustFloat(env, "map_center_lat", "failed to parse map center from configuration"),
			CenterLon:   mustFloat(env, "map_center_lon", "failed to parse map center from configuration"),
			Zoom:        mustInt(env, "map_zoom", "failed to parse map zoom from configuration"),
			TileURL:     env.GetString("tile_url"),
			Attribution: env.GetString("tile_attribution"),
		},
		SessionTTL:    mustDuration(env, "session_ttl", "failed to parse session ttl from configuration"),
		SweepInterval: mustDuration(env, "sweep_interval", "failed to parse sweep interval from configuration"),
	}
}

func setDefaults(env *viper.Viper) {
	env.SetDefault("env", "production")
	env.SetDefault("http_port", "8000")
	env.SetDefault("health_port", "8080")
	env.SetDefault("provider_type", "overpass")
	env.SetDefault("provider_key", "")
	env.SetDefault("provider_url", "")
	env.SetDefault("workers", "11")
	env.SetDefault("request_timeout", "30s")
	env.SetDefault("area_name", "São José dos Campos")
	env.SetDefault("locate_area", "false")
	env.SetDefault("map_center_lat", "-23.2237")
	env.SetDefault("map_center_lon", "-45.9009")
	env.SetDefault("map_zoom", "13")
	env.SetDefault("tile_url", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	env.SetDefault("tile_attribution",
		`&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`)
	env.SetDefault("session_ttl", "30m")
	env.SetDefault("sweep_interval", "5m")
}

func mustInt(env *viper.Viper, key, msg string) int {
	value, err := strconv.Atoi(env.GetString(key))
	if err != nil {
		panic(msg)
	}

	return value
}

func mustFloat(env *viper.Viper, key, msg string) float64 {
	value, err := strconv.ParseFloat(env.GetString(key), 64)
	if err != nil {
		panic(msg)
	}

	return value
}

func mustBool(env *viper.Viper, key, msg string) bool {
	value, err := strconv.ParseBool(env.GetString(key))
	if err != nil {
		panic(msg)
	}

	return value
}

func mustDuration(env *viper.Viper, key, msg string) time.Duration {
	value, err := time.ParseDuration(env.GetString(key))
	if err != nil {
		panic(msg)
	}

	return value
}
