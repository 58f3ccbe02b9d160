package config

import (
	"os"
	"strconv"
	"time"
)

// Get returns the value of an environment variable or a fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Tunable parameters of the clustering engine. All fields have working
// defaults; construct with Defaults() and override as needed.
type Clustering struct {
	MaxClusterRadiusKm float64
	MinClusterSize     int
	MaxClusterSize     int

	DeliveryPrepBaseMinutes int
	PerStopMinutes          int
	TravelPerStopMinutes    int

	SuggestionWindow time.Duration
	SuggestionTopN   int
}

// Defaults returns the engine configuration with its documented defaults.
func Defaults() Clustering {
	return Clustering{
		MaxClusterRadiusKm:      5.0,
		MinClusterSize:          2,
		MaxClusterSize:          10,
		DeliveryPrepBaseMinutes: 30,
		PerStopMinutes:          15,
		TravelPerStopMinutes:    10,
		SuggestionWindow:        24 * time.Hour,
		SuggestionTopN:          10,
	}
}

// ClusteringFromEnv builds engine configuration from environment
// variables, falling back to defaults for anything unset or unparsable.
func ClusteringFromEnv() Clustering {
	cfg := Defaults()

	cfg.MaxClusterRadiusKm = getFloat("MAX_CLUSTER_RADIUS_KM", cfg.MaxClusterRadiusKm)
	cfg.MinClusterSize = getInt("MIN_CLUSTER_SIZE", cfg.MinClusterSize)
	cfg.MaxClusterSize = getInt("MAX_CLUSTER_SIZE", cfg.MaxClusterSize)
	cfg.DeliveryPrepBaseMinutes = getInt("DELIVERY_PREP_BASE_MINUTES", cfg.DeliveryPrepBaseMinutes)
	cfg.PerStopMinutes = getInt("PER_STOP_MINUTES", cfg.PerStopMinutes)
	cfg.TravelPerStopMinutes = getInt("TRAVEL_PER_STOP_MINUTES", cfg.TravelPerStopMinutes)
	cfg.SuggestionTopN = getInt("SUGGESTION_TOP_N", cfg.SuggestionTopN)

	if h := getInt("SUGGESTION_WINDOW_HOURS", 0); h > 0 {
		cfg.SuggestionWindow = time.Duration(h) * time.Hour
	}

	return cfg
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
