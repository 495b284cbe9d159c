package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type EnvironmentVariable struct {
	API_PORT           int
	ALLOWED_CORS_HOSTS []string

	DB_POSTGRESQL_WRITE_DSN string
	DB_POSTGRESQL_READ1_DSN string

	CACHE_TYPE     string
	CACHE_URL      string
	CACHE_PASSWORD string
	CACHE_DB       string
	REDIS_URL      string
	REDIS_PASSWORD string
	REDIS_DB       string

	ENABLE_AUTO_MIGRATE bool

	VIDEO_DETAIL_TTL    time.Duration
	FEED_TTL            time.Duration
	TRENDING_TTL        time.Duration
	RECOMMENDATION_TTL  time.Duration
	SEARCH_TTL          time.Duration
	STORE_QUERY_TIMEOUT time.Duration

	SIMILARITY_CATALOG_CAP   int
	SIMILARITY_NEIGHBORS     int
	SIMILARITY_DRIFT_REBUILD int

	INVALIDATION_QUEUE_SIZE int
	INVALIDATION_WORKERS    int
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}
		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(envValue)
		case []string:
			v.Field(i).Set(reflect.ValueOf(strings.Split(envValue, ",")))
		case bool:
			if b, err := strconv.ParseBool(envValue); err == nil {
				v.Field(i).SetBool(b)
			} else {
				fmt.Printf("Invalid bool SYSENV: %s=%s\n", envKey, envValue)
			}
		case int:
			if n, err := strconv.Atoi(envValue); err == nil {
				v.Field(i).SetInt(int64(n))
			} else {
				fmt.Printf("Invalid int SYSENV: %s=%s\n", envKey, envValue)
			}
		case time.Duration:
			if d, err := time.ParseDuration(envValue); err == nil {
				v.Field(i).SetInt(int64(d))
			} else {
				fmt.Printf("Invalid duration SYSENV: %s=%s\n", envKey, envValue)
			}
		}
	}
	ev.applyDefaults()
}

func (ev *EnvironmentVariable) applyDefaults() {
	if ev.API_PORT <= 0 {
		ev.API_PORT = 8080
	}
	if ev.VIDEO_DETAIL_TTL <= 0 {
		ev.VIDEO_DETAIL_TTL = 30 * time.Minute
	}
	if ev.FEED_TTL <= 0 {
		ev.FEED_TTL = 5 * time.Minute
	}
	if ev.TRENDING_TTL <= 0 {
		ev.TRENDING_TTL = 5 * time.Minute
	}
	if ev.RECOMMENDATION_TTL <= 0 {
		ev.RECOMMENDATION_TTL = 30 * time.Minute
	}
	if ev.SEARCH_TTL <= 0 {
		ev.SEARCH_TTL = 2 * time.Minute
	}
	if ev.STORE_QUERY_TIMEOUT <= 0 {
		ev.STORE_QUERY_TIMEOUT = 2 * time.Second
	}
	if ev.SIMILARITY_CATALOG_CAP <= 0 {
		ev.SIMILARITY_CATALOG_CAP = 50000
	}
	if ev.SIMILARITY_NEIGHBORS <= 0 {
		ev.SIMILARITY_NEIGHBORS = 20
	}
	if ev.SIMILARITY_DRIFT_REBUILD <= 0 {
		ev.SIMILARITY_DRIFT_REBUILD = 500
	}
	if ev.INVALIDATION_QUEUE_SIZE <= 0 {
		ev.INVALIDATION_QUEUE_SIZE = 4096
	}
	if ev.INVALIDATION_WORKERS <= 0 {
		ev.INVALIDATION_WORKERS = 2
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
