package config

import (
	"github.com/gianlucamazza/webagent/analytics"
	"github.com/gianlucamazza/webagent/workflow"
)

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type Config struct {
	RedisConfig        RedisStorageConfig
	StorageType        StorageType
	RetryPolicy        workflow.RetryPolicy
	AgentMaxIterations int
	AnalyticsConfig    analytics.DataCollectorConfig
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
	PoolSize  int
	Password  string
}
