package app

import (
	"time"

	"github.com/hireloop/hireloop-backend/internal/logger"
	"github.com/hireloop/hireloop-backend/internal/services"
	"github.com/hireloop/hireloop-backend/internal/utils"
)

type Config struct {
	Port     string
	Resolver services.ResolverConfig
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)

	defaults := services.DefaultResolverConfig()
	acceptThreshold := utils.GetEnvAsFloat("MATCH_ACCEPT_THRESHOLD", defaults.AcceptThreshold, log)
	reviewThreshold := utils.GetEnvAsFloat("MATCH_REVIEW_THRESHOLD", defaults.ReviewThreshold, log)
	oracleBudget := utils.GetEnvAsInt("ORACLE_BUDGET_PER_BATCH", defaults.OracleBudget, log)
	oracleTimeoutSeconds := utils.GetEnvAsInt("ORACLE_TIMEOUT_SECONDS", int(defaults.OracleTimeout/time.Second), log)
	activeScanLimit := utils.GetEnvAsInt("MATCH_ACTIVE_SCAN_LIMIT", defaults.ActiveScanLimit, log)

	return Config{
		Port: port,
		Resolver: services.ResolverConfig{
			AcceptThreshold: acceptThreshold,
			ReviewThreshold: reviewThreshold,
			OracleBudget:    oracleBudget,
			OracleTimeout:   time.Duration(oracleTimeoutSeconds) * time.Second,
			ActiveScanLimit: activeScanLimit,
		},
	}
}
