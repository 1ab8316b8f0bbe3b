package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/config"
	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/middleware"
	"github.com/Vantage-Outdoor-LLC/argus/internal/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	} else {
		log.Warn().Msg("REDIS_ADDRESS not set; booking lock disabled, do not run multiple replicas")
	}

	if cfg.MQTTBrokerURL != "" {
		middleware.SetBrokerURL(cfg.MQTTBrokerURL)
		if err := middleware.InitMQTT("argus-server"); err != nil {
			log.Error().Err(err).Msg("MQTT unavailable; display notifications disabled")
		}
		defer middleware.CleanupMQTT()
	}

	store := db.NewStore(nil)

	r := gin.Default()
	RegisterRoutes(r, cfg, store)

	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
