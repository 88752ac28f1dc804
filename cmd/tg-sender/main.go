package main

import (
	"os"

	"tg-sender/internal/app"
	"tg-sender/internal/config"
	"tg-sender/internal/logger"
)

func main() {
	log := logger.New(logger.ConfigFromEnv())

	path := config.PathFromEnv()
	cfg, err := config.Load(path)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"op": "load config", "path": path})
	}
	if cfg.APIID == 0 || cfg.APIHash == "" {
		log.Warning("Main", "api_id or api_hash missing, authorization will fail", map[string]interface{}{
			"path": path,
		})
	}

	application, err := app.NewApplication(cfg, log)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{"op": "initialize application"})
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		log.Error("Main", err, map[string]interface{}{"op": "run application"})
		os.Exit(1)
	}
}
