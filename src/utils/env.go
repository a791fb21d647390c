package utils

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const defaultEnvFilename = ".env"

// InitEnvironmentVariables loads the local .env file. Production deployments
// configure through real environment variables and carry no .env file.
func InitEnvironmentVariables() error {
	if os.Getenv("GO_ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	envFile := os.Getenv("AUMCHI_ENV_FILE")
	if envFile == "" {
		envFile = defaultEnvFilename
	}

	if err := godotenv.Load(envFile); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("InitEnvironmentVariables: no %s file found, using ambient environment", envFile)
			return nil
		}
		return err
	}

	return nil
}
