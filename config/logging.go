package config

import "go.uber.org/zap"

// setLogger picks the zap flavour for an environment: production logs JSON
// at info, development logs console output at debug, anything else uses the
// example logger.
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}
