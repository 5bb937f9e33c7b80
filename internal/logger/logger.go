package logger

import "go.uber.org/zap"

// NewNamed builds a named zap logger for the given environment: JSON output
// in production, human-readable development output otherwise.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if appEnv == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
