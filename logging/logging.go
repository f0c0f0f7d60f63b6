package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger and installs it as zap's global logger
func New(release bool) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if release {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
