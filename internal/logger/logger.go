// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// "production" uses a JSON encoder, "test" discards everything, and all
// other environments use a human-readable console encoder.
func Init(env string) {
	once.Do(func() {
		Set(build(env))
	})
}

func build(env string) *zap.SugaredLogger {
	var base *zap.Logger
	var err error

	switch env {
	case "production":
		base, err = zap.NewProduction()
	case "test":
		base = zap.NewNop()
	default:
		base, err = zap.NewDevelopment()
	}

	if err != nil {
		base = zap.NewNop()
	}
	return base.Sugar()
}

// Set replaces the global logger. Tests use it to install an observer.
func Set(l *zap.SugaredLogger) {
	mu.Lock()
	sugar = l
	mu.Unlock()
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l == nil {
		Init("development")
		mu.RLock()
		l = sugar
		mu.RUnlock()
	}
	return l
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if sugar != nil {
		_ = sugar.Sync()
	}
}
