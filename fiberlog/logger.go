package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := data{start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		// preflight не логируем
		if c.Method() == fiber.MethodOptions {
			return err
		}

		switch cfg.Logger {
		case nil:
			log.WithFields(getLogrusFields(ftm, c, &d)).Info(requestMessage)
		default:
			entry := cfg.Logger.WithFields(getLogrusFields(ftm, c, &d))
			if c.Response() != nil && c.Response().StatusCode() >= 300 {
				entry.Warn(requestMessage)
			} else {
				entry.Info(requestMessage)
			}
		}

		return err
	}
}

const requestMessage = "запрос api"
