package fiberlog

import "github.com/sirupsen/logrus"

// Config - настройка middleware: логгер и набор полей запроса
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
