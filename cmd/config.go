package main

import "time"

type Config struct {
	BufferSize      int           `env:"BUFFER_SIZE,required=true"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,required=true"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,required=true"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,required=true"`
	ReportInterval  time.Duration `env:"REPORT_INTERVAL,default=1m"`
	DebugPort       int           `env:"DEBUG_PORT,default=8090"`
}
