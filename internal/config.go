package internal

// Config is shared by the read-only tools (viewer, inspector) that open
// the store next to a running coordinator.
type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	DebugPort      int    `env:"DEBUG_PORT,default=8090"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
}
