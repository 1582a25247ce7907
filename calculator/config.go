package calculator

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

var calCfg Config

type Config struct {
	// MaxSubsteps caps automatic sub-stepping; a simulate call needing more
	// substeps than this is refused instead of integrated.
	MaxSubsteps int

	// SweepWorkers sizes the scenario-sweep worker pool.
	SweepWorkers int

	// Addr is the websocket listen address.
	Addr string

	// RingCapacity bounds the per-connection streaming buffer.
	RingCapacity int
}

func init() {
	file, err := ini.Load("conf/config.ini")
	if err != nil {
		log.Warn("config file not found, using defaults: ", err)
		file = ini.Empty()
	}
	loadCfg(file)
}

func loadCfg(file *ini.File) {
	calCfg = Config{
		MaxSubsteps:  file.Section("engine").Key("MaxSubsteps").MustInt(240),
		SweepWorkers: file.Section("sweep").Key("Workers").MustInt(4),
		Addr:         file.Section("server").Key("Addr").MustString(":9000"),
		RingCapacity: file.Section("server").Key("RingCapacity").MustInt(256),
	}
}

// Cfg exposes the loaded runtime knobs (server wiring needs the address and
// ring size).
func Cfg() Config {
	return calCfg
}
