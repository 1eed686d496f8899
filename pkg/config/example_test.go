package config_test

import (
	"fmt"

	"github.com/madHatter106/state-of-the-climate/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Environment: %s\n", cfg.Env)
	for _, name := range cfg.SensorNames() {
		fmt.Printf("Sensor %s -> %s\n", name, cfg.Data.Sensors[name])
	}
	fmt.Printf("Reference window: %d-%d\n", cfg.Climatology.YearStart, cfg.Climatology.YearEnd)
}
