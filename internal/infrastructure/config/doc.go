// Package config handles loading and validating DX-Ascend Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (DXASCEND_*)
//   - Validation of required fields
//   - Default value handling
//
// Sensitive values (MQTT password, InfluxDB token) should be supplied through
// the environment rather than committed to the config file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Project.Name)
package config
