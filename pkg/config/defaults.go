package config

const (
	defaultStorageDriver = "sqlite"
	defaultSQLitePath    = "graph.db"
	defaultJSONPath      = "graph.json"

	defaultSimulatorProvider = "ollama"
	defaultSimulatorTarget   = "http://localhost:11434"
	defaultSimulatorModel    = "llama3.2"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Driver:     defaultStorageDriver,
			SQLitePath: defaultSQLitePath,
			JSONPath:   defaultJSONPath,
		},
		Simulator: SimulatorConfig{
			Provider: defaultSimulatorProvider,
			Target:   defaultSimulatorTarget,
			Model:    defaultSimulatorModel,
		},
	}
}
