package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config := &ConfigData{}
	if err := yaml.UnmarshalStrict(cfgFile, config); err != nil {
		return nil, err
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	y.config = config
	return config, nil
}

func (y *YAMLProvider) loaded() (*ConfigData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return y.config, nil
}

// GetDashboardConfig returns the dashboard display settings
func (y *YAMLProvider) GetDashboardConfig() (*DashboardData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Dashboard, nil
}

// GetDataConfig returns the input table settings
func (y *YAMLProvider) GetDataConfig() (*DataData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Data, nil
}

// GetAssetsConfig returns the static asset settings
func (y *YAMLProvider) GetAssetsConfig() (*AssetsData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Assets, nil
}

// GetServerConfig returns the HTTP listener settings
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	c, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &c.Server, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}
