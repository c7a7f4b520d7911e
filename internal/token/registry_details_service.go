package token

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	aoio "github.com/martonlederer/ao-tokens/internal/io"
	"go.yaml.in/yaml/v3"
)

// RegistryDetailsService implements DetailsService from a static list of tokens,
// typically loaded from a YAML file.
type RegistryDetailsService struct {
	tokens map[string]Details // keyed by process ID
}

// yamlRegistry is an internal struct for YAML serialization.
type yamlRegistry struct {
	Tokens []yamlToken `yaml:"tokens"`
}

type yamlToken struct {
	ProcessID    string `yaml:"process_id"`
	Name         string `yaml:"name"`
	Ticker       string `yaml:"ticker"`
	Denomination *uint  `yaml:"denomination"`
}

// RegistryFromYAML reads a registry from a YAML representation.
// A leading UTF-8 BOM is tolerated.
func RegistryFromYAML(reader io.Reader) (*RegistryDetailsService, error) {
	var ymlRegistry yamlRegistry
	decoder := yaml.NewDecoder(aoio.StripUTF8BOM(reader))
	if err := decoder.Decode(&ymlRegistry); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode token registry from YAML: %w", err)
	}

	registry := &RegistryDetailsService{tokens: make(map[string]Details, len(ymlRegistry.Tokens))}
	for i, ymlToken := range ymlRegistry.Tokens {
		if ymlToken.ProcessID == "" {
			return nil, fmt.Errorf("token registry entry %d has no process_id", i)
		}
		if ymlToken.Denomination == nil {
			return nil, fmt.Errorf("token '%s' in the registry has no denomination", ymlToken.ProcessID)
		}
		if _, exists := registry.tokens[ymlToken.ProcessID]; exists {
			return nil, fmt.Errorf("token '%s' is listed more than once in the registry", ymlToken.ProcessID)
		}

		registry.tokens[ymlToken.ProcessID] = Details{
			ProcessID: ymlToken.ProcessID,
			Name:      ymlToken.Name,
			Ticker:    ymlToken.Ticker,
			Decimals:  *ymlToken.Denomination,
		}
	}

	return registry, nil
}

// LoadRegistry reads a YAML registry from the file at the given path.
func LoadRegistry(filePath string) (*RegistryDetailsService, error) {
	exists, err := aoio.FileExists(filePath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("token registry file '%s' does not exist", filePath)
	}

	file, err := os.Open(filePath) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open token registry file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return RegistryFromYAML(file)
}

// GetTokenDetails returns a copy of the registered details for the process ID, or nil if it is not registered.
func (r *RegistryDetailsService) GetTokenDetails(_ context.Context, processID string) (*Details, error) {
	details, ok := r.tokens[processID]
	if !ok {
		return nil, nil
	}

	return &details, nil
}

// Len returns the number of registered tokens.
func (r *RegistryDetailsService) Len() int {
	return len(r.tokens)
}
