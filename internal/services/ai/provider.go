package ai

import "context"

// Provider is the interface for language model backends.
type Provider interface {
	// Complete sends a prompt and returns the model's text completion.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderFactory creates a provider from a flat configuration map.
type ProviderFactory func(config map[string]string) (Provider, error)

// ProviderRegistry stores available language model providers.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates a new provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register registers a provider factory.
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// GetProvider gets a provider by name.
func (r *ProviderRegistry) GetProvider(name string, config map[string]string) (Provider, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &ErrProviderNotFound{Name: name}
	}
	return factory(config)
}

// ErrProviderNotFound is returned when a provider is not registered.
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return "language model provider not found: " + e.Name
}
