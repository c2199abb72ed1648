package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// systemInstruction is shared by every backend: content only, no
// throat-clearing, keep markdown so section markers survive the merge pass.
const systemInstruction = "You are a summarization engine. " +
	"Respond with ONLY the requested content. Do not add greetings, introductions, " +
	"questions or commentary about the task. " +
	"Preserve markdown structure (headings, bullet points, bold) in your output."

// Generation parameters are fixed per backend to bound cost and keep output
// length predictable for downstream chunk joining.
const (
	generationTemperature = 0.4
	maxOutputTokens       = 4096
)

// Provider is the common interface for all summary generation backends.
type Provider interface {
	// Name returns the backend name ("gemini", "openai", "claude")
	Name() string
	// Available reports whether the backend credential is configured
	Available() bool
	// Generate produces sanitized summary text from a prompt
	Generate(ctx context.Context, prompt string) (string, error)
}

// ConfigurationError reports a backend whose credential is missing.
type ConfigurationError struct {
	Provider     string
	Hint         string   // env var or setting that supplies the credential
	Alternatives []string // configured backends the caller could use instead
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s is not configured", e.Provider)
	if e.Hint != "" {
		msg += fmt.Sprintf(" (set %s)", e.Hint)
	}
	if len(e.Alternatives) > 0 {
		msg += "; try: " + strings.Join(e.Alternatives, ", ")
	} else {
		msg += "; no other provider is configured"
	}
	return msg
}

// ProviderError reports a failed or empty generation call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Registry holds the configured backends and resolves provider choices.
type Registry struct {
	providers   map[string]Provider
	hints       map[string]string
	defaultName string
}

func NewRegistry(defaultName string) *Registry {
	return &Registry{
		providers:   make(map[string]Provider),
		hints:       make(map[string]string),
		defaultName: defaultName,
	}
}

// Register adds a backend. credentialHint names the env var that supplies
// its API key, used in "not configured" guidance.
func (r *Registry) Register(p Provider, credentialHint string) {
	r.providers[p.Name()] = p
	r.hints[p.Name()] = credentialHint
}

// Default returns the default provider name.
func (r *Registry) Default() string { return r.defaultName }

// Resolve returns the backend for a provider choice. An empty choice
// resolves to the default. Unknown names are an error.
func (r *Registry) Resolve(name string) (Provider, error) {
	if name == "" {
		name = r.defaultName
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// NotConfigured builds the guidance error for an unavailable backend,
// suggesting the configured alternatives.
func (r *Registry) NotConfigured(p Provider) *ConfigurationError {
	var alts []string
	for name, other := range r.providers {
		if name != p.Name() && other.Available() {
			alts = append(alts, name)
		}
	}
	sort.Strings(alts)
	return &ConfigurationError{
		Provider:     p.Name(),
		Hint:         r.hints[p.Name()],
		Alternatives: alts,
	}
}

// Availability reports, per registered backend, whether its credential is
// present. No side effects; used by the capability endpoint.
func (r *Registry) Availability() map[string]bool {
	out := make(map[string]bool, len(r.providers))
	for name, p := range r.providers {
		out[name] = p.Available()
	}
	return out
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
