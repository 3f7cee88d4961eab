package toolregistry

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidDefinition marks a tool definition that failed shape validation.
var ErrInvalidDefinition = errors.New("invalid tool definition")

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ExecContext says where a tool's logic runs.
type ExecContext string

const (
	// ExecClient tools run in the caller's own process.
	ExecClient ExecContext = "client"
	// ExecServer tools run in the trusted backend.
	ExecServer ExecContext = "server"
)

// Valid reports whether the execution context is one of the two allowed values.
func (e ExecContext) Valid() bool {
	return e == ExecClient || e == ExecServer
}

// ToolDefinition describes a named capability an agent may invoke.
// Definitions are immutable once registered.
type ToolDefinition struct {
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	Parameters       map[string]interface{} `json:"parameters"`
	ExecutionContext ExecContext            `json:"execution_context"`
	OutputSchema     map[string]interface{} `json:"output_schema,omitempty"`
}

// Registry holds the tool catalog. It is safe for concurrent use; after
// construction the catalog is effectively read-only.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]ToolDefinition
	schemas map[string]*gojsonschema.Schema
	logger  zerolog.Logger
}

// New creates an empty registry.
func New(logger zerolog.Logger) *Registry {
	return &Registry{
		tools:   make(map[string]ToolDefinition),
		schemas: make(map[string]*gojsonschema.Schema),
		logger:  logger.With().Str("component", "toolregistry").Logger(),
	}
}

// NewWithDefaults creates a registry populated from the static client- and
// server-side tables.
func NewWithDefaults(logger zerolog.Logger) (*Registry, error) {
	r := New(logger)
	if err := r.registerDefaults(); err != nil {
		return nil, err
	}
	return r, nil
}

// Register validates and adds a tool definition. An invalid shape returns
// ErrInvalidDefinition and leaves the catalog unchanged. A colliding name
// overwrites the prior entry with a warning, not an error.
func (r *Registry) Register(def ToolDefinition) error {
	if err := validateDefinition(def); err != nil {
		return err
	}

	schema, err := compileParameterSchema(def.Parameters)
	if err != nil {
		return fmt.Errorf("%w: parameter schema for %q does not compile: %v", ErrInvalidDefinition, def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[def.Name]; exists {
		r.logger.Warn().Str("tool", def.Name).Msg("Tool already registered, overwriting")
	}

	r.tools[def.Name] = def
	r.schemas[def.Name] = schema

	r.logger.Debug().
		Str("tool", def.Name).
		Str("execution_context", string(def.ExecutionContext)).
		Msg("Tool registered")

	return nil
}

// Get returns the definition for a tool name.
func (r *Registry) Get(name string) (ToolDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.tools[name]
	return def, ok
}

// All returns every registered definition, sorted by name.
func (r *Registry) All() []ToolDefinition {
	return r.filter(func(ToolDefinition) bool { return true })
}

// ClientTools returns the definitions that run in the caller's process.
func (r *Registry) ClientTools() []ToolDefinition {
	return r.filter(func(d ToolDefinition) bool { return d.ExecutionContext == ExecClient })
}

// ServerTools returns the definitions that run in the trusted backend.
func (r *Registry) ServerTools() []ToolDefinition {
	return r.filter(func(d ToolDefinition) bool { return d.ExecutionContext == ExecServer })
}

// Len returns the catalog size.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// ValidateArguments checks call arguments against the tool's compiled
// parameter schema.
func (r *Registry) ValidateArguments(name string, args map[string]interface{}) error {
	r.mu.RLock()
	schema := r.schemas[name]
	r.mu.RUnlock()

	if schema == nil {
		return fmt.Errorf("no schema for tool: %s", name)
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("argument validation failed: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid arguments: %v", msgs)
	}
	return nil
}

// Clear empties the catalog. Intended for test isolation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]ToolDefinition)
	r.schemas = make(map[string]*gojsonschema.Schema)
}

// Reinitialize clears the catalog and re-registers the static default tables.
func (r *Registry) Reinitialize() error {
	r.Clear()
	return r.registerDefaults()
}

func (r *Registry) registerDefaults() error {
	for _, def := range append(DefaultClientTools(), DefaultServerTools()...) {
		if err := r.Register(def); err != nil {
			return fmt.Errorf("failed to register default tool %s: %w", def.Name, err)
		}
	}
	return nil
}

func (r *Registry) filter(keep func(ToolDefinition) bool) []ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ToolDefinition, 0, len(r.tools))
	for _, def := range r.tools {
		if keep(def) {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func validateDefinition(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidDefinition)
	}
	if !namePattern.MatchString(def.Name) {
		return fmt.Errorf("%w: name %q must match %s", ErrInvalidDefinition, def.Name, namePattern.String())
	}
	if def.Description == "" {
		return fmt.Errorf("%w: description cannot be empty for %q", ErrInvalidDefinition, def.Name)
	}
	if !def.ExecutionContext.Valid() {
		return fmt.Errorf("%w: execution context %q for %q must be client or server", ErrInvalidDefinition, def.ExecutionContext, def.Name)
	}
	if def.Parameters == nil {
		return fmt.Errorf("%w: parameters cannot be nil for %q", ErrInvalidDefinition, def.Name)
	}
	if typ, _ := def.Parameters["type"].(string); typ != "object" {
		return fmt.Errorf("%w: parameters for %q must declare type \"object\"", ErrInvalidDefinition, def.Name)
	}
	if _, ok := def.Parameters["properties"].(map[string]interface{}); !ok {
		return fmt.Errorf("%w: parameters for %q must carry a properties object", ErrInvalidDefinition, def.Name)
	}
	return nil
}

func compileParameterSchema(params map[string]interface{}) (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(params))
}
