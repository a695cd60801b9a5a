/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querykit

import (
	"fmt"
	"sync"

	"github.com/suparena/querykit/datastore"
	"github.com/suparena/querykit/query"
	"github.com/suparena/querykit/registry"
	"github.com/suparena/querykit/schema"
	"go.uber.org/zap"
)

// Client binds an executor and a schema registry and hands out models.
// It is safe for concurrent use.
type Client struct {
	exec     datastore.Executor
	logger   *zap.Logger
	registry *registry.Registry

	mu     sync.RWMutex
	models map[string]*query.Model
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger handed to every model.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegistry makes the client resolve model names in reg.
func WithRegistry(reg *registry.Registry) Option {
	return func(c *Client) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// New creates a Client over exec.
func New(exec datastore.Executor, opts ...Option) *Client {
	c := &Client{
		exec:     exec,
		logger:   zap.NewNop(),
		registry: registry.New(),
		models:   make(map[string]*query.Model),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the client's schema registry.
func (c *Client) Registry() *registry.Registry { return c.registry }

// Define registers def and returns its model.
func (c *Client) Define(def schema.Definition) (*query.Model, error) {
	d, err := c.registry.RegisterDefinition(def)
	if err != nil {
		return nil, err
	}
	return c.ModelFor(d), nil
}

// Model returns the model registered under name.
func (c *Client) Model(name string) (*query.Model, error) {
	c.mu.RLock()
	m, ok := c.models[name]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	d, ok := c.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("model %q not registered", name)
	}
	return c.ModelFor(d), nil
}

// ModelFor returns a model for d, whether or not d is registered.
func (c *Client) ModelFor(d schema.Descriptor) *query.Model {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.models[d.Name()]; ok && m.Schema() == d {
		return m
	}
	m := query.NewModel(d, c.exec, query.WithLogger(c.logger.With(zap.String("model", d.Name()))))
	c.models[d.Name()] = m
	return m
}
