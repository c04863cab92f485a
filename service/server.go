// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package service

import (
	"context"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
	log "github.com/inconshreveable/log15"

	"github.com/curvepoint/keyregistry/registry"
)

// NewHandler builds the JSON-RPC handler for the public endpoint.
func NewHandler(reg *registry.Registry) (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(&PublicService{reg: reg}, Name); err != nil {
		return nil, err
	}
	return server, nil
}

// Server serves the registry RPC over HTTP.
type Server struct {
	cfg  *Config
	http *http.Server
}

func NewServer(cfg *Config, reg *registry.Registry) (*Server, error) {
	handler, err := NewHandler(reg)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(PublicEndpoint, handler)
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}, nil
}

// Run blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Run() error {
	log.Info("serving registry RPC", "addr", s.cfg.HTTPAddr, "endpoint", PublicEndpoint)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
