// Copyright (C) 2022, Curvepoint, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package service

import (
	"time"
)

type Config struct {
	HTTPAddr string `serialize:"true" json:"httpAddr"`

	ReadTimeout     time.Duration `serialize:"true" json:"readTimeout"`
	WriteTimeout    time.Duration `serialize:"true" json:"writeTimeout"`
	ShutdownTimeout time.Duration `serialize:"true" json:"shutdownTimeout"`
}

func (c *Config) SetDefaults() {
	c.HTTPAddr = ":9760"

	c.ReadTimeout = 30 * time.Second
	c.WriteTimeout = 30 * time.Second
	c.ShutdownTimeout = 10 * time.Second
}
