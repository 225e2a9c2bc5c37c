// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Sharing struct {
	// BaseURL is the public origin share links are built on, e.g.
	// https://plans.bespokebehaviors.app.
	BaseURL string `koanf:"baseurl"`
}

type Config struct {
	config.Common

	// Sharing is the configuration for public share links.
	Sharing Sharing `koanf:"sharing"`
}
