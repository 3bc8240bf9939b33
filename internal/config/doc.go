// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The dapper-alco-boost Authors
//
// Package config defines the configuration model of cmdgen and loads it
// from an HCL file.
//
// Every setting has a default, so the file is optional. A typical file:
//
//	manifest {
//	  dir = ".autogen"
//	}
//
//	interface {
//	  name   = "Command"
//	  method = "Execute"
//	}
//
//	dispatch {
//	  package = "commands"
//	  type    = "WgseCommands"
//	  default = "Nope"
//	  output  = "commands_gen.go"
//	}
//
//	collect {
//	  retain_original = getenv("CMDGEN_RELEASE") != "1"
//	  strictness      = "strict"
//	  workers         = 8
//	}
//
//	log {
//	  level  = "info"
//	  format = "text"
//	}
//
// Expressions may reference the process environment through the `env`
// object (env.HOME fails when HOME is unset) or the getenv function, which
// takes an optional default. The lower, upper and coalesce functions are
// also available.
package config
