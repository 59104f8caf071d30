// Package config provides configuration parsing for Axon servers.
//
// The configuration is stored in axon.json or axon.yaml at the project root.
// Environment variables override file values:
//
//	AXON_HOST        server.host
//	AXON_PORT        server.port
//	AXON_LOG_LEVEL   log.level
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "session": {
//	    "maxCascadeDepth": 64,
//	    "eventQueueSize": 256
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "axon"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.Address())
package config
