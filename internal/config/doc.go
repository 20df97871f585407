// Package config provides configuration parsing for proptree.
//
// The configuration is stored in proptree.json, found by walking up from the
// working directory. Every setting has a default, so the file is optional.
//
// # Configuration File Structure
//
//	{
//	  "title": "30 Days Of React",
//	  "server": {"addr": "localhost:3000", "live": true},
//	  "render": {"pretty": false},
//	  "compose": {"maxDepth": 256},
//	  "assets": {"dir": "images", "prefix": "/static/", "manifest": "manifest.json"},
//	  "publish": {"dir": "dist"},
//	  "s3": {"bucket": "my-site", "prefix": "react/", "region": "eu-west-1"},
//	  "snapshot": {"path": ".proptree/snapshots.db"},
//	  "log": {"level": "info", "format": "text"},
//	  "telemetry": {"otlpEndpoint": "localhost:4318", "serviceName": "proptree"},
//	  "props": {"hello": "props/hello.yaml"}
//	}
//
// Environment variables prefixed with PROPTREE_ override file values, for
// example PROPTREE_ADDR, PROPTREE_LOG_LEVEL or PROPTREE_S3_BUCKET.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Server.Addr)
package config
