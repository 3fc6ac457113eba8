// Package config loads patchwork.json.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 7070,
//	    "historySize": 100,
//	    "writeTimeout": "10s"
//	  },
//	  "metrics": {"enabled": true, "namespace": "patchwork"},
//	  "tracing": {"tracerName": "patchwork"},
//	  "store": {
//	    "backend": "s3",
//	    "s3": {"bucket": "views", "prefix": "snapshots/", "region": "eu-west-1"}
//	  }
//	}
//
// Missing values take the defaults shown above; the store backend
// defaults to "bolt" with path "patchwork.db".
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
