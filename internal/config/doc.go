// Package config loads and validates strada.json, the declarative
// configuration for the strada server binary.
//
// A configuration declares one or more listeners, each with its own route
// table. Requests are dispatched by listening port: a route declared on one
// listener is invisible to every other listener.
//
//	{
//	  "listeners": [
//	    {
//	      "addr": ":8080",
//	      "routes": [
//	        {"method": "GET", "pattern": "/users/%u", "body": "user {1}"}
//	      ]
//	    }
//	  ],
//	  "metrics": {"enabled": true, "addr": ":9090"}
//	}
package config
