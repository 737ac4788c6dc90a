// Package config loads and validates the service configuration.
//
// Configuration is layered: an optional config.yml file provides the base,
// a .env file can supply environment variables, and real environment
// variables override everything. Nested keys bind from underscore-separated
// variables, e.g. AUTH_JWT_SECRET sets auth.jwt.secret and MONGO_URI sets
// mongo.uri.
package config
