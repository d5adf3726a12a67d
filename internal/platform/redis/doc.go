// Package redis provides a Redis-backed second cache tier for synthesized
// lessons, shared between service instances.
package redis
