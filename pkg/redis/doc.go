// Package redis connects to the Redis server backing the shared tenant
// cache. Connection settings come from the environment via the config
// loader; Connect retries until the server is reachable so deployments do
// not race their cache.
package redis
