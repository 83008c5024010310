// File: utils/constants.go
package utils

import "time"

// DBConnectTimeout bounds the initial MongoDB connect and ping.
const DBConnectTimeout = 10 * time.Second

// DBQueryTimeout bounds a single repository call.
const DBQueryTimeout = 5 * time.Second

// DBDisconnectTimeout bounds client shutdown.
const DBDisconnectTimeout = 5 * time.Second

// CachePingTimeout bounds the Redis reachability check at startup.
const CachePingTimeout = 2 * time.Second

// HealthCheckTimeout bounds one round of dependency pings.
const HealthCheckTimeout = 5 * time.Second
