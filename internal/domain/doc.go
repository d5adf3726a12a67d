// Package domain contains the core entities of the lesson synthesis service:
// curriculum records, synthesis requests and the results produced for them.
// It has no dependencies on infrastructure or delivery mechanisms.
package domain
