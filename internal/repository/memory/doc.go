// Package memory provides in-process implementations of the repository
// interfaces. They back the server when database.driver is "memory" and serve
// as fakes in tests. State is lost on restart.
package memory
