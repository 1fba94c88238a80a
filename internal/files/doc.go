// Package files provides file system discovery utilities for locating
// Gamry signal exports on disk.
//
// Discovery finds .DTA files in a directory (sorted by name so batch
// parsing enumerates deterministically) and supports glob-pattern lookups.
// All operations are relative to a base path to maintain portability.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	signalFiles, err := discovery.FindSignalFiles("measurements")
package files
