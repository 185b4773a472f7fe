// Package grinderwrap adapts the Grinder read simulator to the Galaxy
// workflow platform.
package grinderwrap

// Version is the release version reported by the binaries.
const Version = "0.3.0"
