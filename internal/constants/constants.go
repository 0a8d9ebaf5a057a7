// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the application version information
const Version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// AssetsDirEnv names the environment variable that overrides the embedded
// web templates with a directory on disk.
const AssetsDirEnv = "CITIBIKE_DASHBOARD_ASSETS_DIR"
