package restserver

import (
	"embed"
	"io/fs"
	"os"

	"github.com/chrissnell/citibike-dashboard/internal/constants"
)

// Embed the web templates and static files
//
//go:embed all:assets
var assetsFS embed.FS

// GetAssets returns the web assets filesystem, either from disk or embedded
func GetAssets() fs.FS {
	// If CITIBIKE_DASHBOARD_ASSETS_DIR points to a directory, serve templates
	// and static files from it so they can be edited without a rebuild.
	if dir := os.Getenv(constants.AssetsDirEnv); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic("failed to create assets sub-filesystem: " + err.Error())
	}
	return assets
}
