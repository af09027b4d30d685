package gateway

import (
	"embed"
	"io/fs"
	"net/http"
	"os"

	"github.com/quocvuong92/operator-console/internal/logging"
)

//go:embed web
var embedded embed.FS

// staticHandler serves PublicDir when it exists, else the embedded page
func (s *Server) staticHandler() http.Handler {
	if s.publicDir != "" {
		if info, err := os.Stat(s.publicDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(s.publicDir))
		}
		s.logger.Debug("Public directory not found, serving embedded page", logging.Fields{
			"public_dir": s.publicDir,
		})
	}

	sub, err := fs.Sub(embedded, "web")
	if err != nil {
		// web is compiled in, so this only fails if the embed directive changes
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
