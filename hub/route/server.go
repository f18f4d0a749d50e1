package route

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"gorm.io/gorm"

	"github.com/qauzy/proxydump/component/database"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/log"
)

// Router serves the read-only views over the proxies table.
func Router(db *gorm.DB) http.Handler {
	r := chi.NewRouter()

	corsM := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
	r.Use(corsM.Handler)

	r.Get("/", hello)
	r.Get("/version", version)
	r.Mount("/proxies", proxyRouter(db))
	r.Get("/stats", getStats(db))
	return r
}

// Start opens the database at dbPath and serves the API on addr until the
// listener fails.
func Start(addr, dbPath string) error {
	db, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close(db)

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Infoln("[API] RESTful API listening at: %s", l.Addr().String())

	server := &http.Server{
		Handler:           Router(db),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.Serve(l)
}

func hello(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{"hello": C.Name})
}

func version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{"version": C.Version})
}
