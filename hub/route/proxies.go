package route

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"gorm.io/gorm"

	"github.com/qauzy/proxydump/models"
)

type proxiesResponse struct {
	Count   int             `json:"count"`
	Proxies []models.Record `json:"proxies"`
}

func proxyRouter(db *gorm.DB) http.Handler {
	r := chi.NewRouter()
	r.Get("/", getProxies(db))
	r.Get("/{protocol}", getProxiesByProtocol(db))
	return r
}

func getProxies(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := make([]models.Record, 0)
		if err := db.WithContext(r.Context()).Find(&records).Error; err != nil {
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, newError(err.Error()))
			return
		}
		render.JSON(w, r, proxiesResponse{Count: len(records), Proxies: records})
	}
}

func getProxiesByProtocol(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		protocol := chi.URLParam(r, "protocol")
		records := make([]models.Record, 0)
		err := db.WithContext(r.Context()).Where("protocol = ?", protocol).Find(&records).Error
		if err != nil {
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, newError(err.Error()))
			return
		}
		render.JSON(w, r, proxiesResponse{Count: len(records), Proxies: records})
	}
}
