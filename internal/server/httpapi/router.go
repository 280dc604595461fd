package httpapi

import "github.com/gin-gonic/gin"

// NewRouter wires the public and authenticated routes.
func NewRouter(h *Handlers, secret []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/properties", h.listProperties)
	api.GET("/properties/search", h.searchProperties)
	api.GET("/properties/:id", h.getProperty)

	authed := api.Group("", RequireAuth(secret))
	authed.POST("/properties", h.createProperty)
	authed.DELETE("/properties/:id", h.deleteProperty)
	authed.GET("/my/properties", h.myProperties)
	authed.POST("/payments", h.createPayment)
	authed.GET("/payments", h.listPayments)
	authed.POST("/images/upload-url", h.imageUploadURL)

	return r
}
