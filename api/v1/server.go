package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServerInterface is implemented by the API handler.
type ServerInterface interface {
	// (GET /health)
	GetHealth(c *gin.Context)
	// (POST /validations/{check})
	PostValidation(c *gin.Context, check string)
	// (GET /inventory/{hostname})
	GetInventoryHost(c *gin.Context, hostname string)
	// (PUT /inventory/{hostname})
	PutInventoryHost(c *gin.Context, hostname string)
	// (POST /runs)
	CreateRun(c *gin.Context)
	// (GET /runs)
	ListRuns(c *gin.Context, params ListRunsParams)
	// (GET /runs/{id})
	GetRun(c *gin.Context, id uuid.UUID)
}

// RegisterHandlers binds the API routes of si to router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	router.GET("/health", si.GetHealth)
	router.POST("/validations/:check", func(c *gin.Context) {
		si.PostValidation(c, c.Param("check"))
	})
	router.GET("/inventory/:hostname", func(c *gin.Context) {
		si.GetInventoryHost(c, c.Param("hostname"))
	})
	router.PUT("/inventory/:hostname", func(c *gin.Context) {
		si.PutInventoryHost(c, c.Param("hostname"))
	})
	router.POST("/runs", si.CreateRun)
	router.GET("/runs", func(c *gin.Context) {
		var params ListRunsParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, Error{Error: "invalid query parameters: " + err.Error()})
			return
		}
		si.ListRuns(c, params)
	})
	router.GET("/runs/:id", func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, Error{Error: "invalid run id: " + c.Param("id")})
			return
		}
		si.GetRun(c, id)
	})
}
