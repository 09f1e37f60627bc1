package packages

import (
	"github.com/gin-gonic/gin"
)

// SetupPackageRoutes configures the public package browsing routes.
func SetupPackageRoutes(rg *gin.RouterGroup, controller *Controller) {
	packages := rg.Group("/packages")
	{
		packages.GET("", controller.ListPackages)
		packages.GET("/:id", controller.GetPackage)
	}
}
