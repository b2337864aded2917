package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stepm01/cruzHacks/core/student"
)

// The catalog endpoints serve the static reference data behind the profile
// and campus pickers. No auth; the data is public.
func registerCatalogAPI(g *echo.Group) {
	cg := g.Group("/catalog")
	cg.GET("/colleges", listColleges)
	cg.GET("/majors", listMajors)
	cg.GET("/campuses", listCampuses)
}

func listColleges(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"colleges": student.Colleges})
}

func listMajors(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"majors": student.Majors})
}

func listCampuses(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"campuses": student.Campuses})
}
