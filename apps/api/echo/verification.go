package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stepm01/cruzHacks/core/student"
	"github.com/stepm01/cruzHacks/core/verification"
)

type verificationApi struct {
	studentSvc *student.Service
	svc        *verification.Service
}

func registerVerificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, studentSvc *student.Service, svc *verification.Service) {
	api := verificationApi{studentSvc: studentSvc, svc: svc}

	vg := g.Group("/verification", jwt)
	vg.POST("", api.run)
	vg.GET("/results", api.results)
}

func (api *verificationApi) run(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	res, err := api.svc.Run(ctx.Request().Context(), sess)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *verificationApi) results(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	verdict, err := api.studentSvc.SavedVerdict(ctx.Request().Context(), sess)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting saved verdict")
	}
	if verdict == nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, verdict)
}
