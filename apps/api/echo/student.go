package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stepm01/cruzHacks/core/student"
	"github.com/stepm01/cruzHacks/core/verification"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *student.Service) {
	api := studentApi{svc: svc}

	ag := g.Group("", jwt)
	ag.GET("/session", api.session)
	ag.PUT("/profile", api.updateProfile)
	ag.PUT("/profile/campus", api.selectCampus)
}

// session bootstraps the student doc on sign-in and reports where the
// student is in the flow.
func (api *studentApi) session(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	doc, err := api.svc.EnsureStudent(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "ensuring student")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"session": sess,
		"profile": doc.Profile,
		"steps":   verification.Steps(doc),
	})
}

func (api *studentApi) updateProfile(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	var data student.ProfileUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProfileUpdate")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	profile, err := api.svc.UpdateProfile(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *studentApi) selectCampus(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	var data student.CampusSelection
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CampusSelection")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.svc.SelectCampus(ctx.Request().Context(), sess, data.Campus); err != nil {
		return errors.Wrap(err, "selecting campus")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"targetUC": data.Campus})
}
