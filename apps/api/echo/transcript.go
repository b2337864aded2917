package echoapi

import (
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/stepm01/cruzHacks/core"
	"github.com/stepm01/cruzHacks/core/student"
)

type transcriptApi struct {
	svc *student.Service
}

func registerTranscriptAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *student.Service) {
	api := transcriptApi{svc: svc}

	tg := g.Group("/transcript", jwt)
	tg.GET("", api.list)
	tg.POST("/courses", api.add)
	tg.DELETE("/courses/:id", api.remove)
	tg.POST("/upload", api.upload)
}

func (api *transcriptApi) list(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	courses, err := api.svc.Transcript(ctx.Request().Context(), sess)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return ctx.JSON(http.StatusOK, echo.Map{"courses": []student.Course{}})
		}
		return errors.Wrap(err, "getting transcript")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"courses": courses})
}

func (api *transcriptApi) add(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	var data student.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	course, err := api.svc.AddCourse(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "adding course")
	}
	return ctx.JSON(http.StatusCreated, course)
}

func (api *transcriptApi) remove(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.RemoveCourse(ctx.Request().Context(), sess, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "removing course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// upload accepts a plain-text transcript file and records the extracted
// courses.
func (api *transcriptApi) upload(ctx echo.Context) error {
	sess, err := getSession(ctx)
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("transcript")
	if err != nil {
		return core.NewValidationError(errors.New("transcript file is required"))
	}
	if !isPlainText(fh.Header.Get("Content-Type"), fh.Filename) {
		return core.NewValidationError(errors.New("please upload a plain text (.txt) file"))
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()

	text, err := ioutil.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "reading uploaded file")
	}

	courses, err := api.svc.UploadTranscript(ctx.Request().Context(), sess, string(text))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"courses": courses})
}

func isPlainText(contentType, filename string) bool {
	if contentType != "" && strings.Contains(contentType, "text") {
		return true
	}
	if contentType == "" || contentType == "application/octet-stream" {
		return strings.HasSuffix(strings.ToLower(filename), ".txt")
	}
	return false
}
