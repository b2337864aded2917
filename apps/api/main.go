package main

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"

	echoapi "github.com/stepm01/cruzHacks/apps/api/echo"
	"github.com/stepm01/cruzHacks/core"
	"github.com/stepm01/cruzHacks/core/student"
	"github.com/stepm01/cruzHacks/core/verification"
	openrouteradvisor "github.com/stepm01/cruzHacks/services/advisor/openrouter"
	emailsvc "github.com/stepm01/cruzHacks/services/email"
	logsvc "github.com/stepm01/cruzHacks/services/logger"
	"github.com/stepm01/cruzHacks/storage/document"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up logger
	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	// set up DB
	errAndDie(logger, document.CreateIfNotExist(core.Conf))
	db, err := document.Open(core.Conf)
	errAndDie(logger, err)
	defer db.Close()
	errAndDie(logger, document.Migrate(db))
	repo := document.NewStore(db)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	// the advisor doubles as verification provider and transcript extractor;
	// without it, verification runs locally and uploads are rejected upstream
	var provider verification.Provider
	var extractor student.Extractor
	if core.Conf.Advisor.Enabled {
		advisor := openrouteradvisor.NewService(core.Conf.Advisor, logger)
		provider = advisor
		extractor = advisor
	} else {
		extractor = noExtractor{}
	}

	studentSvc := student.NewService(repo, extractor, logger)
	verifSvc := verification.NewService(provider, repo, mailSvc, logger)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:         core.Conf.Server.Addr,
			StudentSvc:      studentSvc,
			VerificationSvc: verifSvc,
			Logger:          logger,
		},
	)
	app.Start()
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}

// noExtractor rejects uploads when no advisor is configured; manual course
// entry still works.
type noExtractor struct{}

func (noExtractor) ExtractCourses(context.Context, string) ([]student.Course, error) {
	return nil, errors.New("transcript extraction requires the advisor to be enabled")
}
