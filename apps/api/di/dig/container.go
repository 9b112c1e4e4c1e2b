package dig_container

import (
	"log"
	"os"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/apps/shared"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/views"
	emailsvc "github.com/trezcool/darasa/services/email"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// Repositories splits the store so each service asks only for what it uses.
type Repositories struct {
	dig.Out
	Students   student.Repository
	Grades     grade.Repository
	Attendance attendance.Repository
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStore(conf *core.Config, loggerParam DBLoggerParam) *storage.Store {
	store, err := storage.Open(conf)
	if err != nil {
		loggerParam.Logger.Fatal("setting up database: "+err.Error(), err)
	}
	loggerParam.Logger.Info("using " + store.Engine + " database")
	return store
}

func newRepositories(store *storage.Store) Repositories {
	return Repositories{
		Students:   store.Students,
		Grades:     store.Grades,
		Attendance: store.Attendance,
	}
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, log.New(os.Stdout, "MAIL : ", log.LstdFlags), logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newGradeService(repo grade.Repository, students student.Repository, validate *validator.Validate) *grade.Service {
	return grade.NewService(repo, students, validate)
}

func newAttendanceService(repo attendance.Repository, students student.Repository, validate *validator.Validate) *attendance.Service {
	return attendance.NewService(repo, students, validate)
}

func newViewServices(
	students *student.Service,
	grades *grade.Service,
	records *attendance.Service,
	logger core.Logger,
	translator ut.Translator,
) views.Services {
	return views.Services{
		Students:   students,
		Grades:     grades,
		Attendance: records,
		Logger:     logger,
		Translator: translator,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

func newServerDeps(
	conf *core.Config,
	logger core.Logger,
	svcs views.Services,
	validate *validator.Validate,
	translator ut.Translator,
	mailer core.EmailService,
) echoapi.ServerDeps {
	return echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Services:   svcs,
		Validate:   validate,
		Translator: translator,
		Mailer:     mailer,
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStore))
	must(c.Provide(newRepositories))
	must(c.Provide(newEmailService))
	must(c.Provide(shared.NewTranslator))
	must(c.Provide(shared.NewValidator))
	must(c.Provide(student.NewService))
	must(c.Provide(newGradeService))
	must(c.Provide(newAttendanceService))
	must(c.Provide(newViewServices))
	must(c.Provide(newServerDeps))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
