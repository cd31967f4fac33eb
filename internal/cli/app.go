package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/hnrobert/feedbackgalaxy/internal/auth"
	"github.com/hnrobert/feedbackgalaxy/internal/config"
	"github.com/hnrobert/feedbackgalaxy/internal/datafs"
	"github.com/hnrobert/feedbackgalaxy/internal/feedback"
	"github.com/hnrobert/feedbackgalaxy/internal/logger"
	"github.com/hnrobert/feedbackgalaxy/internal/prompt"
	"github.com/hnrobert/feedbackgalaxy/internal/roster"
	"github.com/hnrobert/feedbackgalaxy/internal/session"
	"github.com/hnrobert/feedbackgalaxy/internal/students"
	"github.com/hnrobert/feedbackgalaxy/internal/validation"
)

type App struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer
	prompt *prompt.Prompter
	now    func() time.Time

	validate *validation.Validator
	users    *roster.Store
	sessions *session.Store
	guard    *auth.Guard
	auth     *auth.Service
	students *students.Service
	feedback *feedback.Repository
}

// New wires the stores for one invocation. in supplies prompt answers; out
// receives command output and errOut receives rendered errors.
func New(cfg *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	if err := datafs.EnsureDir(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", cfg.DataDir, err)
	}
	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}

	var sessOpts []session.Option
	if cfg.SessionSecret != "" {
		sessOpts = append(sessOpts, session.WithSecret([]byte(cfg.SessionSecret)))
	}

	v := validation.New()
	users := roster.NewStore(cfg.UsersFile, roster.WithScheme(scheme))
	sessions := session.NewStore(cfg.SessionFile, sessOpts...)
	guard := auth.NewGuard(sessions)

	return &App{
		cfg:      cfg,
		out:      out,
		errOut:   errOut,
		prompt:   prompt.New(in, out),
		now:      time.Now,
		validate: v,
		users:    users,
		sessions: sessions,
		guard:    guard,
		auth:     auth.NewService(users, sessions),
		students: students.NewService(users, guard, v),
		feedback: feedback.NewRepository(cfg.FeedbackDir, guard, v),
	}, nil
}

// ConfigureLogging points console logging at w and enables the file log
// when the configuration asks for one.
func ConfigureLogging(cfg *config.Config, w io.Writer) {
	level := logger.LevelWarn
	if cfg.Verbose {
		level = logger.LevelInfo
	}
	logger.SetOutput(w, level, !cfg.NoColor)
	if cfg.FileLogging() {
		if err := logger.Init(cfg.LogDir); err != nil {
			logger.Warn("file logging disabled: %v", err)
		}
	}
}

func (a *App) color() bool { return !a.cfg.NoColor }

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// ask prompts for a free-text answer and validates it under label.
func (a *App) ask(label, question string) (string, error) {
	ans, err := a.prompt.Text(question)
	if err != nil {
		return "", err
	}
	return a.validate.Text(label, ans)
}

func (a *App) askPassword(label, question string) (string, error) {
	ans, err := a.prompt.Password(question)
	if err != nil {
		return "", err
	}
	return a.validate.Text(label, ans)
}
