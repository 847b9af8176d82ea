package secrets

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/secretkeeper/handler"
	"github.com/dmitrymomot/secretkeeper/pkg/auth"
	"github.com/dmitrymomot/secretkeeper/pkg/cookie"
	"github.com/dmitrymomot/secretkeeper/pkg/logger"
	"github.com/dmitrymomot/secretkeeper/pkg/metrics"
	"github.com/dmitrymomot/secretkeeper/pkg/users"
)

const flashKey = "message"

type empty struct{}

type CredentialsRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type SubmitRequest struct {
	Secret string `form:"secret"`
}

type CallbackRequest struct {
	Code  string `query:"code"`
	State string `query:"state"`
	Error string `query:"error"`
}

func (s *Service) home(ctx handler.Context, _ empty) handler.Response {
	_, authenticated := IdentityFromContext(ctx)
	return handler.Templ(s.views.Home(HomePageParams{
		Message:       s.popFlash(ctx),
		Authenticated: authenticated,
	}))
}

func (s *Service) loginPage(ctx handler.Context, _ empty) handler.Response {
	return handler.Templ(s.views.Login(LoginPageParams{
		Message:       s.popFlash(ctx),
		GoogleEnabled: s.federated != nil,
	}))
}

func (s *Service) registerPage(ctx handler.Context, _ empty) handler.Response {
	return handler.Templ(s.views.Register(RegisterPageParams{
		Message:       s.popFlash(ctx),
		GoogleEnabled: s.federated != nil,
	}))
}

func (s *Service) register(ctx handler.Context, req CredentialsRequest) handler.Response {
	user, err := s.local.Register(ctx, req.Username, req.Password)
	switch {
	case errors.Is(err, users.ErrDuplicateUsername):
		s.metrics.AuthAttempt(metrics.MethodRegister, metrics.OutcomeDuplicate)
		return handler.Templ(s.views.Home(HomePageParams{Message: msgAlreadyRegistered}))
	case errors.Is(err, auth.ErrMissingCredentials):
		s.metrics.AuthAttempt(metrics.MethodRegister, metrics.OutcomeFailure)
		return handler.Templ(s.views.Register(RegisterPageParams{
			Message:       msgRegistrationFailed,
			Username:      req.Username,
			GoogleEnabled: s.federated != nil,
		}))
	case err != nil:
		s.metrics.AuthAttempt(metrics.MethodRegister, metrics.OutcomeError)
		return s.storeFailure(ctx, "registration failed", err)
	}

	s.metrics.AuthAttempt(metrics.MethodRegister, metrics.OutcomeSuccess)
	return s.startSession(ctx, user.ID)
}

func (s *Service) login(ctx handler.Context, req CredentialsRequest) handler.Response {
	user, err := s.local.Authenticate(ctx, req.Username, req.Password)
	if err == nil {
		s.metrics.AuthAttempt(metrics.MethodLocal, metrics.OutcomeSuccess)
		return s.startSession(ctx, user.ID)
	}

	if !errors.Is(err, auth.ErrInvalidCredentials) {
		s.metrics.AuthAttempt(metrics.MethodLocal, metrics.OutcomeError)
		return s.storeFailure(ctx, "login failed", err)
	}

	s.metrics.AuthAttempt(metrics.MethodLocal, metrics.OutcomeFailure)
	switch {
	case s.cfg.UnifyLoginErrors:
		return handler.Templ(s.views.Login(LoginPageParams{
			Message:       msgInvalidLogin,
			Username:      req.Username,
			GoogleEnabled: s.federated != nil,
		}))
	case errors.Is(err, users.ErrUserNotFound):
		return handler.Templ(s.views.Home(HomePageParams{Message: msgNotRegistered}))
	default:
		return handler.Templ(s.views.Login(LoginPageParams{
			Message:       msgWrongPassword,
			Username:      req.Username,
			GoogleEnabled: s.federated != nil,
		}))
	}
}

func (s *Service) logout(ctx handler.Context, _ empty) handler.Response {
	if err := s.sessions.Logout(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke session", logger.Error(err))
	}
	return handler.Redirect("/")
}

func (s *Service) googleStart(ctx handler.Context, _ empty) handler.Response {
	state, err := s.state.Issue(ctx.ResponseWriter())
	if err != nil {
		return s.providerFailure(ctx, err)
	}
	url, err := s.federated.AuthURL(state)
	if err != nil {
		return s.providerFailure(ctx, err)
	}
	return handler.Redirect(url)
}

func (s *Service) googleCallback(ctx handler.Context, req CallbackRequest) handler.Response {
	if req.Error != "" {
		return s.providerFailure(ctx, errors.Join(auth.ErrProviderAuth, errors.New(req.Error)))
	}
	if err := s.state.Verify(ctx.ResponseWriter(), ctx.Request(), req.State); err != nil {
		return s.providerFailure(ctx, errors.Join(auth.ErrProviderAuth, err))
	}

	user, err := s.federated.Authenticate(ctx, req.Code)
	if err != nil {
		return s.providerFailure(ctx, err)
	}

	s.metrics.AuthAttempt(metrics.MethodGoogle, metrics.OutcomeSuccess)
	return s.startSession(ctx, user.ID)
}

func (s *Service) secretsPage(ctx handler.Context, _ empty) handler.Response {
	id, _ := IdentityFromContext(ctx)
	return handler.Templ(s.views.Secrets(SecretsPageParams{
		Username:     id.Username,
		Secrets:      id.Secrets(),
		EmptyMessage: msgNoSecrets,
	}))
}

func (s *Service) submitPage(ctx handler.Context, _ empty) handler.Response {
	return handler.Templ(s.views.Submit(SubmitPageParams{}))
}

func (s *Service) submit(ctx handler.Context, req SubmitRequest) handler.Response {
	id, _ := IdentityFromContext(ctx)

	if strings.TrimSpace(req.Secret) == "" {
		return handler.Templ(s.views.Submit(SubmitPageParams{Message: msgEmptySecret}))
	}

	if err := s.storage.AppendSecret(ctx, id.UserID, req.Secret); err != nil {
		return s.storeFailure(ctx, "failed to append secret", err)
	}

	s.metrics.SecretSubmitted()
	return handler.Redirect("/secrets")
}

// startSession establishes the session for a verified user.
func (s *Service) startSession(ctx handler.Context, userID uuid.UUID) handler.Response {
	if _, err := s.sessions.Login(ctx, ctx.ResponseWriter(), ctx.Request(), userID); err != nil {
		return s.storeFailure(ctx, "failed to create session", err)
	}
	return handler.Redirect("/secrets")
}

func (s *Service) storeFailure(ctx handler.Context, msg string, err error) handler.Response {
	s.logger.ErrorContext(ctx, msg, logger.Error(err))
	s.setFlash(ctx, msgTryAgain)
	return handler.Redirect("/login")
}

func (s *Service) providerFailure(ctx handler.Context, err error) handler.Response {
	s.metrics.AuthAttempt(metrics.MethodGoogle, metrics.OutcomeFailure)
	s.logger.WarnContext(ctx, "federated login failed",
		logger.Provider(s.federated.ProviderID()),
		logger.Error(err),
	)
	s.setFlash(ctx, msgProviderFailed)
	return handler.Redirect("/login")
}

func (s *Service) setFlash(ctx handler.Context, msg string) {
	if s.flash == nil {
		return
	}
	if err := s.flash.SetFlash(ctx.ResponseWriter(), flashKey, msg); err != nil {
		s.logger.WarnContext(ctx, "failed to set flash message", logger.Error(err))
	}
}

func (s *Service) popFlash(ctx handler.Context) string {
	if s.flash == nil {
		return ""
	}
	var msg string
	if err := s.flash.GetFlash(ctx.ResponseWriter(), ctx.Request(), flashKey, &msg); err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			s.logger.DebugContext(ctx, "unreadable flash message", logger.Error(err))
		}
		return ""
	}
	return msg
}
