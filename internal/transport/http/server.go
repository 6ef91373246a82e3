package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dcolors/internal/domain/models"
	"dcolors/internal/lib/logger/sl"
	mw "dcolors/internal/middleware"
	"dcolors/internal/services/auth"
	"dcolors/internal/services/catalog"
	"dcolors/internal/services/imaging"
	services "dcolors/internal/services/painting_service"
	"dcolors/internal/transport/http/dto"
	"dcolors/internal/transport/http/dto/request"
	"dcolors/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

type PaintingService interface {
	CreatePainting(ctx context.Context, draft catalog.Draft) (uuid.UUID, catalog.FieldErrors, error)
	UpdatePainting(ctx context.Context, id uuid.UUID, draft catalog.Draft) (catalog.FieldErrors, error)
	DeletePainting(ctx context.Context, id uuid.UUID) error
	GetPainting(ctx context.Context, id uuid.UUID) (models.Painting, error)
	ListPaintings(ctx context.Context, spec models.FilterSpec) ([]models.Painting, error)
	Latest(ctx context.Context) ([]models.Painting, error)
	Categories(ctx context.Context) ([]models.CategoryPreview, error)
	RelatedBySize(ctx context.Context, id uuid.UUID) ([]models.Painting, error)
	Vocabulary(ctx context.Context, sessionID string) (models.Vocabulary, error)
	RememberVocabulary(ctx context.Context, sessionID, category, author string) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, models.AuthState, error)
	Logout(ctx context.Context, sessionID string) error
}

type ImageOptimizer interface {
	OptimizeBatch(ctx context.Context, sources []imaging.Source) (imaging.BatchResult, error)
}

type Routers struct {
	log             *slog.Logger
	PaintingService PaintingService
	AuthService     AuthService
	Optimizer       ImageOptimizer
}

func NewRouter(log *slog.Logger, paintingService PaintingService, authService AuthService, optimizer ImageOptimizer) *Routers {
	return &Routers{
		log:             log,
		PaintingService: paintingService,
		AuthService:     authService,
		Optimizer:       optimizer,
	}
}

// Login открывает сессию администратора и кладёт токен в cookie
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, resp)
	}

	token, state, err := r.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			resp := response.ErrAuthenticationFailed
			resp.Details = "Invalid email or password"
			return c.JSON(http.StatusUnauthorized, resp)
		}
		log.Error("login failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	sess, err := session.Get(mw.SessionName, c)
	if err != nil {
		log.Error("failed to get session", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
	sess.Values[mw.SessionTokenKey] = token
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to save session", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.SessionResponse{
		Authenticated: true,
		Email:         state.Email,
	}))
}

func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	state := mw.AuthState(c)
	if err := r.AuthService.Logout(c.Request().Context(), state.SessionID); err != nil {
		r.log.Error("logout failed", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	if sess, err := session.Get(mw.SessionName, c); err == nil {
		delete(sess.Values, mw.SessionTokenKey)
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			r.log.Warn("failed to clear session cookie", slog.String("op", op), sl.Err(err))
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.SessionResponse{Authenticated: false}))
}

func (r *Routers) Session(c echo.Context) error {
	state := mw.AuthState(c)

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.SessionResponse{
		Authenticated: state.IsAuthenticated(),
		Email:         state.Email,
	}))
}

// ListPaintings отдаёт галерею с фильтрами category, author, size, sort, q
func (r *Routers) ListPaintings(c echo.Context) error {
	const op = "http.routers.ListPaintings"

	var q request.PaintingsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(q); err != nil {
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		return c.JSON(http.StatusBadRequest, resp)
	}

	paintings, err := r.PaintingService.ListPaintings(c.Request().Context(), q.ToFilter())
	if err != nil {
		return r.serviceError(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(paintings))
}

func (r *Routers) LatestPaintings(c echo.Context) error {
	const op = "http.routers.LatestPaintings"

	paintings, err := r.PaintingService.Latest(c.Request().Context())
	if err != nil {
		return r.serviceError(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(paintings))
}

func (r *Routers) GetPainting(c echo.Context) error {
	const op = "http.routers.GetPainting"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	painting, err := r.PaintingService.GetPainting(c.Request().Context(), id)
	if err != nil {
		return r.serviceError(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(painting))
}

func (r *Routers) RelatedPaintings(c echo.Context) error {
	const op = "http.routers.RelatedPaintings"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	paintings, err := r.PaintingService.RelatedBySize(c.Request().Context(), id)
	if err != nil {
		return r.serviceError(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(paintings))
}

func (r *Routers) Categories(c echo.Context) error {
	const op = "http.routers.Categories"

	previews, err := r.PaintingService.Categories(c.Request().Context())
	if err != nil {
		return r.serviceError(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(previews))
}

// Vocabulary includes the admin's session additions when signed in.
func (r *Routers) Vocabulary(c echo.Context) error {
	const op = "http.routers.Vocabulary"

	vocab, err := r.PaintingService.Vocabulary(c.Request().Context(), mw.AuthState(c).SessionID)
	if err != nil {
		return r.serviceError(c, op, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(vocab))
}

func (r *Routers) RememberVocabulary(c echo.Context) error {
	const op = "http.routers.RememberVocabulary"

	var req request.VocabularyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		resp := response.ErrInvalidRequestFormat
		resp.Details = err.Error()
		return c.JSON(http.StatusBadRequest, resp)
	}

	state := mw.AuthState(c)
	if err := r.PaintingService.RememberVocabulary(c.Request().Context(), state.SessionID, req.Category, req.Author); err != nil {
		return r.serviceError(c, op, err)
	}

	return r.Vocabulary(c)
}

// UploadImages оптимизирует до четырёх файлов из поля files
func (r *Routers) UploadImages(c echo.Context) error {
	const op = "http.routers.UploadImages"

	log := r.log.With(
		slog.String("op", op),
	)

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, response.ErrNoFiles)
	}

	sources := make([]imaging.Source, len(files))
	for i, fh := range files {
		sources[i] = imaging.FromFileHeader(fh)
	}

	result, err := r.Optimizer.OptimizeBatch(c.Request().Context(), sources)
	if err != nil {
		// клиент ушёл, результат никому не нужен
		log.Warn("upload abandoned", sl.Err(err))
		return c.NoContent(http.StatusRequestTimeout)
	}

	log.Info("images optimized",
		slog.Int("accepted", len(result.Images)),
		slog.Int("rejected", len(result.Rejected)),
	)

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.UploadResponse{
		Images:   result.Images,
		Rejected: result.Rejected,
	}))
}

func (r *Routers) CreatePainting(c echo.Context) error {
	const op = "http.routers.CreatePainting"

	var req request.PaintingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	id, fields, err := r.PaintingService.CreatePainting(c.Request().Context(), req.ToDraft())
	if err != nil {
		return r.serviceError(c, op, err)
	}
	if !fields.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(fields))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.CreatedResponse{ID: id.String()}))
}

func (r *Routers) UpdatePainting(c echo.Context) error {
	const op = "http.routers.UpdatePainting"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req request.PaintingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	fields, err := r.PaintingService.UpdatePainting(c.Request().Context(), id, req.ToDraft())
	if err != nil {
		return r.serviceError(c, op, err)
	}
	if !fields.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, response.ValidationFailed(fields))
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "painting updated"})
}

func (r *Routers) DeletePainting(c echo.Context) error {
	const op = "http.routers.DeletePainting"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	if err := r.PaintingService.DeletePainting(c.Request().Context(), id); err != nil {
		return r.serviceError(c, op, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "ok"})
}

func (r *Routers) serviceError(c echo.Context, op string, err error) error {
	var pe *services.PersistenceError

	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrPaintingNotFound)
	case errors.As(err, &pe):
		r.log.Error("storage failure", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusBadGateway, response.ErrPersistence)
	default:
		r.log.Error("unexpected error", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
}
