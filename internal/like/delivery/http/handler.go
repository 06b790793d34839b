package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/article-likes/internal/like/client"
	"github.com/tair/article-likes/internal/like/domain"
	"github.com/tair/article-likes/internal/like/usecase/command"
	"github.com/tair/article-likes/internal/like/usecase/query"
	"github.com/tair/article-likes/pkg/logger"
)

// HandlerConfig carries the settings the HTTP layer needs
type HandlerConfig struct {
	JWTSecret   string
	MaxPageSize int
}

// LikeHandler handles HTTP requests for article likes
type LikeHandler struct {
	// Command handlers
	createHandler *command.CreateLikeHandler
	removeHandler *command.RemoveLikeHandler

	// Query handlers
	listHandler   *query.ListLikesHandler
	countHandler  *query.CountLikesHandler
	statusHandler *query.GetLikeStatusHandler

	cfg      HandlerConfig
	validate *validator.Validate

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	likesCreated   prometheus.Counter
	likesRemoved   prometheus.Counter
}

// NewLikeHandler creates a new like handler and registers its metrics on reg
func NewLikeHandler(
	repo domain.LikeRepository,
	articles domain.ArticleFinder,
	users domain.UserFinder,
	cfg HandlerConfig,
	reg prometheus.Registerer,
) *LikeHandler {
	return NewLikeHandlerWithDI(
		command.NewCreateLikeHandler(repo, articles, users),
		command.NewRemoveLikeHandler(repo),
		query.NewListLikesHandler(repo),
		query.NewCountLikesHandler(repo),
		query.NewGetLikeStatusHandler(repo),
		cfg,
		reg,
	)
}

// NewLikeHandlerWithDI creates a like handler from prebuilt command and query handlers
func NewLikeHandlerWithDI(
	createHandler *command.CreateLikeHandler,
	removeHandler *command.RemoveLikeHandler,
	listHandler *query.ListLikesHandler,
	countHandler *query.CountLikesHandler,
	statusHandler *query.GetLikeStatusHandler,
	cfg HandlerConfig,
	reg prometheus.Registerer,
) *LikeHandler {
	if cfg.MaxPageSize < 1 {
		cfg.MaxPageSize = 100
	}

	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "likes_service_requests_total",
			Help: "Total number of requests to likes service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "likes_service_request_duration_seconds",
			Help:    "Duration of likes service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	likesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "likes_service_likes_created_total",
		Help: "Total number of likes created",
	})

	likesRemoved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "likes_service_likes_removed_total",
		Help: "Total number of likes removed",
	})

	reg.MustRegister(requestCounter, requestLatency, likesCreated, likesRemoved)

	return &LikeHandler{
		createHandler:  createHandler,
		removeHandler:  removeHandler,
		listHandler:    listHandler,
		countHandler:   countHandler,
		statusHandler:  statusHandler,
		cfg:            cfg,
		validate:       validator.New(),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		likesCreated:   likesCreated,
		likesRemoved:   likesRemoved,
	}
}

// Response is the envelope of every JSON response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// LikePage is one page of an article's likes together with the article total
type LikePage struct {
	Likes    []domain.Like `json:"likes"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int64         `json:"total"`
}

type articleParams struct {
	ArticleID uint `validate:"required"`
}

type pageParams struct {
	Page     int
	PageSize int
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *LikeHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// CreateLike godoc
// @Summary Like an article
// @Description Like an article as the authenticated user
// @Tags Likes
// @Security BearerAuth
// @Produce json
// @Param article_id path int true "Article ID"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/articles/{article_id}/likes [post]
func (h *LikeHandler) CreateLike(w http.ResponseWriter, r *http.Request) {
	articleID, ok := h.articleID(w, r)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	like, err := h.createHandler.Handle(r.Context(), command.CreateLikeCommand{
		ArticleID: articleID,
		UserID:    userID,
	})
	if err != nil {
		h.handleError(w, r, err, "Failed to create like")
		return
	}

	h.likesCreated.Inc()
	logger.Info(r.Context()).
		Uint("article_id", articleID).
		Uint("user_id", userID).
		Str("username", usernameFromContext(r)).
		Uint("like_id", like.ID).
		Msg("Like created")

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Like created successfully",
		Data:    like,
	})
}

// RemoveLike godoc
// @Summary Remove a like
// @Description Withdraw the authenticated user's like
// @Tags Likes
// @Security BearerAuth
// @Produce json
// @Param article_id path int true "Article ID"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /api/articles/{article_id}/likes [delete]
func (h *LikeHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	articleID, ok := h.articleID(w, r)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	err := h.removeHandler.Handle(r.Context(), command.RemoveLikeCommand{
		ArticleID: articleID,
		UserID:    userID,
	})
	if err != nil {
		h.handleError(w, r, err, "Failed to remove like")
		return
	}

	h.likesRemoved.Inc()
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Like removed successfully",
	})
}

// ListLikes godoc
// @Summary List likes of an article
// @Description List one page of an article's likes, oldest first, with the total count
// @Tags Likes
// @Produce json
// @Param article_id path int true "Article ID"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} Response{data=LikePage}
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /api/articles/{article_id}/likes [get]
func (h *LikeHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	articleID, ok := h.articleID(w, r)
	if !ok {
		return
	}

	params, problem := h.parsePageParams(r)
	if problem != "" {
		respondError(w, http.StatusBadRequest, problem)
		return
	}

	likes, err := h.listHandler.Handle(r.Context(), query.ListLikesQuery{
		ArticleID: articleID,
		Page:      params.Page,
		PageSize:  params.PageSize,
	})
	if err != nil {
		h.handleError(w, r, err, "Failed to list likes")
		return
	}

	total, err := h.countHandler.Handle(r.Context(), query.CountLikesQuery{ArticleID: articleID})
	if err != nil {
		h.handleError(w, r, err, "Failed to count likes")
		return
	}

	if params.Page < 1 {
		params.Page = query.DefaultPage
	}
	if params.PageSize < 1 {
		params.PageSize = query.DefaultPageSize
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: LikePage{
			Likes:    likes,
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		},
	})
}

// GetMyLike godoc
// @Summary Get own like status
// @Description Report whether the authenticated user likes the article
// @Tags Likes
// @Security BearerAuth
// @Produce json
// @Param article_id path int true "Article ID"
// @Success 200 {object} Response{data=query.LikeStatus}
// @Failure 401 {object} Response
// @Router /api/articles/{article_id}/likes/me [get]
func (h *LikeHandler) GetMyLike(w http.ResponseWriter, r *http.Request) {
	articleID, ok := h.articleID(w, r)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	status, err := h.statusHandler.Handle(r.Context(), query.GetLikeStatusQuery{
		ArticleID: articleID,
		UserID:    userID,
	})
	if err != nil {
		h.handleError(w, r, err, "Failed to get like status")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    status,
	})
}

// RegisterRoutes registers all like routes
func (h *LikeHandler) RegisterRoutes(router *mux.Router) {
	auth := AuthMiddleware(h.cfg.JWTSecret)
	const likes = "/api/articles/{article_id}/likes"

	router.HandleFunc(likes, h.metricsMiddleware(likes, h.ListLikes)).Methods("GET")
	router.HandleFunc(likes, h.metricsMiddleware(likes, auth(h.CreateLike))).Methods("POST")
	router.HandleFunc(likes, h.metricsMiddleware(likes, auth(h.RemoveLike))).Methods("DELETE")
	router.HandleFunc(likes+"/me", h.metricsMiddleware(likes+"/me", auth(h.GetMyLike))).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint. The state of each
// breaker is reported but an open breaker does not fail the check.
func (h *LikeHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB, breakers ...*client.CircuitBreaker) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		circuits := make(map[string]interface{}, len(breakers))
		for _, cb := range breakers {
			stats := cb.Stats()
			circuits[stats["name"].(string)] = stats["state"]
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Likes service is healthy",
			Data:    map[string]interface{}{"circuits": circuits},
		})
	}).Methods("GET")
}

func (h *LikeHandler) articleID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["article_id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid article ID")
		return 0, false
	}

	params := articleParams{ArticleID: uint(id)}
	if err := h.validate.Struct(params); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid article ID")
		return 0, false
	}
	return params.ArticleID, true
}

// parsePageParams reads page and page_size. Absent values are left at zero
// for the query handler to default; page_size is capped at MaxPageSize.
// A non-empty string describes why the parameters were rejected.
func (h *LikeHandler) parsePageParams(r *http.Request) (pageParams, string) {
	var params pageParams
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, "Invalid page"
		}
		params.Page = page
	}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return params, "Invalid page_size"
		}
		params.PageSize = size
	}

	if params.PageSize > h.cfg.MaxPageSize {
		params.PageSize = h.cfg.MaxPageSize
	}
	return params, ""
}

// handleError maps workflow errors onto HTTP statuses
func (h *LikeHandler) handleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		respondError(w, statusForCode(appErr.Code), appErr.Message)
		return
	}

	logger.Error(r.Context()).Err(err).Msg(msg)
	respondError(w, http.StatusInternalServerError, msg)
}

func statusForCode(code string) int {
	switch code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict:
		return http.StatusConflict
	case domain.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}
