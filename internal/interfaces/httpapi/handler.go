package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/npl-fantasy/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	catalogService     *usecase.CatalogService
	rosterService      *usecase.RosterService
	statsService       *usecase.PlayerStatsService
	squadService       *usecase.SquadService
	scoringService     *usecase.ScoringService
	scoringJobService  *usecase.ScoringJobService
	leaderboardService *usecase.LeaderboardService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	rosterService *usecase.RosterService,
	statsService *usecase.PlayerStatsService,
	squadService *usecase.SquadService,
	scoringService *usecase.ScoringService,
	scoringJobService *usecase.ScoringJobService,
	leaderboardService *usecase.LeaderboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:     catalogService,
		rosterService:      rosterService,
		statsService:       statsService,
		squadService:       squadService,
		scoringService:     scoringService,
		scoringJobService:  scoringJobService,
		leaderboardService: leaderboardService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and runs struct validation.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}

	return v, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}

	return v, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}

	return v, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", usecase.ErrInvalidInput, name)
	}

	return v, nil
}

func requestUserID(ctx context.Context) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: user is missing from request context", usecase.ErrUnauthorized)
	}

	return userID, nil
}
