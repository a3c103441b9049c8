package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authdomain "realty/backend/internal/domain/auth"
	listingdomain "realty/backend/internal/domain/listing"
	"realty/backend/internal/metrics"
	authusecase "realty/backend/internal/usecase/auth"
	listingusecase "realty/backend/internal/usecase/listing"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/metrics", metrics.Handler())

	s.router.Handle("/auth/signup/", http.HandlerFunc(s.handleSignup))
	s.router.Handle("/auth/signin", http.HandlerFunc(s.handleSignin))
	s.router.Handle("/auth/key", http.HandlerFunc(s.handleProductKey))
	s.router.Handle("/auth/me", s.authMiddleware(http.HandlerFunc(s.handleMe)))

	s.router.Handle("/listings", http.HandlerFunc(s.handleListings))
	s.router.Handle("/listings/", http.HandlerFunc(s.handleListingByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	role, err := authdomain.ParseRole(strings.TrimPrefix(r.URL.Path, "/auth/signup/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload struct {
		Email      string `json:"email"`
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		Password   string `json:"password"`
		ProductKey string `json:"productKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, err := s.authService.Signup(r.Context(), role, authusecase.SignupInput{
		Email:      payload.Email,
		Name:       payload.Name,
		Phone:      payload.Phone,
		Password:   payload.Password,
		ProductKey: payload.ProductKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, authdomain.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	metrics.SignupsTotal.WithLabelValues(string(role)).Inc()
	metrics.TokensIssuedTotal.Inc()
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, err := s.authService.Signin(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	metrics.TokensIssuedTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleProductKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	role, err := authdomain.ParseRole(payload.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, err := s.authService.GenerateProductKey(payload.Email, role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"productKey": key})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		metrics.ListingSearchesTotal.Inc()
		query := r.URL.Query()
		items, err := s.listingService.Search(ctx, query.Get("city"), query.Get("minPrice"), query.Get("propertyType"))
		if err != nil {
			switch {
			case errors.Is(err, listingdomain.ErrNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, listingdomain.ErrInvalidPropertyType):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"listings": items})
	case http.MethodPost:
		claims, ok := s.requireIdentity(w, r)
		if !ok {
			return
		}
		var payload listingusecase.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		item, err := s.listingService.Create(ctx, claims.UserID, payload)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleListingByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/listings/"), "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "listing id required")
		return
	}

	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		item, err := s.listingService.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, listingdomain.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
			} else {
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut, http.MethodPatch:
		claims, ok := s.requireIdentity(w, r)
		if !ok {
			return
		}
		var payload listingusecase.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		item, err := s.listingService.UpdateByID(ctx, claims.UserID, id, payload)
		if err != nil {
			switch {
			case errors.Is(err, listingdomain.ErrNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, listingdomain.ErrNotOwner):
				writeError(w, http.StatusUnauthorized, err.Error())
			case errors.Is(err, listingdomain.ErrInvalidPropertyType):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, item)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch)
	}
}

// requireIdentity decodes the bearer token for routes that serve both public
// and authenticated methods.
func (s *Server) requireIdentity(w http.ResponseWriter, r *http.Request) (*authusecase.Claims, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "authorization token required")
		return nil, false
	}
	claims, err := s.authService.VerifyToken(token)
	if err != nil {
		if errors.Is(err, authdomain.ErrTokenExpired) {
			writeError(w, http.StatusUnauthorized, "token expired")
		} else {
			writeError(w, http.StatusUnauthorized, "invalid token")
		}
		return nil, false
	}
	return claims, true
}
