package httpapi

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/files"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service-layer sentinels to status codes. Anything
// unrecognized is an internal failure: the detail is logged, never returned.
func (s *Server) writeServiceError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	case errors.Is(err, common.ErrorForbidden):
		s.writeJSON(w, http.StatusForbidden, errorResponse{Error: "Forbidden"})
	case errors.Is(err, common.ErrorNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Already exist"})
	case common.IsBadRequest(err):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server error"})
	}
}

// authenticate resolves the token header into a user id, writing the 401
// response itself on failure.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := r.Header.Get(common.AuthTokenHeaderName)

	userID, err := s.auth.Authenticate(r.Context(), token)
	if err != nil {
		s.writeServiceError(r, w, err)
		return "", false
	}

	return userID, true
}

// ---- app ----

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.writeJSON(w, http.StatusOK, statusResponse{
		Redis: s.sessions.Ping(ctx) == nil,
		DB:    s.db.Ping(ctx) == nil,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nbUsers, err := s.users.Count(ctx)
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}
	nbFiles, err := s.files.Count(ctx)
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statsResponse{Users: nbUsers, Files: nbFiles})
}

// ---- users ----

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.ErrMissingEmail.Error()})
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", user.Email)
	s.writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		// the session outlived the account; treat as an auth failure
		if errors.Is(err, common.ErrorNotFound) {
			s.writeServiceError(r, w, common.ErrorUnauthorized)
			return
		}
		s.writeServiceError(r, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

// ---- auth ----

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		s.writeServiceError(r, w, common.ErrorUnauthorized)
		return
	}

	token, err := s.auth.SignIn(r.Context(), email, password)
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, connectResponse{Token: token})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(common.AuthTokenHeaderName)

	if err := s.auth.SignOut(r.Context(), token); err != nil {
		s.writeServiceError(r, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---- files ----

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: common.ErrMissingName.Error()})
		return
	}

	file, err := s.files.Upload(r.Context(), userID, files.UploadParams{
		Name:     req.Name,
		Type:     req.Type,
		ParentID: string(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, file.View())
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	file, err := s.files.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, file.View())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	parentID := r.URL.Query().Get("parentId")
	page := 0
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			page = n
		}
	}

	result, err := s.files.List(r.Context(), userID, parentID, page)
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}

	views := make([]*files.View, 0, len(result))
	for _, f := range result {
		views = append(views, f.View())
	}

	s.writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	file, data, err := s.files.Data(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.writeServiceError(r, w, err)
		return
	}

	ctype := mime.TypeByExtension(filepath.Ext(file.Name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}

	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
