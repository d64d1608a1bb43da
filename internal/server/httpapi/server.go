// Package httpapi exposes the service over a JSON HTTP API. It owns route
// dispatch, request decoding and the mapping of service errors to status
// codes; all business rules live in the service layer.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/users"
)

type userSvc interface {
	Register(ctx context.Context, email, password string) (*users.User, error)
	GetByID(ctx context.Context, id string) (*users.User, error)
	Count(ctx context.Context) (int64, error)
}

type authSvc interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (string, error)
}

type fileSvc interface {
	Upload(ctx context.Context, userID string, p files.UploadParams) (*files.File, error)
	Get(ctx context.Context, userID, id string) (*files.File, error)
	List(ctx context.Context, userID, parentID string, page int) ([]*files.File, error)
	Data(ctx context.Context, userID, id string) (*files.File, []byte, error)
	Count(ctx context.Context) (int64, error)
}

// pinger is the readiness probe shared by the session store and the db
// manager.
type pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	address  string
	logger   logging.Logger
	users    userSvc
	auth     authSvc
	files    fileSvc
	sessions pinger
	db       pinger
}

func NewServer(a string, l logging.Logger, us userSvc, as authSvc, fs fileSvc, sessions, db pinger) (*Server, error) {
	return &Server{
		address:  a,
		logger:   l.With("module", "httpapi"),
		users:    us,
		auth:     as,
		files:    fs,
		sessions: sessions,
		db:       db,
	}, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /stats", s.handleStats)

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users/me", s.handleMe)
	mux.HandleFunc("GET /connect", s.handleConnect)
	mux.HandleFunc("GET /disconnect", s.handleDisconnect)

	mux.HandleFunc("POST /files", s.handleUpload)
	mux.HandleFunc("GET /files", s.handleIndex)
	mux.HandleFunc("GET /files/{id}", s.handleShow)
	mux.HandleFunc("GET /files/{id}/data", s.handleData)

	return mux
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
