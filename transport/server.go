package transport

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/store"
)

const anonymousUser = "anonymous"

type ServerConfig struct {
	Secret   []byte
	TokenTTL time.Duration

	// Ledger receives every finished game; optional
	Ledger store.Ledger

	// Seed for mine placement; zero picks one from the clock
	Seed int64

	// Snapshot to serve instead of random boards, whenever its size is requested
	Snapshot *game.BoardSnapshot

	Logger logrus.FieldLogger
}

func NewServerConfig() ServerConfig {
	return ServerConfig{
		TokenTTL: 24 * time.Hour,
		Logger:   logrus.StandardLogger(),
	}
}

// Server is the remote authority: it owns every board and answers init and
// sweep requests for them.
type Server struct {
	r        *chi.Mux
	store    store.Store
	ledger   store.Ledger
	snapshot *game.BoardSnapshot
	tokens   *TokenIssuer
	log      logrus.FieldLogger

	randLock sync.Mutex
	rand     *rand.Rand
}

func NewServer(st store.Store, config ServerConfig) *Server {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := config.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		ledger:   config.Ledger,
		snapshot: config.Snapshot,
		tokens:   NewTokenIssuer(config.Secret, config.TokenTTL),
		log:      log,
		rand:     rand.New(rand.NewSource(seed)),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger(log))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/", s.handleRequest)
	s.r.Post("/", s.handleRequest)
	s.r.Get("/games/{userID}", s.handleRecentGames)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound)
	})

	return s
}

// Router exposes the router, for tests and embedding
func (s *Server) Router() chi.Router {
	return s.r
}

// ListenAndServe serves on addr until ctx is done, pruning expired sessions
// along the way.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r}

	go s.pruneSessions(ctx, time.Minute)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.WithField("addr", addr).Info("authority listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) pruneSessions(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			pruned, err := s.store.Prune(ctx, now.Add(-s.tokens.TTL()))
			if err != nil {
				s.log.WithError(err).Warn("prune sessions")
			} else if pruned > 0 {
				s.log.WithField("pruned", pruned).Debug("pruned expired sessions")
			}
		}
	}
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	switch r.FormValue(paramRequest) {
	case requestInit:
		s.handleInit(w, r)
	case requestSweep:
		s.handleSweep(w, r)
	default:
		writeError(w, http.StatusBadRequest, CodeBadRequest)
	}
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	size, sizeErr := strconv.Atoi(r.FormValue(paramSize))
	numMines, minesErr := strconv.Atoi(r.FormValue(paramMines))
	if sizeErr != nil || minesErr != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest)
		return
	}
	userID := r.FormValue(paramUserID)
	if userID == "" {
		userID = anonymousUser
	}

	session, err := s.newSession(size, numMines)
	if err != nil {
		code, status := errorCode(err)
		writeError(w, status, code)
		return
	}

	entry := &store.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Session:   session,
		StartedAt: time.Now(),
	}
	token, err := s.tokens.Issue(entry.ID, userID)
	if err != nil {
		s.log.WithError(err).Error("issue token")
		writeError(w, http.StatusInternalServerError, CodeInternal)
		return
	}
	if err := s.store.Save(r.Context(), entry); err != nil {
		s.log.WithError(err).Error("save session")
		writeError(w, http.StatusInternalServerError, CodeInternal)
		return
	}

	s.log.WithFields(logrus.Fields{
		"session": entry.ID,
		"user":    userID,
		"size":    size,
		"mines":   numMines,
	}).Info("new game")
	_ = json.NewEncoder(w).Encode(InitResponse{Token: token})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	claims, err := s.tokens.Parse(r.FormValue(paramToken))
	if err != nil {
		writeError(w, http.StatusUnauthorized, CodeInvalidToken)
		return
	}

	x, xErr := strconv.Atoi(r.FormValue(paramX))
	y, yErr := strconv.Atoi(r.FormValue(paramY))
	if xErr != nil || yErr != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest)
		return
	}

	entry, err := s.store.Get(r.Context(), claims.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, CodeNotFound)
		return
	}

	entry.Lock()
	result, err := entry.Session.Sweep(x, y)
	state, moves := entry.Session.State(), entry.Session.Moves()
	entry.Unlock()

	log := s.log.WithFields(logrus.Fields{"session": entry.ID, "x": x, "y": y})
	if err != nil {
		log.WithError(err).Debug("sweep rejected")
		code, status := errorCode(err)
		writeError(w, status, code)
		return
	}

	if state.IsTerminal() {
		log.WithFields(logrus.Fields{"state": state, "moves": moves}).Info("game over")
		s.record(r.Context(), entry, state, moves)
	}
	_ = json.NewEncoder(w).Encode(result)
}

// handleRecentGames lists the finished games of the user a token was issued to
func (s *Server) handleRecentGames(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeError(w, http.StatusNotFound, CodeNotFound)
		return
	}

	claims, err := s.tokens.Parse(r.FormValue(paramToken))
	if err != nil {
		writeError(w, http.StatusUnauthorized, CodeInvalidToken)
		return
	}
	userID := chi.URLParam(r, "userID")
	if claims.Subject != userID {
		writeError(w, http.StatusForbidden, CodeForbidden)
		return
	}

	records, err := s.ledger.Recent(r.Context(), userID, 50)
	if err != nil {
		s.log.WithError(err).Error("list games")
		writeError(w, http.StatusInternalServerError, CodeInternal)
		return
	}
	_ = json.NewEncoder(w).Encode(records)
}

// record writes a finished game to the ledger. Failures are logged and
// otherwise ignored, the sweep itself already succeeded.
func (s *Server) record(ctx context.Context, entry *store.Entry, state game.GameState, moves int) {
	if s.ledger == nil {
		return
	}
	err := s.ledger.Record(ctx, store.GameRecord{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Size:       entry.Session.Size(),
		NumMines:   entry.Session.NumMines(),
		Moves:      moves,
		Outcome:    state.String(),
		StartedAt:  entry.StartedAt,
		FinishedAt: time.Now(),
	})
	if err != nil {
		s.log.WithError(err).WithField("session", entry.ID).Warn("record game")
	}
}

func (s *Server) newSession(size, numMines int) (*game.Session, error) {
	if s.snapshot != nil && s.snapshot.Matches(size, numMines) {
		mines, err := s.snapshot.Layout()
		if err != nil {
			return nil, err
		}
		return game.NewSessionWithMines(mines)
	}
	return game.NewSession(size, numMines, s.newRand())
}

func (s *Server) newRand() *rand.Rand {
	s.randLock.Lock()
	defer s.randLock.Unlock()
	return rand.New(rand.NewSource(s.rand.Int63()))
}

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"request":    r.URL.Query().Get(paramRequest),
				"status":     ww.Status(),
				"duration":   time.Since(start),
				"request_id": chimw.GetReqID(r.Context()),
			}).Debug("handled request")
		})
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
