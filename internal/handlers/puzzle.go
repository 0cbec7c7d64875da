package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pentolab/pentomino-server/internal/config"
	"github.com/pentolab/pentomino-server/internal/middleware"
	"github.com/pentolab/pentomino-server/internal/pent"
	"github.com/pentolab/pentomino-server/internal/protocol"
	"github.com/pentolab/pentomino-server/internal/repository"
)

const (
	defaultMaxCount       = 1000
	defaultMaxTraceEvents = 10_000
)

var ErrBadPlacement = fmt.Errorf("placement conflicts with current progress")

type PuzzleHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	rnd     *rand.Rand
}

func NewPuzzleHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *PuzzleHandler {
	handler := &PuzzleHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
		rnd:     rnd,
	}

	return handler
}

func (h PuzzleHandler) Create(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseCreatePuzzleDTO(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	spec := protocol.RegionSpec{
		Type:   dto.Type,
		Rows:   dto.Rows,
		Cols:   dto.Cols,
		X:      dto.X,
		Y:      dto.Y,
		Z:      dto.Z,
		Target: dto.Target,
		Shapes: dto.Shapes,
	}

	if spec.Type == "triplication" && spec.Target == "" {
		puzzle, err := pent.GenerateTriplication(h.rnd, pent.DefaultGenerateOptions())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			h.logger.Error("unable to generate a triplication puzzle", "error", err)
			return
		}
		spec.Target = string(puzzle.Target)
		spec.Shapes = string(puzzle.Shapes)
	}

	board, box, err := protocol.BuildInstance(spec)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	state := &protocol.PuzzleState{Region: spec}

	params := repository.CreatePuzzleSessionParams{}
	claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		h.logger.Debug("creating player session", "claims", claims)
		params.PlayerId = &claims.PlayerId
	} else {
		h.logger.Debug("creating anonymous session")
	}

	session, err := h.repo.CreatePuzzleSession(r.Context(), state, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create puzzle session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(
		session, state, placementCount(board, box),
		protocol.ResolvePlacements(board, box, state.Prefix),
	))
}

// loadSession fetches a session by the id path value and decodes its
// stored state, writing the error status itself on failure.
func (h PuzzleHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.PuzzleSession, *protocol.PuzzleState, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := h.repo.FetchPuzzleSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, false
	}

	state, err := protocol.ParsePuzzleState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid puzzle_session.state", "error", err)
		return nil, nil, false
	}

	return session, state, true
}

func placementCount(board *pent.Board, box *pent.BoxModel) int {
	if box != nil {
		return box.Rows()
	}
	return len(board.Placements)
}

func (h PuzzleHandler) instance(
	w http.ResponseWriter, state *protocol.PuzzleState,
) (*pent.Board, *pent.BoxModel, bool) {
	board, box, err := protocol.BuildInstance(state.Region)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid puzzle_session region", "error", err)
		return nil, nil, false
	}
	return board, box, true
}

func (h PuzzleHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, state, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	board, box, ok := h.instance(w, state)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(
		session, state, placementCount(board, box),
		protocol.ResolvePlacements(board, box, state.Prefix),
	))
}

// canAppend reports whether placement id can extend the committed
// prefix: in range, shape not yet used, cells free.
func canAppend(board *pent.Board, box *pent.BoxModel, prefix []int, id int) bool {
	if box != nil {
		next, err := box.Placement(id)
		if err != nil {
			return false
		}
		taken := make(map[pent.Cell3]bool)
		for _, prev := range prefix {
			p, err := box.Placement(prev)
			if err != nil {
				return false
			}
			if p.Shape() == next.Shape() {
				return false
			}
			for _, c := range p.Cells {
				taken[c] = true
			}
		}
		for _, c := range next.Cells {
			if taken[c] {
				return false
			}
		}
		return true
	}

	next, err := board.Placement(id)
	if err != nil {
		return false
	}
	for _, prev := range prefix {
		p, err := board.Placement(prev)
		if err != nil {
			return false
		}
		if p.Shape() == next.Shape() || p.Overlaps(next) {
			return false
		}
	}
	return true
}

func boxSolved(box *pent.BoxModel, prefix []int) bool {
	covered := 0
	for _, id := range prefix {
		p, err := box.Placement(id)
		if err != nil {
			return false
		}
		covered += len(p.Cells)
	}
	return covered == box.X*box.Y*box.Z
}

func (h PuzzleHandler) saveState(
	w http.ResponseWriter, r *http.Request,
	session *repository.PuzzleSession, state *protocol.PuzzleState,
	endedAt *time.Time,
) bool {
	blob, err := state.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to serialize puzzle state", "error", err)
		return false
	}

	updated, err := h.repo.UpdatePuzzleSession(
		r.Context(), session.PuzzleSessionId, repository.UpdatePuzzleSessionParams{
			Solved:  &state.Solved,
			EndedAt: endedAt,
			State:   &blob,
		},
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to update session in db", "error", err)
		return false
	}

	*session = *updated
	return true
}

func (h PuzzleHandler) Place(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("placement"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("placement must be an integer id")))
		return
	}

	session, state, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	board, box, ok := h.instance(w, state)
	if !ok {
		return
	}

	if !canAppend(board, box, state.Prefix, id) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(ErrBadPlacement))
		return
	}

	state.Prefix = append(state.Prefix, id)

	var endedAt *time.Time
	if board != nil && board.Solved(state.Prefix) || box != nil && boxSolved(box, state.Prefix) {
		state.Solved = true
		now := time.Now().UTC()
		endedAt = &now
	}

	if !h.saveState(w, r, session, state, endedAt) {
		return
	}

	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(
		session, state, placementCount(board, box),
		protocol.ResolvePlacements(board, box, state.Prefix),
	))
}

func (h PuzzleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session, state, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	board, box, ok := h.instance(w, state)
	if !ok {
		return
	}

	if len(state.Prefix) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("nothing to remove")))
		return
	}

	state.Prefix = state.Prefix[:len(state.Prefix)-1]
	state.Solved = false

	if !h.saveState(w, r, session, state, nil) {
		return
	}

	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(
		session, state, placementCount(board, box),
		protocol.ResolvePlacements(board, box, state.Prefix),
	))
}

// engine builds a solver engine fixed on the session's region.
func (h PuzzleHandler) engine(
	w http.ResponseWriter, state *protocol.PuzzleState,
) (*protocol.Engine, bool) {
	eng := protocol.NewEngine()
	resp := eng.Execute(protocol.Request{Kind: protocol.KindInit, Region: &state.Region})
	if resp.Kind == protocol.KindError {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid puzzle_session region", "error", resp.Error)
		return nil, false
	}
	return eng, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return fallback
	}
	return v
}

func (h PuzzleHandler) execute(w http.ResponseWriter, r *http.Request, req protocol.Request) {
	_, state, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	eng, ok := h.engine(w, state)
	if !ok {
		return
	}

	if req.Prefix == nil {
		req.Prefix = state.Prefix
	}
	resp := eng.Execute(req)
	if resp.Kind == protocol.KindError {
		w.WriteHeader(http.StatusBadRequest)
	}
	sendJSONOrLog(w, h.logger, resp)
}

func (h PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, protocol.Request{
		Kind:         protocol.KindSolve,
		MaxSolutions: queryInt(r, "max_solutions", 1),
	})
}

func (h PuzzleHandler) Trace(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, protocol.Request{
		Kind:           protocol.KindSolveTrace,
		MaxSolutions:   queryInt(r, "max_solutions", 1),
		MaxTraceEvents: queryInt(r, "max_trace_events", defaultMaxTraceEvents),
	})
}

func (h PuzzleHandler) Hint(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, protocol.Request{Kind: protocol.KindHint})
}

func (h PuzzleHandler) Count(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, protocol.Request{
		Kind:     protocol.KindCount,
		MaxCount: queryInt(r, "max_count", defaultMaxCount),
	})
}

// ConnectWS runs the request/response protocol over a WebSocket. The
// engine starts out fixed on the session's region; requests that omit
// a prefix run against the stored progress.
func (h PuzzleHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	_, state, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer c.Close()

	eng := protocol.NewEngine()
	resp := eng.Execute(protocol.Request{Kind: protocol.KindInit, Region: &state.Region})
	if err := c.WriteJSON(resp); err != nil {
		h.logger.Warn("unable to write ws message", "error", err)
		return
	}
	if resp.Kind == protocol.KindError {
		return
	}

	for {
		var req protocol.Request
		if err := c.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("unable to read ws message", "error", err)
			}
			return
		}
		if req.Prefix == nil {
			req.Prefix = state.Prefix
		}
		if err := c.WriteJSON(eng.Execute(req)); err != nil {
			h.logger.Warn("unable to write ws message", "error", err)
			return
		}
	}
}
