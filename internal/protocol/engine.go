package protocol

import (
	"errors"
	"fmt"

	"github.com/pentolab/pentomino-server/internal/pent"
)

var (
	ErrNotInitialized = errors.New("no region initialized, send an init request first")
	ErrBadRegion      = errors.New("invalid region specification")
)

const (
	defaultMaxSolutions = 1
	maxTraceEventsCap   = 1 << 20
)

// Engine executes protocol requests against one puzzle instance. A new
// init request replaces the instance; everything else is stateless with
// respect to prior requests. Engines are not safe for concurrent use —
// each worker or connection owns its own.
type Engine struct {
	board *pent.Board
	box   *pent.BoxModel
}

func NewEngine() *Engine { return &Engine{} }

// Execute runs one request to completion and never panics across the
// boundary for puzzle-shaped failures: those become error responses or
// empty results. Solver assertion failures (logic defects) also surface
// as error responses rather than being swallowed; anything else keeps
// propagating.
func (e *Engine) Execute(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(pent.AssertionError); ok {
				resp = errorResponse(ae.Error())
				return
			}
			panic(r)
		}
	}()

	switch req.Kind {
	case KindInit:
		return e.init(req)
	case KindSolve:
		return e.solve(req)
	case KindSolveTrace:
		return e.solveWithTrace(req)
	case KindHint:
		return e.hint(req)
	case KindCount:
		return e.countSolutions(req)
	default:
		return errorResponse(fmt.Sprintf("unknown request kind %q", req.Kind))
	}
}

func (e *Engine) init(req Request) Response {
	if req.Region == nil {
		return errorResponse("init requires a region")
	}
	board, box, err := BuildInstance(*req.Region)
	if err != nil {
		return errorResponse(err.Error())
	}
	e.board, e.box = board, box
	resp := Response{Kind: KindInit}
	if e.box != nil {
		resp.PlacementCount = e.box.Rows()
	} else {
		resp.PlacementCount = len(e.board.Placements)
	}
	return resp
}

// BuildInstance turns a region spec into a solver instance: a 2D board
// or a 3D box model. Both the engine and the HTTP handlers build
// instances this way, so placement ids agree everywhere the same spec
// is used.
func BuildInstance(spec RegionSpec) (*pent.Board, *pent.BoxModel, error) {
	var shapes []byte
	if spec.Shapes != "" {
		shapes = []byte(spec.Shapes)
	}
	switch spec.Type {
	case "rect":
		rg, err := pent.NewRect(spec.Rows, spec.Cols)
		if err != nil {
			return nil, nil, err
		}
		board, err := pent.NewBoard(rg, shapes)
		if err != nil {
			return nil, nil, err
		}
		return board, nil, nil
	case "mask":
		rg, err := pent.NewMask(spec.Cells)
		if err != nil {
			return nil, nil, err
		}
		board, err := pent.NewBoard(rg, shapes)
		if err != nil {
			return nil, nil, err
		}
		return board, nil, nil
	case "triplication":
		if len(spec.Target) != 1 {
			return nil, nil, fmt.Errorf("%w: triplication requires a single target letter", ErrBadRegion)
		}
		if len(shapes) != pent.TriplicationShapes {
			return nil, nil, fmt.Errorf("%w: triplication requires exactly %d shapes", ErrBadRegion, pent.TriplicationShapes)
		}
		rg, err := pent.Triplication(spec.Target[0])
		if err != nil {
			return nil, nil, err
		}
		board, err := pent.NewBoard(rg, shapes)
		if err != nil {
			return nil, nil, err
		}
		return board, nil, nil
	case "box":
		box, err := pent.NewBoxModel(spec.X, spec.Y, spec.Z)
		if err != nil {
			return nil, nil, err
		}
		return nil, box, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown type %q", ErrBadRegion, spec.Type)
	}
}

func (e *Engine) ready() error {
	if e.board == nil && e.box == nil {
		return ErrNotInitialized
	}
	return nil
}

func maxSolutions(req Request) int {
	if req.MaxSolutions > 0 {
		return req.MaxSolutions
	}
	return defaultMaxSolutions
}

func (e *Engine) solve(req Request) Response {
	if err := e.ready(); err != nil {
		return errorResponse(err.Error())
	}
	var (
		solutions [][]int
		err       error
	)
	if e.box != nil {
		solutions, err = e.box.Solve(req.Prefix, maxSolutions(req))
	} else {
		solutions, err = e.board.Solve(req.Prefix, maxSolutions(req))
	}
	if err != nil {
		return errorResponse(err.Error())
	}
	resp := Response{Kind: KindSolve, Solutions: solutions}
	if len(solutions) > 0 {
		resp.First = e.resolve(solutions[0])
	}
	return resp
}

func (e *Engine) solveWithTrace(req Request) Response {
	if err := e.ready(); err != nil {
		return errorResponse(err.Error())
	}
	maxEvents := req.MaxTraceEvents
	if maxEvents < 1 || maxEvents > maxTraceEventsCap {
		return errorResponse(fmt.Sprintf("max_trace_events must be in [1, %d]", maxTraceEventsCap))
	}

	resp := Response{Kind: KindSolveTrace, Prefix: e.resolve(req.Prefix)}
	if e.box != nil {
		solutions, trace, noResult, err := e.box.SolveWithTrace(req.Prefix, maxSolutions(req), maxEvents)
		if err != nil {
			return errorResponse(err.Error())
		}
		if noResult {
			return Response{Kind: KindSolveTrace, NoResult: true}
		}
		resp.Solutions = solutions
		resp.Trace = make([]TraceEventDTO, len(trace))
		for i, ev := range trace {
			p, perr := e.box.Placement(ev.Row)
			if perr != nil {
				return errorResponse(perr.Error())
			}
			resp.Trace[i] = TraceEventDTO{Kind: string(ev.Kind), Placement: placement3DTO(ev.Row, p)}
		}
	} else {
		solutions, trace, noResult, err := e.board.SolveWithTrace(req.Prefix, maxSolutions(req), maxEvents)
		if err != nil {
			return errorResponse(err.Error())
		}
		if noResult {
			return Response{Kind: KindSolveTrace, NoResult: true}
		}
		resp.Solutions = solutions
		resp.Trace = make([]TraceEventDTO, len(trace))
		for i, ev := range trace {
			id, _ := e.board.IDOf(ev.Placement)
			resp.Trace[i] = TraceEventDTO{Kind: string(ev.Kind), Placement: placementDTO(id, ev.Placement)}
		}
	}
	if len(resp.Solutions) > 0 {
		resp.First = e.resolve(resp.Solutions[0])
	}
	return resp
}

func (e *Engine) hint(req Request) Response {
	if err := e.ready(); err != nil {
		return errorResponse(err.Error())
	}
	resp := Response{Kind: KindHint}
	if e.box != nil {
		p, id, ok := e.box.Hint(req.Prefix)
		if ok {
			dto := placement3DTO(id, p)
			resp.Hint = &dto
		}
		return resp
	}
	p, id, ok := e.board.Hint(req.Prefix)
	if ok {
		dto := placementDTO(id, p)
		resp.Hint = &dto
	}
	return resp
}

func (e *Engine) countSolutions(req Request) Response {
	if err := e.ready(); err != nil {
		return errorResponse(err.Error())
	}
	if e.box != nil {
		return errorResponse("countSolutions is only available on 2D regions")
	}
	maxCount := req.MaxCount
	if maxCount < 1 {
		return errorResponse("max_count must be positive")
	}
	count, err := e.board.CountSolutions(req.Prefix, maxCount)
	if err != nil {
		return errorResponse(err.Error())
	}
	dto := CountDTO{Count: count.Count, Complete: count.Complete}
	return Response{Kind: KindCount, Count: &dto}
}

// resolve maps placement ids to DTOs, skipping ids that are out of
// range (the protocol treats those as an empty result elsewhere).
func (e *Engine) resolve(ids []int) []PlacementDTO {
	return ResolvePlacements(e.board, e.box, ids)
}
