// Package protocol defines the request/response surface of the solver:
// one puzzle instance is fixed by an init request, and subsequent
// solve / solveWithTrace / hint / countSolutions requests run against
// it. The same messages travel over a WebSocket connection and over the
// stdio worker pipe; errors always come back as a response variant,
// never as a raised failure past the boundary.
package protocol

import "github.com/pentolab/pentomino-server/internal/pent"

type Kind string

const (
	KindInit       Kind = "init"
	KindSolve      Kind = "solve"
	KindSolveTrace Kind = "solveWithTrace"
	KindHint       Kind = "hint"
	KindCount      Kind = "countSolutions"
	KindError      Kind = "error"
)

// RegionSpec selects the puzzle instance an init request fixes.
type RegionSpec struct {
	Type string `json:"type"` // rect | mask | triplication | box

	Rows int `json:"rows,omitempty"`
	Cols int `json:"cols,omitempty"`

	Cells []pent.Cell `json:"mask_cells,omitempty"`

	// Target names the piece whose 3x outline forms the mask.
	Target string `json:"target,omitempty"`

	// Shapes restricts the available pieces, as a string of letters;
	// empty means the full catalogue (rect only).
	Shapes string `json:"shapes,omitempty"`

	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`
	Z int `json:"z,omitempty"`
}

// Request is one protocol message. Prefix entries are placement ids,
// opaque integers stable within one init lifetime.
type Request struct {
	Kind           Kind        `json:"kind"`
	Region         *RegionSpec `json:"region,omitempty"`
	Prefix         []int       `json:"prefix,omitempty"`
	MaxSolutions   int         `json:"max_solutions,omitempty"`
	MaxCount       int         `json:"max_count,omitempty"`
	MaxTraceEvents int         `json:"max_trace_events,omitempty"`
}

// PlacementDTO is a resolved placement: its id plus concrete cells,
// 2-tuples on boards and 3-tuples in boxes.
type PlacementDTO struct {
	ID    int     `json:"id"`
	Shape string  `json:"shape"`
	Cells [][]int `json:"cells"`
}

type TraceEventDTO struct {
	Kind      string       `json:"kind"`
	Placement PlacementDTO `json:"placement"`
}

type CountDTO struct {
	Count    int  `json:"count"`
	Complete bool `json:"complete"`
}

// Response answers one request. Exactly one of the payload groups is
// populated, matching the request kind; Kind is KindError with a
// message when the request itself was unusable.
type Response struct {
	Kind  Kind   `json:"kind"`
	Error string `json:"error,omitempty"`

	// NoResult signals a trace cap overflow: retry with a cheaper mode.
	NoResult bool `json:"no_result,omitempty"`

	PlacementCount int `json:"placement_count,omitempty"`

	Solutions [][]int         `json:"solutions,omitempty"`
	First     []PlacementDTO  `json:"first,omitempty"`
	Prefix    []PlacementDTO  `json:"prefix,omitempty"`
	Trace     []TraceEventDTO `json:"trace,omitempty"`
	Count     *CountDTO       `json:"count,omitempty"`
	Hint      *PlacementDTO   `json:"hint,omitempty"`
}

func errorResponse(message string) Response {
	return Response{Kind: KindError, Error: message}
}

// ResolvePlacements maps placement ids to DTOs against a 2D board or a
// 3D box, skipping ids that are out of range. Exactly one of board and
// box must be non-nil.
func ResolvePlacements(board *pent.Board, box *pent.BoxModel, ids []int) []PlacementDTO {
	out := make([]PlacementDTO, 0, len(ids))
	for _, id := range ids {
		if box != nil {
			p, err := box.Placement(id)
			if err != nil {
				continue
			}
			out = append(out, placement3DTO(id, p))
			continue
		}
		p, err := board.Placement(id)
		if err != nil {
			continue
		}
		out = append(out, placementDTO(id, p))
	}
	return out
}

func placementDTO(id int, p pent.Placement) PlacementDTO {
	cells := make([][]int, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = []int{c.R, c.C}
	}
	return PlacementDTO{ID: id, Shape: p.Shape(), Cells: cells}
}

func placement3DTO(id int, p pent.Placement3) PlacementDTO {
	cells := make([][]int, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = []int{c.X, c.Y, c.Z}
	}
	return PlacementDTO{ID: id, Shape: p.Shape(), Cells: cells}
}
