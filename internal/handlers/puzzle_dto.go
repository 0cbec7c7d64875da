package handlers

import (
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pentolab/pentomino-server/internal/protocol"
	"github.com/pentolab/pentomino-server/internal/repository"
)

// CreatePuzzleDTO carries the url-encoded parameters of a new puzzle.
// Which fields matter depends on type: rect wants rows and cols, box
// wants x, y and z, triplication wants nothing (target and shapes are
// drawn at random when omitted).
type CreatePuzzleDTO struct {
	Type   string `schema:"type,required"`
	Rows   int    `schema:"rows"`
	Cols   int    `schema:"cols"`
	X      int    `schema:"x"`
	Y      int    `schema:"y"`
	Z      int    `schema:"z"`
	Target string `schema:"target"`
	Shapes string `schema:"shapes"`
}

func ParseCreatePuzzleDTO(src map[string][]string) (CreatePuzzleDTO, error) {
	var dto CreatePuzzleDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PuzzleSessionDTO struct {
	PuzzleSessionId string                  `json:"puzzle_session_id"`
	Region          protocol.RegionSpec     `json:"region"`
	PlacementCount  int                     `json:"placement_count"`
	Prefix          []int                   `json:"prefix"`
	Placements      []protocol.PlacementDTO `json:"placements,omitempty"`
	Solved          bool                    `json:"solved"`
	StartedAt       int64                   `json:"started_at"`
	EndedAt         *int64                  `json:"ended_at,omitempty"`
}

func NewPuzzleSessionDTO(
	session *repository.PuzzleSession,
	state *protocol.PuzzleState,
	placementCount int,
	placements []protocol.PlacementDTO,
) *PuzzleSessionDTO {
	prefix := state.Prefix
	if prefix == nil {
		prefix = []int{}
	}
	dto := &PuzzleSessionDTO{
		PuzzleSessionId: strconv.FormatInt(session.PuzzleSessionId, 10),
		Region:          state.Region,
		PlacementCount:  placementCount,
		Prefix:          prefix,
		Placements:      placements,
		Solved:          state.Solved,
		StartedAt:       session.StartedAt.Time.UnixMilli(),
		EndedAt:         timestamptzMilli(session.EndedAt),
	}
	return dto
}

func timestamptzMilli(ts pgtype.Timestamptz) *int64 {
	if !ts.Valid {
		return nil
	}
	ms := ts.Time.UnixMilli()
	return &ms
}
