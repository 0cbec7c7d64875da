package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pentolab/pentomino-server/internal/protocol"
)

type PuzzleSession struct {
	PuzzleSessionId int64
	PlayerId        *int64
	Kind            string
	Shapes          string
	Solved          bool
	StartedAt       pgtype.Timestamptz
	EndedAt         pgtype.Timestamptz
	State           []byte
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type CreatePuzzleSessionParams struct {
	PlayerId *int64
}

func (p CreatePuzzleSessionParams) UpdateArgs(args *pgx.NamedArgs) *pgx.NamedArgs {
	if p.PlayerId != nil {
		(*args)["player_id"] = *p.PlayerId
	}
	return args
}

func (q Queries) CreatePuzzleSession(
	ctx context.Context, state *protocol.PuzzleState, params CreatePuzzleSessionParams,
) (*PuzzleSession, error) {
	blob, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"kind":   state.Region.Type,
		"shapes": state.Region.Shapes,
		"solved": state.Solved,
		"state":  blob,
	}
	params.UpdateArgs(&args)

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle_session (
			player_id, kind, shapes, solved, state
		)
		VALUES (
			@player_id, @kind, @shapes, @solved, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[PuzzleSession],
	)
}

func (q Queries) FetchPuzzleSession(ctx context.Context, puzzleSessionId int64) (*PuzzleSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM puzzle_session WHERE puzzle_session_id = $1",
		puzzleSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}

type UpdatePuzzleSessionParams struct {
	Solved  *bool
	EndedAt *time.Time
	State   *[]byte
}

func (p UpdatePuzzleSessionParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.Solved != nil {
		parts = append(parts, "solved = @solved")
		args["solved"] = *p.Solved
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdatePuzzleSession(
	ctx context.Context, puzzleSessionId int64, params UpdatePuzzleSessionParams,
) (*PuzzleSession, error) {
	setClause, args := params.SetClause()
	args["puzzle_session_id"] = puzzleSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE puzzle_session SET "+setClause+" WHERE puzzle_session_id = @puzzle_session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}
