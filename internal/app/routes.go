package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/pentolab/pentomino-server/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	puzzle := handlers.NewPuzzleHandler(
		a.logger, a.db, a.cookies, a.ws, createRand(),
	)
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)

	a.router.HandleFunc("POST /puzzle", puzzle.Create)
	a.router.HandleFunc("GET /puzzle/{id}", puzzle.Fetch)
	a.router.HandleFunc("POST /puzzle/{id}/place", puzzle.Place)
	a.router.HandleFunc("POST /puzzle/{id}/remove", puzzle.Remove)
	a.router.HandleFunc("POST /puzzle/{id}/solve", puzzle.Solve)
	a.router.HandleFunc("POST /puzzle/{id}/trace", puzzle.Trace)
	a.router.HandleFunc("POST /puzzle/{id}/hint", puzzle.Hint)
	a.router.HandleFunc("POST /puzzle/{id}/count", puzzle.Count)
	a.router.HandleFunc("/puzzle/{id}/connect", puzzle.ConnectWS)

	a.router.HandleFunc("GET /status", auth.Status)
	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
}
