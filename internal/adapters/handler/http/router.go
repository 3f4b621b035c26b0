package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(ballotHandler *BallotHandler, voteHandler *VoteHandler, resultHandler *ResultHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/assemblies", func(r chi.Router) {
			r.Post("/", ballotHandler.CreateAssembly)
			r.Post("/{id}/conclude", ballotHandler.ConcludeAssembly)
		})

		r.Route("/ballots", func(r chi.Router) {
			r.Post("/", ballotHandler.CreateBallot)
			r.Get("/{id}", ballotHandler.GetBallot)
			r.Post("/{id}/close", ballotHandler.CloseBallot)
			r.Post("/{id}/votes", voteHandler.SubmitVote)
			r.Post("/{id}/tally", resultHandler.TallyBallot)
			r.Get("/{id}/result", resultHandler.GetResult)
		})

		r.Get("/verify/{secret}", voteHandler.VerifyReceipt)
	})

	return r
}
