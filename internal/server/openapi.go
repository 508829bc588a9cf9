package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/athleteunknown/internal/athlete"
	"github.com/playperu/athleteunknown/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type sportPath struct {
	Sport athlete.Sport `path:"sport" enum:"baseball,basketball,football"`
}

type bearerHeader struct {
	Authorization string `header:"Authorization" description:"Bearer session token."`
}

type sportRequest struct {
	sportPath
	bearerHeader
}

type flipRequest struct {
	sportRequest
	FlipRequest
}

type guessRequest struct {
	sportRequest
	GuessRequest
}

type liveRequest struct {
	sportPath
	Token string `query:"token" description:"Session token, for clients that cannot set headers."`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Athlete Unknown API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Athlete Unknown daily guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/sessions
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	postSession.SetSummary("Start session")
	postSession.SetDescription("Issues a player session token. Send it as a Bearer token on round routes.")
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	_ = r.AddOperation(postSession)

	// GET /api/{sport}/round
	getRound, _ := r.NewOperationContext(http.MethodGet, "/api/{sport}/round")
	getRound.SetSummary("Get round")
	getRound.SetDescription("Returns today's round for the sport, drawing the next player if needed. The answer is hidden until the round completes.")
	getRound.AddReqStructure(sportRequest{})
	getRound.AddRespStructure(RoundResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getRound.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getRound.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getRound)

	// POST /api/{sport}/round/tiles
	postTile, _ := r.NewOperationContext(http.MethodPost, "/api/{sport}/round/tiles")
	postTile.SetSummary("Flip tile")
	postTile.SetDescription("Reveals a tile. Costs 3 points, or 6 for the photo, while the round is active.")
	postTile.AddReqStructure(flipRequest{})
	postTile.AddRespStructure(RoundResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postTile.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postTile.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postTile)

	// POST /api/{sport}/round/guesses
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/{sport}/round/guesses")
	postGuess.SetSummary("Submit guess")
	postGuess.SetDescription("Scores a name guess with fuzzy matching. Empty and repeated guesses are rejected without penalty.")
	postGuess.AddReqStructure(guessRequest{})
	postGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postGuess)

	// POST /api/{sport}/round/give-up
	postGiveUp, _ := r.NewOperationContext(http.MethodPost, "/api/{sport}/round/give-up")
	postGiveUp.SetSummary("Give up")
	postGiveUp.SetDescription("Ends the round with a score of zero and reveals the player.")
	postGiveUp.AddReqStructure(sportRequest{})
	postGiveUp.AddRespStructure(RoundResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGiveUp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postGiveUp)

	// GET /api/{sport}/round/share
	getShare, _ := r.NewOperationContext(http.MethodGet, "/api/{sport}/round/share")
	getShare.SetSummary("Share text")
	getShare.SetDescription("Returns the emoji grid summary of a completed round.")
	getShare.AddReqStructure(sportRequest{})
	getShare.AddRespStructure(ShareResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getShare.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getShare.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(getShare)

	// GET /api/{sport}/stats
	getStats, _ := r.NewOperationContext(http.MethodGet, "/api/{sport}/stats")
	getStats.SetSummary("Round stats")
	getStats.SetDescription("Aggregates every recorded result for the session's current puzzle. The name is hidden until the round completes.")
	getStats.AddReqStructure(sportRequest{})
	getStats.AddRespStructure(athlete.RoundStats{}, openapi.WithHTTPStatus(http.StatusOK))
	getStats.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStats)

	// GET /api/{sport}/live
	getLive, _ := r.NewOperationContext(http.MethodGet, "/api/{sport}/live")
	getLive.SetSummary("Live stats")
	getLive.SetDescription("Upgrades to a WebSocket that pushes LiveMessage frames whenever a result is recorded for the current puzzle.")
	getLive.AddReqStructure(liveRequest{})
	getLive.AddRespStructure(LiveMessage{}, openapi.WithHTTPStatus(http.StatusSwitchingProtocols))
	getLive.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getLive)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/players/{sport}
	listPlayers, _ := r.NewOperationContext(http.MethodGet, "/api/admin/players/{sport}")
	listPlayers.SetSummary("List players")
	listPlayers.SetDescription("Returns the sport's dataset in rotation order. Requires admin_session cookie.")
	listPlayers.AddReqStructure(sportPath{})
	listPlayers.AddRespStructure(PlayersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listPlayers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listPlayers)

	// PUT /api/admin/players/{sport}
	putPlayers, _ := r.NewOperationContext(http.MethodPut, "/api/admin/players/{sport}")
	putPlayers.SetSummary("Replace players")
	putPlayers.SetDescription("Replaces the sport's whole dataset with a JSON array of players. Requires admin_session cookie.")
	putPlayers.AddReqStructure(sportPath{})
	putPlayers.AddReqStructure([]athlete.Player{})
	putPlayers.AddRespStructure(PlayersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putPlayers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putPlayers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(putPlayers)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
