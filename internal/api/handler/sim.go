package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/forceteam/internal/api/apierr"
	"github.com/mcoot/forceteam/internal/api/request"
	"github.com/mcoot/forceteam/internal/api/response"
	"github.com/mcoot/forceteam/internal/host"
	"github.com/mcoot/forceteam/internal/host/sim"
	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/services/command"
)

// SimHandler drives the simulated game server. Every call hops onto the
// tick loop because the server is owned by it.
type SimHandler struct {
	commands *command.Service
	server   *sim.Server
}

// NewSimHandler creates a new sim handler
func NewSimHandler(commands *command.Service, server *sim.Server) *SimHandler {
	return &SimHandler{
		commands: commands,
		server:   server,
	}
}

// Players handles GET /api/v1/sim/players
func (h *SimHandler) Players(w http.ResponseWriter, r *http.Request) {
	var players []sim.PlayerState
	if err := h.commands.Do(r.Context(), func() {
		players = h.server.Players()
	}); err != nil {
		apierr.WriteError(w, err)
		return
	}

	out := make([]response.SimPlayer, len(players))
	for i, p := range players {
		out[i] = simPlayer(p)
	}
	response.JSON(w, http.StatusOK, response.SimPlayers{Players: out})
}

// Connect handles POST /api/v1/sim/players
func (h *SimHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req request.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	id, err := model.ParsePlayerID(req.PlayerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	team := model.DecodeJoinToken(req.Team)
	if team == model.TeamInvalid {
		apierr.WriteError(w, apierr.NewInvalidRequestError("team must be one of none, spec, t, ct"))
		return
	}

	var connectErr error
	if err := h.commands.Do(r.Context(), func() {
		_, connectErr = h.server.Connect(id, sim.ConnectOptions{
			Team:     team,
			Alive:    req.Alive,
			Bot:      req.Bot,
			Observer: req.Observer,
		})
	}); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if connectErr != nil {
		apierr.WriteError(w, connectErr)
		return
	}
	response.JSON(w, http.StatusCreated, response.SimPlayer{
		PlayerID: id.String(),
		Team:     team.Token(),
		Alive:    req.Alive && team.Playable(),
		Bot:      req.Bot,
		Observer: req.Observer,
	})
}

// Disconnect handles DELETE /api/v1/sim/players/{player_id}
func (h *SimHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParsePlayerID(mux.Vars(r)["player_id"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	var disconnectErr error
	if err := h.commands.Do(r.Context(), func() {
		disconnectErr = h.server.Disconnect(id)
	}); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if disconnectErr != nil {
		apierr.WriteError(w, disconnectErr)
		return
	}
	response.NoContent(w)
}

// Join handles POST /api/v1/sim/players/{player_id}/join
func (h *SimHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParsePlayerID(mux.Vars(r)["player_id"])
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	var (
		resp    response.Join
		joinErr error
	)
	if err := h.commands.Do(r.Context(), func() {
		var res host.JoinResult
		res, joinErr = h.server.RequestJoin(id, req.Token)
		if joinErr != nil {
			return
		}
		resp.Result = res.String()
		if p, ok := h.server.Resolve(id); ok {
			resp.Team = p.Team().Token()
		}
	}); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if joinErr != nil {
		apierr.WriteError(w, joinErr)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// RoundStart handles POST /api/v1/sim/round-start
func (h *SimHandler) RoundStart(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.Do(r.Context(), h.server.StartRound); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Phase handles PUT /api/v1/sim/phase
func (h *SimHandler) Phase(w http.ResponseWriter, r *http.Request) {
	var req request.PhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	phase := model.GamePhase{
		WarmupActive:     req.Warmup,
		FreezeTimeActive: req.FreezeTime,
		Paused:           req.Paused,
	}

	if err := h.commands.Do(r.Context(), func() {
		h.server.SetPhase(phase)
	}); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PhaseFromModel(phase))
}

func simPlayer(p sim.PlayerState) response.SimPlayer {
	return response.SimPlayer{
		PlayerID: p.PlayerID.String(),
		Team:     p.Team.Token(),
		Alive:    p.Alive,
		Bot:      p.Bot,
		Observer: p.Observer,
		Blocked:  p.Blocked,
	}
}
