package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/forceteam/internal/api/apierr"
	"github.com/mcoot/forceteam/internal/api/request"
	"github.com/mcoot/forceteam/internal/api/response"
	"github.com/mcoot/forceteam/internal/services/command"
)

// RosterHandler handles roster endpoints
type RosterHandler struct {
	commands *command.Service
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(commands *command.Service) *RosterHandler {
	return &RosterHandler{
		commands: commands,
	}
}

// List handles GET /api/v1/rosters
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.commands.Rosters(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RostersFromModel(list.Rosters, list.KnownPlayers))
}

// Set handles PUT /api/v1/rosters/{player_id}
func (h *RosterHandler) Set(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTeam(w, r)
	if !ok {
		return
	}

	entry, err := h.commands.SetRoster(r.Context(), mux.Vars(r)["player_id"], req.Team)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RosterEntryFromModel(entry))
}

// Force handles POST /api/v1/rosters/{player_id}/force
func (h *RosterHandler) Force(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTeam(w, r)
	if !ok {
		return
	}

	entry, err := h.commands.ForceTeam(r.Context(), mux.Vars(r)["player_id"], req.Team)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusAccepted, response.RosterEntryFromModel(entry))
}

// Clear handles DELETE /api/v1/rosters
func (h *RosterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	removed, err := h.commands.ClearRosters(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Cleared{Removed: removed})
}

// Apply handles POST /api/v1/rosters/apply
func (h *RosterHandler) Apply(w http.ResponseWriter, r *http.Request) {
	res, err := h.commands.ApplyRosters(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Sweep{Moved: res.Moved, Correct: res.Correct})
}

func decodeTeam(w http.ResponseWriter, r *http.Request) (request.TeamRequest, bool) {
	var req request.TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return req, false
	}
	if req.Team == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("team is required"))
		return req, false
	}
	return req, true
}
