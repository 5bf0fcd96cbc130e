package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/forceteam/internal/api/apierr"
	"github.com/mcoot/forceteam/internal/api/request"
	"github.com/mcoot/forceteam/internal/api/response"
	"github.com/mcoot/forceteam/internal/services/command"
)

// ConsoleHandler runs console command lines
type ConsoleHandler struct {
	commands *command.Service
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(commands *command.Service) *ConsoleHandler {
	return &ConsoleHandler{
		commands: commands,
	}
}

// Execute handles POST /api/v1/console
func (h *ConsoleHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req request.ConsoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	res, err := h.commands.Execute(r.Context(), req.Command)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Console{
		Command: string(res.Command),
		Message: res.Message,
	})
}
