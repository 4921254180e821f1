package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"splitledger/internal/metrics"
	"splitledger/internal/middleware"
	"splitledger/internal/models"
	"splitledger/internal/service"
)

// GroupHandler handles group creation, listing, and membership.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// groupView is the read-only projection of a group exposed to clients.
type groupView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Closed   bool   `json:"closed"`
	OwnerID  int64  `json:"owner_id"`
}

func viewGroup(g *models.Group) groupView {
	return groupView{
		ID:       g.ID,
		Name:     g.Name,
		Currency: string(g.Currency),
		Closed:   g.Closed,
		OwnerID:  g.OwnerID,
	}
}

func viewGroups(groups []*models.Group) []groupView {
	views := make([]groupView, len(groups))
	for i, g := range groups {
		views[i] = viewGroup(g)
	}
	return views
}

// groupIDParam parses the {groupID} route parameter.
func groupIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	return id, err == nil
}

// Create handles POST /groups with form fields name, currency.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	group, err := h.groups.Create(r.Context(), actorID, r.FormValue("name"), r.FormValue("currency"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	metrics.GroupsCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, viewGroup(group))
}

// List handles GET /groups: the actor's owned and shared groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	owned, shared, err := h.groups.ListForUser(r.Context(), actorID)
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]groupView{
		"owned":  viewGroups(owned),
		"shared": viewGroups(shared),
	})
}

// Get handles GET /groups/{groupID}: the group with its participants.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDParam(r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, "Group id must be numeric.")
		return
	}
	actorID := middleware.GetUserID(r.Context())

	group, participants, err := h.groups.Get(r.Context(), actorID, groupID)
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	views := make([]userView, len(participants))
	for i, p := range participants {
		views[i] = viewUser(p)
	}

	writeJSON(w, http.StatusOK, struct {
		groupView
		Participants []userView `json:"participants"`
	}{viewGroup(group), views})
}

// AddParticipant handles POST /groups/{groupID}/participants with form
// fields login and email; login takes precedence when both are supplied.
func (h *GroupHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	groupID, ok := groupIDParam(r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, "Group id must be numeric.")
		return
	}

	user, err := h.groups.AddParticipant(r.Context(), groupID, r.FormValue("login"), r.FormValue("email"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, viewUser(user))
}
