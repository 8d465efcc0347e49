package controllers

import (
	"meetup/internal/models"
	"meetup/internal/providers"
	"meetup/internal/services"
	"net/http"
	"time"
)

type GroupController struct {
	logger  providers.Logger
	service services.GroupServiceInterface
}

func NewGroupController(logger providers.Logger, service services.GroupServiceInterface) *GroupController {
	return &GroupController{
		logger:  logger,
		service: service,
	}
}

type createGroupRequest struct {
	Kind        string    `json:"kind" validate:"required|in:club,thunder"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	MeetingTime time.Time `json:"meetingTime"`
	MaxMembers  int       `json:"maxMembers" validate:"min:0"`
	CreatorID   int64     `json:"creatorId" validate:"required|min:1"`
	Nickname    string    `json:"nickname" validate:"required"`
}

type joinRequest struct {
	GroupID  string `json:"groupId" validate:"required"`
	MemberID int64  `json:"memberId" validate:"required|min:1"`
	Nickname string `json:"nickname" validate:"required"`
}

type leaveRequest struct {
	GroupID  string `json:"groupId" validate:"required"`
	MemberID int64  `json:"memberId" validate:"required|min:1"`
}

type adminActionRequest struct {
	GroupID  string `json:"groupId" validate:"required"`
	ActorID  int64  `json:"actorId" validate:"required|min:1"`
	MemberID int64  `json:"memberId" validate:"required|min:1"`
}

type joinResponse struct {
	Role models.Role `json:"role"`
}

func (gc *GroupController) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		gc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		writeError(w, status, "Internal Server Error")
		return
	}
	writeError(w, status, err.Error())
}

func (gc *GroupController) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := gc.service.ListGroups(r.Context(), getKind(r))
	if err != nil {
		gc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (gc *GroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail := &models.GroupDetail{
		Kind:        models.GroupKind(req.Kind),
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Location:    req.Location,
		MeetingTime: req.MeetingTime,
		MaxMembers:  req.MaxMembers,
	}
	created, err := gc.service.CreateGroup(r.Context(), detail, req.CreatorID, req.Nickname)
	if err != nil {
		gc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (gc *GroupController) GetDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := gc.service.FetchDetail(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		gc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// GetMembers returns the roster partitioned by role, with flags describing
// how the viewer relates to the group.
func (gc *GroupController) GetMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	separated, err := gc.service.Members(r.Context(), q.Get("id"), q.Get("viewer"))
	if err != nil {
		gc.fail(w, r, err)
		return
	}
	writeJSONTagged(w, r, separated)
}

func (gc *GroupController) Join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := gc.service.Join(r.Context(), req.GroupID, req.MemberID, req.Nickname)
	if err != nil {
		gc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, joinResponse{Role: role})
}

func (gc *GroupController) Leave(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := gc.service.Leave(r.Context(), req.GroupID, req.MemberID); err != nil {
		gc.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adminAction func(gs services.GroupServiceInterface, r *http.Request, req adminActionRequest) error

func (gc *GroupController) admin(action adminAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminActionRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := action(gc.service, r, req); err != nil {
			gc.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (gc *GroupController) Approve(w http.ResponseWriter, r *http.Request) {
	gc.admin(func(gs services.GroupServiceInterface, r *http.Request, req adminActionRequest) error {
		return gs.Approve(r.Context(), req.GroupID, req.ActorID, req.MemberID)
	})(w, r)
}

func (gc *GroupController) Reject(w http.ResponseWriter, r *http.Request) {
	gc.admin(func(gs services.GroupServiceInterface, r *http.Request, req adminActionRequest) error {
		return gs.Reject(r.Context(), req.GroupID, req.ActorID, req.MemberID)
	})(w, r)
}

func (gc *GroupController) Promote(w http.ResponseWriter, r *http.Request) {
	gc.admin(func(gs services.GroupServiceInterface, r *http.Request, req adminActionRequest) error {
		return gs.Promote(r.Context(), req.GroupID, req.ActorID, req.MemberID)
	})(w, r)
}

func (gc *GroupController) Ban(w http.ResponseWriter, r *http.Request) {
	gc.admin(func(gs services.GroupServiceInterface, r *http.Request, req adminActionRequest) error {
		return gs.Ban(r.Context(), req.GroupID, req.ActorID, req.MemberID)
	})(w, r)
}
