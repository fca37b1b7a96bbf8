package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// userID reads the trusted caller identifier from the request header.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
	return id, err == nil && id > 0
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// pageFrom parses the from/size query params into an offset/limit pair.
func pageFrom(r *http.Request) models.Page {
	from, _ := strconv.Atoi(r.URL.Query().Get("from"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return models.NewPage(from, size)
}

// respondError maps domain errors onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case domain.IsFieldValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, UserIDHeader+" header is required")
	}
	return id, ok
}

func requireID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
	}
	return id, ok
}

// Users

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var dto domain.CreateUserDto
	if !decodeBody(w, r, &dto) {
		return
	}

	user, err := s.users.Create(r.Context(), dto)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var dto domain.UpdateUserDto
	if !decodeBody(w, r, &dto) {
		return
	}

	user, err := s.users.Update(r.Context(), id, dto)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Items

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var dto domain.CreateItemDto
	if !decodeBody(w, r, &dto) {
		return
	}

	item, err := s.items.Create(r.Context(), ownerID, dto)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	views, err := s.items.GetByOwner(r.Context(), ownerID, pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.Search(r.Context(), r.URL.Query().Get("text"), pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	callerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	view, err := s.items.GetByID(r.Context(), id, callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var dto domain.UpdateItemDto
	if !decodeBody(w, r, &dto) {
		return
	}

	item, err := s.items.Update(r.Context(), id, ownerID, dto)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	view, err := s.items.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	authorID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	comment, err := s.items.AddComment(r.Context(), id, authorID, body.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Bookings

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var dto domain.CreateBookingDto
	if !decodeBody(w, r, &dto) {
		return
	}

	view, err := s.bookings.Create(r.Context(), bookerID, dto)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *HTTPServer) handleBookingsByBooker(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	views, err := s.bookings.GetByBooker(r.Context(), bookerID, r.URL.Query().Get("state"), pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleBookingsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	views, err := s.bookings.GetByOwner(r.Context(), ownerID, r.URL.Query().Get("state"), pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	callerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	view, err := s.bookings.GetByID(r.Context(), id, callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	ownerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query param is required")
		return
	}

	view, err := s.bookings.Approve(r.Context(), id, ownerID, approved)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	bookerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	view, err := s.bookings.Cancel(r.Context(), id, bookerID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Requests

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	request, err := s.requests.Create(r.Context(), requesterID, body.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *HTTPServer) handleOwnRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := requireUser(w, r)
	if !ok {
		return
	}

	views, err := s.requests.GetOwn(r.Context(), requesterID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleOtherRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := requireUser(w, r)
	if !ok {
		return
	}

	views, err := s.requests.GetFromOthers(r.Context(), requesterID, pageFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	callerID, ok := requireUser(w, r)
	if !ok {
		return
	}

	view, err := s.requests.GetByID(r.Context(), id, callerID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
