// Package testapi runs an in-process double of the Tastebook REST API for
// tests: real HTTP, scripted token expiry, and deterministic pagination
// over seeded fixtures.
package testapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/mvolkov/tastebook/internal/client/models"
)

type membershipRecord struct {
	cookbookID int64
	member     models.Membership
}

// Server is the fake API. All state is guarded by mu; handlers run on the
// httptest server's goroutines.
type Server struct {
	srv *httptest.Server

	mu           sync.Mutex
	access       string
	refresh      string
	tokenSeq     int
	expired      bool
	failRefresh  bool
	refreshCalls int
	loginCalls   int

	displayName string
	cookbooks   []models.Cookbook
	recipes     []models.Recipe
	memberships []membershipRecord
	invitations []models.Invitation
	imageSeq    int
	nextID      int64
}

func New() *Server {
	s := &Server{displayName: "Test Cook", nextID: 1000}

	r := chi.NewRouter()
	r.Post("/Users/login", s.handleLogin)
	r.Post("/Users/register", s.handleRegister)
	r.Post("/Users/refresh", s.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/Users/display-name", s.handleDisplayName)
		r.Post("/Users/update", s.handleUpdateUser)

		r.Get("/Cookbooks", s.handleListCookbooks)
		r.Post("/Cookbooks", s.handleCreateCookbook)
		r.Put("/Cookbooks/{id}", s.handleUpdateCookbook)
		r.Delete("/Cookbooks/{id}", s.handleDeleteCookbook)

		r.Get("/Recipes", s.handleListRecipes)
		r.Get("/Recipes/{id}", s.handleGetRecipe)
		r.Post("/Recipes", s.handleCreateRecipe)
		r.Put("/Recipes/{id}", s.handleUpdateRecipe)
		r.Delete("/Recipes/{id}", s.handleDeleteRecipe)

		r.Get("/Memberships", s.handleListMemberships)
		r.Put("/Memberships/{id}", s.handleUpdateMembership)
		r.Delete("/Memberships/{id}", s.handleDeleteMembership)

		r.Get("/Invitations", s.handleListInvitations)
		r.Post("/Invitations", s.handleSendInvitation)
		r.Put("/Invitations/{id}", s.handleRespondInvitation)

		r.Post("/Images", s.handleUploadImages)
	})

	s.srv = httptest.NewServer(r)
	return s
}

func (s *Server) URL() string { return s.srv.URL }
func (s *Server) Close()      { s.srv.Close() }

// ExpireAccess makes the current access token invalid, forcing the next
// authorized request into the refresh path.
func (s *Server) ExpireAccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
}

// FailRefresh makes refresh attempts return 401.
func (s *Server) FailRefresh(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRefresh = v
}

func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

func (s *Server) LoginCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls
}

func (s *Server) SeedCookbooks(cookbooks []models.Cookbook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookbooks = append([]models.Cookbook(nil), cookbooks...)
	for _, c := range cookbooks {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
}

func (s *Server) SeedRecipes(recipes []models.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = append([]models.Recipe(nil), recipes...)
	for _, r := range recipes {
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
}

func (s *Server) SeedMemberships(cookbookID int64, members []models.Membership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range members {
		s.memberships = append(s.memberships, membershipRecord{cookbookID: cookbookID, member: m})
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}
}

func (s *Server) SeedInvitations(invitations []models.Invitation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invitations = append([]models.Invitation(nil), invitations...)
	for _, i := range invitations {
		if i.ID >= s.nextID {
			s.nextID = i.ID + 1
		}
	}
}

// Cookbooks returns a copy of the server-side cookbook state.
func (s *Server) Cookbooks() []models.Cookbook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Cookbook(nil), s.cookbooks...)
}

// ---- auth ----

func (s *Server) issueTokens() (string, string) {
	s.tokenSeq++
	s.access = fmt.Sprintf("access-%d", s.tokenSeq)
	s.refresh = fmt.Sprintf("refresh-%d", s.tokenSeq)
	s.expired = false
	return s.access, s.refresh
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		ok := s.access != "" && !s.expired && token == s.access
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeAuthEnvelope(w http.ResponseWriter, access, refresh string) {
	writeJSON(w, map[string]any{
		"tokenType":    "Bearer",
		"accessToken":  access,
		"expiresIn":    3600,
		"refreshToken": refresh,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.loginCalls++
	access, refresh := s.issueTokens()
	s.mu.Unlock()
	s.writeAuthEnvelope(w, access, refresh)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.refreshCalls++
	if s.failRefresh || req.RefreshToken != s.refresh {
		s.mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	access, refresh := s.issueTokens()
	s.mu.Unlock()
	s.writeAuthEnvelope(w, access, refresh)
}

// ---- users ----

func (s *Server) handleDisplayName(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	name := s.displayName
	s.mu.Unlock()
	writeJSON(w, map[string]string{"displayName": name})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var draft models.UserDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.DisplayName == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.displayName = draft.DisplayName
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

// ---- cookbooks ----

func (s *Server) handleListCookbooks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]models.Cookbook(nil), s.cookbooks...)
	s.mu.Unlock()
	writeJSON(w, paginate(items, queryInt(r, "PageNumber", 1), queryInt(r, "PageSize", 10)))
}

func (s *Server) handleCreateCookbook(w http.ResponseWriter, r *http.Request) {
	var draft models.CookbookDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.Title == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.cookbooks = append(s.cookbooks, draft.Entity(id))
	s.mu.Unlock()
	writeJSONStatus(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateCookbook(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var draft models.CookbookDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cookbooks {
		if c.ID == id {
			c.Title, c.Description, c.ImageName = draft.Title, draft.Description, draft.ImageName
			s.cookbooks[i] = c
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleDeleteCookbook(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cookbooks {
		if c.ID == id {
			s.cookbooks = append(s.cookbooks[:i], s.cookbooks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

// ---- recipes ----

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	cookbookID, _ := strconv.ParseInt(r.URL.Query().Get("CookbookId"), 10, 64)
	name := strings.ToLower(r.URL.Query().Get("Name"))

	s.mu.Lock()
	var items []models.Recipe
	for _, rec := range s.recipes {
		if rec.CookbookID != cookbookID {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(rec.Name), name) {
			continue
		}
		items = append(items, rec)
	}
	s.mu.Unlock()
	writeJSON(w, paginate(items, queryInt(r, "PageNumber", 1), queryInt(r, "PageSize", 10)))
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.recipes {
		if rec.ID == id {
			writeJSON(w, rec)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var draft models.RecipeDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.recipes = append(s.recipes, draft.Entity(id))
	s.mu.Unlock()
	writeJSONStatus(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var draft models.RecipeDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.recipes {
		if rec.ID == id {
			s.recipes[i] = draft.Entity(id)
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.recipes {
		if rec.ID == id {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

// ---- memberships ----

func (s *Server) handleListMemberships(w http.ResponseWriter, r *http.Request) {
	cookbookID, _ := strconv.ParseInt(r.URL.Query().Get("CookbookId"), 10, 64)
	s.mu.Lock()
	var items []models.Membership
	for _, rec := range s.memberships {
		if rec.cookbookID == cookbookID {
			items = append(items, rec.member)
		}
	}
	s.mu.Unlock()
	writeJSON(w, paginate(items, queryInt(r, "PageNumber", 1), queryInt(r, "PageSize", 10)))
}

func (s *Server) handleUpdateMembership(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var perms models.MembershipPermissions
	if err := json.NewDecoder(r.Body).Decode(&perms); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.memberships {
		if rec.member.ID == id {
			rec.member.MembershipPermissions = perms
			s.memberships[i] = rec
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (s *Server) handleDeleteMembership(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.memberships {
		if rec.member.ID == id {
			s.memberships = append(s.memberships[:i], s.memberships[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

// ---- invitations ----

func (s *Server) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]models.Invitation(nil), s.invitations...)
	s.mu.Unlock()
	writeJSON(w, paginate(items, queryInt(r, "PageNumber", 1), queryInt(r, "PageSize", 10)))
}

func (s *Server) handleSendInvitation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CookbookID int64  `json:"cookbookId"`
		Email      string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CookbookID == 0 || req.Email == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRespondInvitation(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var req struct {
		Accept bool `json:"accept"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, inv := range s.invitations {
		if inv.ID == id {
			s.invitations = append(s.invitations[:i], s.invitations[i+1:]...)
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

// ---- images ----

func (s *Server) handleUploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	names := make([]string, 0, len(files))
	for range files {
		s.imageSeq++
		names = append(names, fmt.Sprintf("img-%d.png", s.imageSeq))
	}
	s.mu.Unlock()
	writeJSONStatus(w, http.StatusCreated, map[string]any{"imageNames": names})
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func paginate[T any](items []T, page, size int) models.Page[T] {
	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return models.Page[T]{
		Items:      append([]T(nil), items[start:end]...),
		PageNumber: page,
		TotalPages: totalPages,
		TotalCount: total,
	}
}
