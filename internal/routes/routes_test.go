package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentwheels/rental-admin/internal/config"
	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rentwheels/rental-admin/internal/handler"
	"github.com/rentwheels/rental-admin/internal/migration"
	"github.com/rentwheels/rental-admin/internal/repository"
	"github.com/rentwheels/rental-admin/internal/service"
	"github.com/rentwheels/rental-admin/pkg/jwt"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// EntriesAPISuite exercises the admin entry API end to end on SQLite
type EntriesAPISuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	admin  string
	member string
}

func TestEntriesAPISuite(t *testing.T) {
	suite.Run(t, new(EntriesAPISuite))
}

func (s *EntriesAPISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(migration.Run(db))
	s.db = db

	jwtManager := jwt.NewManager("test-secret-key-for-integration-tests", 900)
	s.admin, err = jwtManager.GenerateAccessToken("admin-1", "운영자", 10)
	s.Require().NoError(err)
	s.member, err = jwtManager.GenerateAccessToken("user-1", "회원", 2)
	s.Require().NoError(err)

	entryHandler := handler.NewEntryHandler(service.NewEntryService(repository.NewEntryRepository(db), nil, nil), nil)

	s.router = gin.New()
	Setup(s.router, entryHandler, jwtManager, nil, config.Default())
}

func (s *EntriesAPISuite) request(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *EntriesAPISuite) create(ownerID, question string) string {
	w, resp := s.request(http.MethodPost, "/api/v1/admin/entries", s.admin, map[string]string{
		"kind": "BRAND", "owner_id": ownerID, "question": question, "answer": "answer to " + question,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return resp["data"].(map[string]interface{})["id"].(string)
}

func (s *EntriesAPISuite) listIDs(ownerID string) []string {
	w, resp := s.request(http.MethodGet, "/api/v1/admin/entries?kind=BRAND&owner_id="+ownerID, s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var out []string
	for _, item := range resp["data"].([]interface{}) {
		out = append(out, item.(map[string]interface{})["id"].(string))
	}
	return out
}

// --- Auth ---

func (s *EntriesAPISuite) TestRequiresAdminToken() {
	w, _ := s.request(http.MethodGet, "/api/v1/admin/entries?kind=BRAND&owner_id=b1", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.request(http.MethodGet, "/api/v1/admin/entries?kind=BRAND&owner_id=b1", s.member, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

// --- CRUD ---

func (s *EntriesAPISuite) TestCreateAppendsInOrder() {
	first := s.create("b1", "Q1")
	second := s.create("b1", "Q2")
	s.create("b2", "other owner")

	s.Equal([]string{first, second}, s.listIDs("b1"))

	_, resp := s.request(http.MethodGet, "/api/v1/admin/entries/"+second, s.admin, nil)
	s.Equal(float64(2), resp["data"].(map[string]interface{})["order_num"])
}

func (s *EntriesAPISuite) TestCreateTrimsAndRejectsBlank() {
	w, resp := s.request(http.MethodPost, "/api/v1/admin/entries", s.admin, map[string]string{
		"kind": "BRAND", "owner_id": "b1", "question": "  padded  ", "answer": " yes ",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	data := resp["data"].(map[string]interface{})
	s.Equal("padded", data["question"])
	s.Equal("yes", data["answer"])

	w, _ = s.request(http.MethodPost, "/api/v1/admin/entries", s.admin, map[string]string{
		"kind": "BRAND", "owner_id": "b1", "question": "   ", "answer": "yes",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *EntriesAPISuite) TestUpdate() {
	id := s.create("b1", "Q1")

	w, resp := s.request(http.MethodPut, "/api/v1/admin/entries/"+id, s.admin, map[string]string{
		"question": "Edited", "answer": "Edited answer",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Edited", resp["data"].(map[string]interface{})["question"])

	w, _ = s.request(http.MethodPut, "/api/v1/admin/entries/missing", s.admin, map[string]string{
		"question": "Q", "answer": "A",
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *EntriesAPISuite) TestDeleteChecksKind() {
	id := s.create("b1", "Q1")

	w, _ := s.request(http.MethodDelete, "/api/v1/admin/entries/"+id+"?kind=VEHICLE", s.admin, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.request(http.MethodDelete, "/api/v1/admin/entries/"+id+"?kind=BRAND", s.admin, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(s.listIDs("b1"))
}

// --- Order ---

func (s *EntriesAPISuite) TestReorder() {
	a := s.create("b1", "A")
	b := s.create("b1", "B")
	c := s.create("b1", "C")
	foreign := s.create("b2", "X")

	w, _ := s.request(http.MethodPut, "/api/v1/admin/entries/order", s.admin, domain.ReorderEntriesRequest{
		Kind: domain.EntryKindBrand, OwnerID: "b1", IDs: []string{c, a, b},
	})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{c, a, b}, s.listIDs("b1"))

	w, _ = s.request(http.MethodPut, "/api/v1/admin/entries/order", s.admin, domain.ReorderEntriesRequest{
		Kind: domain.EntryKindBrand, OwnerID: "b1", IDs: []string{a, foreign},
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal([]string{c, a, b}, s.listIDs("b1"))
}
