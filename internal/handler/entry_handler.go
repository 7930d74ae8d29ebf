package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rentwheels/rental-admin/internal/common"
	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rentwheels/rental-admin/internal/service"
	"github.com/rentwheels/rental-admin/pkg/ginutil"
	"github.com/rs/zerolog"
)

var entryValidator = validator.New()

// EntryHandler handles admin FAQ entry requests
type EntryHandler struct {
	service service.EntryService
	log     zerolog.Logger
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(service service.EntryService, log *zerolog.Logger) *EntryHandler {
	l := zerolog.Nop()
	if log != nil {
		l = log.With().Str("component", "entry_handler").Logger()
	}
	return &EntryHandler{service: service, log: l}
}

// respondError maps service errors to HTTP statuses. fallback is the
// message key used for unexpected errors.
func (h *EntryHandler) respondError(c *gin.Context, fallback string, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "entry.invalid"), err)
	case errors.Is(err, common.ErrForeignEntry):
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "entry.foreign_owner"), err)
	case errors.Is(err, common.ErrEntryNotFound):
		common.ErrorResponse(c, http.StatusNotFound, ginutil.T(c, "entry.not_found"), err)
	default:
		h.log.Error().Err(err).Str("request_id", ginutil.RequestID(c)).Str("key", fallback).Msg("entry request failed")
		common.ErrorResponse(c, http.StatusInternalServerError, ginutil.T(c, fallback), err)
	}
}

// ListEntries godoc
// @Summary      FAQ 목록 조회
// @Description  소유자(브랜드/차량 등)별 FAQ를 표시 순서대로 조회합니다
// @Tags         entries
// @Produce      json
// @Param        kind      query  string  true  "BRAND | VEHICLE_BUCKET | BLOG | VEHICLE"
// @Param        owner_id  query  string  true  "소유자 ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.EntryResponse}
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/entries [get]
func (h *EntryHandler) ListEntries(c *gin.Context) {
	query := domain.EntryListQuery{
		Kind:    domain.EntryKind(ginutil.TrimmedQuery(c, "kind")),
		OwnerID: ginutil.TrimmedQuery(c, "owner_id"),
	}
	if err := entryValidator.Struct(&query); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "entry.filter_required"), err)
		return
	}

	entries, err := h.service.List(c.Request.Context(), query.Kind, query.OwnerID)
	if err != nil {
		h.respondError(c, "entry.list_failed", err)
		return
	}

	common.SuccessResponse(c, entries, &common.Meta{
		Kind:    string(query.Kind),
		OwnerID: query.OwnerID,
		Total:   int64(len(entries)),
	})
}

// GetEntry godoc
// @Summary      FAQ 단건 조회
// @Tags         entries
// @Produce      json
// @Param        id   path  string  true  "Entry ID"
// @Success      200  {object}  common.APIResponse{data=domain.EntryResponse}
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/entries/{id} [get]
func (h *EntryHandler) GetEntry(c *gin.Context) {
	id := ginutil.TrimmedParam(c, "id")
	if id == "" {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "entry.id_required"), nil)
		return
	}

	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "entry.get_failed", err)
		return
	}

	common.SuccessResponse(c, entry, nil)
}

// CreateEntry godoc
// @Summary      FAQ 생성
// @Description  소유자 목록의 마지막 순서로 FAQ를 추가합니다
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request  body  domain.CreateEntryRequest  true  "생성 요청"
// @Success      201  {object}  common.APIResponse{data=domain.EntryResponse}
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/entries [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req domain.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "error.bad_request"), err)
		return
	}

	req.Normalize()
	if err := entryValidator.Struct(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "error.validation"), err)
		return
	}

	entry, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "entry.create_failed", err)
		return
	}

	common.CreatedResponse(c, entry)
}

// UpdateEntry godoc
// @Summary      FAQ 수정
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Entry ID"
// @Param        request  body  domain.UpdateEntryRequest  true  "수정 요청"
// @Success      200  {object}  common.APIResponse{data=domain.EntryResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/entries/{id} [put]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id := ginutil.TrimmedParam(c, "id")
	if id == "" {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "entry.id_required"), nil)
		return
	}

	var req domain.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "error.bad_request"), err)
		return
	}

	req.Normalize()
	if err := entryValidator.Struct(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "error.validation"), err)
		return
	}

	entry, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, "entry.update_failed", err)
		return
	}

	common.SuccessResponse(c, entry, nil)
}

// DeleteEntry godoc
// @Summary      FAQ 삭제
// @Tags         entries
// @Produce      json
// @Param        id    path   string  true  "Entry ID"
// @Param        kind  query  string  true  "BRAND | VEHICLE_BUCKET | BLOG | VEHICLE"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/entries/{id} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id := ginutil.TrimmedParam(c, "id")
	kind := domain.EntryKind(ginutil.TrimmedQuery(c, "kind"))
	if id == "" || !kind.IsValid() {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "entry.kind_required"), nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), kind, id); err != nil {
		h.respondError(c, "entry.delete_failed", err)
		return
	}

	common.SuccessResponse(c, gin.H{"id": id, "deleted": true}, nil)
}

// ReorderEntries godoc
// @Summary      FAQ 순서 저장
// @Description  전달된 ID 순서대로 order_num을 1부터 다시 매깁니다
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ReorderEntriesRequest  true  "순서 요청"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/entries/order [put]
func (h *EntryHandler) ReorderEntries(c *gin.Context) {
	var req domain.ReorderEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "error.bad_request"), err)
		return
	}

	if err := entryValidator.Struct(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, ginutil.T(c, "error.validation"), err)
		return
	}

	if err := h.service.Reorder(c.Request.Context(), &req); err != nil {
		h.respondError(c, "entry.reorder_failed", err)
		return
	}

	common.SuccessResponse(c, gin.H{"ids": req.IDs}, &common.Meta{
		Kind:    string(req.Kind),
		OwnerID: req.OwnerID,
		Total:   int64(len(req.IDs)),
	})
}
